package health

// HumanErr has both a message suitable for end-users and a HealthErr suitable for logging.
type HumanErr struct {
	HumanMessage string
	HealthErr
}

// NewHumanErr returns a HumanErr with no wrapped error.
func NewHumanErr(humanMsg string, msg string, args ...any) error {
	return &HumanErr{HumanMessage: humanMsg, HealthErr: HealthErr{Message: msg, attrs: args}}
}

// WrapHuman returns a HumanErr that wraps `wrapped`. errors.Is sees the wrapped error, while Error shows only humanMsg.
func WrapHuman(humanMsg string, msg string, wrapped error, args ...any) error {
	return &HumanErr{HumanMessage: humanMsg, HealthErr: HealthErr{Message: msg, wrapped: wrapped, attrs: args}}
}

// Error returns only the human message. The logging-suitable message is e.HealthErr.Error().
func (e *HumanErr) Error() string {
	return e.HumanMessage
}

func (e *HumanErr) Unwrap() error {
	return e.wrapped
}
