package cli

import "fmt"

// ExitCoder is an error with an explicit process exit code.
type ExitCoder interface {
	error
	ExitCode() int
}

// UsageError is a user-facing mistake in how the program was invoked. Run prints it followed by the command's help, and exits with code 2.
type UsageError struct {
	Message string
}

func (e UsageError) Error() string { return e.Message }
func (e UsageError) ExitCode() int { return 2 }

func usageErrorf(format string, args ...any) UsageError {
	return UsageError{Message: fmt.Sprintf(format, args...)}
}

// ExitError ends the program with Code after printing Err. A nil Err exits silently.
type ExitError struct {
	Code int
	Err  error
}

// Exit returns an error that ends the program with code and prints nothing. Handlers use it to report a status (ex: "differences found") rather than a failure.
func Exit(code int) error {
	return ExitError{Code: code}
}

func (e ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

func (e ExitError) Unwrap() error { return e.Err }
func (e ExitError) ExitCode() int { return e.Code }
