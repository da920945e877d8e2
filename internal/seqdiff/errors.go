package seqdiff

import (
	"errors"

	"github.com/codalotl/seqdiff/internal/q/health"
)

// Errors returned by this package wrap one of these sentinels; test with errors.Is.
var (
	// ErrInvalidInput means the inputs or options cannot be diffed: a nil equality func, a negative limit, or a token that is not equal to itself (ex: NaN).
	ErrInvalidInput = errors.New("seqdiff: invalid input")

	// ErrEffortExceeded means an Options limit was hit. Retrying with the same input is pointless; retry with smaller (chunked) input or larger limits.
	ErrEffortExceeded = errors.New("seqdiff: effort exceeded")
)

func invalidInput(msg string, attrs ...any) error {
	return health.Wrap(msg, ErrInvalidInput, attrs...)
}

func effortExceeded(msg string, attrs ...any) error {
	return health.Wrap(msg, ErrEffortExceeded, attrs...)
}
