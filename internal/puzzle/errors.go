package puzzle

import (
	"errors"
	"fmt"
)

// Sentinel errors for classifying failures with errors.Is.
var (
	ErrInput       = errors.New("puzzle: invalid input")
	ErrConsistency = errors.New("puzzle: inconsistent placement")
)

// InputError reports a bad image, grid size, or tile sequence.
type InputError struct {
	Code    string
	Message string
}

func (e InputError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Is makes InputError match ErrInput.
func (e InputError) Is(target error) bool {
	return target == ErrInput
}

// ConsistencyError reports a placement map that is not a bijection over its
// slots or that carries an angle outside the four right angles.
type ConsistencyError struct {
	Code    string
	Message string
}

func (e ConsistencyError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Is makes ConsistencyError match ErrConsistency.
func (e ConsistencyError) Is(target error) bool {
	return target == ErrConsistency
}

func inputErrorf(code, format string, args ...any) error {
	return InputError{Code: code, Message: fmt.Sprintf(format, args...)}
}

func consistencyErrorf(code, format string, args ...any) error {
	return ConsistencyError{Code: code, Message: fmt.Sprintf(format, args...)}
}
