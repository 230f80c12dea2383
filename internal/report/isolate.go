package report

import (
	"errors"
	"fmt"
)

// SectionError reports a report section that failed to build.
type SectionError struct {
	Section string `json:"section"`
	Message string `json:"error"`
	err     error
}

func (e *SectionError) Error() string {
	return fmt.Sprintf("section %s: %s", e.Section, e.Message)
}

func (e *SectionError) Unwrap() error {
	return e.err
}

// Isolate runs fn and converts an error or panic into a SectionError, so a
// failing section does not take the others down with it.
func Isolate[T any](section string, fn func() (T, error)) (out T, err error) {
	defer func() {
		if r := recover(); r != nil {
			var zero T
			out = zero
			err = &SectionError{Section: section, Message: fmt.Sprint(r), err: fmt.Errorf("panic: %v", r)}
		}
	}()
	out, err = fn()
	if err != nil {
		var se *SectionError
		if !errors.As(err, &se) {
			err = &SectionError{Section: section, Message: err.Error(), err: err}
		}
	}
	return out, err
}
