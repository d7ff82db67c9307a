package livetemplate

import (
	"errors"
	"fmt"
)

// ErrInvalidFormat is matched by every FormatError via errors.Is.
var ErrInvalidFormat = errors.New("invalid XML format")

// FormatError reports template XML that could not be parsed.
type FormatError struct {
	Line int
	Err  error
}

func (e *FormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("invalid XML format at line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("invalid XML format: %v", e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

func (e *FormatError) Is(target error) bool {
	return target == ErrInvalidFormat
}
