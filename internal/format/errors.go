package format

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownFormat     = errors.New("unknown format")
	ErrUnsupportedFormat = errors.New("unsupported export format")
)

// ParseError reports structurally malformed input for a format whose
// detection already succeeded. Field-level conversion failures never
// produce a ParseError; they degrade to absent values.
type ParseError struct {
	Format Format
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s: %v", e.Format, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
