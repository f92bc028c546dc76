package osufile

import "fmt"

// LineError anchors a field-level error to the physical 0-based line of the
// section text it occurred on. Blank lines still advance the counter, so the
// index always points at the original source line.
type LineError struct {
	Line int
	Err  error
}

// NewLineError wraps err with a source line index. A nil err yields nil.
func NewLineError(err error, line int) error {
	if err == nil {
		return nil
	}
	return &LineError{Line: line, Err: err}
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }
