package script

import "fmt"

// Error is a fatal script fault tied to the line that raised it.
type Error struct {
	File string
	Line int
	Msg  string
}

func (e *Error) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s: line %d: %s", e.File, e.Line, e.Msg)
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// Errorf builds an Error positioned at l.
func (l *Line) Errorf(format string, args ...any) error {
	return &Error{File: l.File, Line: l.Number, Msg: fmt.Sprintf(format, args...)}
}
