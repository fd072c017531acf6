package diag

import (
	"fmt"

	"tolkfmt/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}

// Format renders d as "path:line:col: SEVERITY ID: message".
func (d Diagnostic) Format(fs *source.FileSet) string {
	if fs == nil {
		return fmt.Sprintf("%s %s: %s", d.Severity, d.Code.ID(), d.Message)
	}
	start, _ := fs.Resolve(d.Primary)
	return fmt.Sprintf("%s:%d:%d: %s %s: %s",
		fs.Get(d.Primary.File).Path, start.Line, start.Col, d.Severity, d.Code.ID(), d.Message)
}

// Error wraps diagnostics so they can travel through error returns.
type Error struct {
	Files *source.FileSet
	Diags []Diagnostic
}

func (e *Error) Error() string {
	if len(e.Diags) == 0 {
		return "unknown error"
	}
	msg := e.Diags[0].Format(e.Files)
	if n := len(e.Diags) - 1; n > 0 {
		msg += fmt.Sprintf(" (and %d more)", n)
	}
	return msg
}
