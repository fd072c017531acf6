package diagfmt

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"tolkfmt/internal/diag"
	"tolkfmt/internal/source"
)

func noColor(t *testing.T) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })
}

func TestPrettySnippet(t *testing.T) {
	noColor(t)
	// ';' на второй строке стоит по смещению 18
	f := source.NewFile("a.tolk", []byte("fun main() {\n\tx = ;\n}\n"))
	d := diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.SynUnexpectedToken,
		Message:  "unexpected ';'",
		Primary:  source.Span{Start: 18, End: 19},
	}

	tests := []struct {
		name    string
		context int
		want    string
	}{
		{
			name: "no context",
			want: "a.tolk:2:6: ERROR SYN2001: unexpected ';'\n" +
				"2 |     x = ;\n" +
				"  |         ^\n",
		},
		{
			name:    "one line around",
			context: 1,
			want: "a.tolk:2:6: ERROR SYN2001: unexpected ';'\n" +
				"1 | fun main() {\n" +
				"2 |     x = ;\n" +
				"  |         ^\n" +
				"3 | }\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, f, d, PrettyOpts{Context: tt.context})
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestPrettyWideSpanAndNotes(t *testing.T) {
	noColor(t)
	f := source.NewFile("b.tolk", []byte("const value = 1"))
	d := diag.Diagnostic{
		Severity: diag.SevWarning,
		Code:     diag.SynExpectSemicolon,
		Message:  "missing ';'",
		Primary:  source.Span{Start: 6, End: 11},
		Notes:    []diag.Note{{Span: source.Span{Start: 0, End: 5}, Msg: "declared here"}},
	}

	var buf bytes.Buffer
	Pretty(&buf, f, d, PrettyOpts{ShowNotes: true})
	out := buf.String()
	assert.Contains(t, out, "b.tolk:1:7: WARNING ")
	assert.Contains(t, out, "  |       ^~~~~\n")
	assert.Contains(t, out, "note: 1:1: declared here\n")
	assert.Contains(t, out, "  | ^~~~~\n")
}

func TestMarkerClampsOutOfRange(t *testing.T) {
	assert.Equal(t, "   ^", marker("abc", 10, 20))
	assert.Equal(t, "^~", marker("ab", 0, 2))
	assert.Equal(t, " ^", marker("ab", 1, 1))
}
