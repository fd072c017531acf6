package fuzztests

import (
	"bytes"
	"testing"

	"tolkfmt/internal/format"
	"tolkfmt/internal/parser"
	"tolkfmt/internal/source"
	"tolkfmt/internal/testkit"
)

// FuzzFormatRoundTrip formats arbitrary input. Unparsable input must come
// back unchanged; parsable input must produce output that parses, keeps its
// comments and is a fixed point of Format.
func FuzzFormatRoundTrip(f *testing.F) {
	for _, s := range roundTripSeeds {
		f.Add([]byte(s))
	}
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)
		src := string(input)
		out, err := format.Format(src, format.Options{})
		if err != nil {
			t.Fatalf("format error without range: %v", err)
		}

		// Format drops a leading byte order mark before parsing
		body := bytes.TrimPrefix(input, []byte("\uFEFF"))
		before := parser.Parse(source.NewFile("fuzz.tolk", body), parser.Options{})
		if before == nil {
			if out != src {
				t.Fatalf("unparsable input was modified: %q", truncateForLog(input, 200))
			}
			return
		}

		after := parser.Parse(source.NewFile("fuzz.tolk", []byte(out)), parser.Options{})
		if after == nil {
			t.Fatalf("formatted output does not parse\ninput: %q\noutput: %q", truncateForLog(input, 200), out)
		}
		if b, a := len(testkit.CommentTexts(before)), len(testkit.CommentTexts(after)); b != a {
			t.Fatalf("comment count changed: %d -> %d\noutput: %q", b, a, out)
		}
		again, err := format.Format(out, format.Options{})
		if err != nil || again != out {
			t.Fatalf("formatting is not stable\nfirst:  %q\nsecond: %q", out, again)
		}
	})
}
