package fuzztests

import (
	"context"
	"testing"
	"time"

	"tolkfmt/internal/ast"
	"tolkfmt/internal/parser"
	"tolkfmt/internal/source"
	"tolkfmt/internal/testkit"
)

// parseTimeout is the maximum time allowed for parsing a single input.
// If parsing takes longer, it indicates a potential infinite loop.
const parseTimeout = 5 * time.Second

// FuzzParserNoHang checks that the parser terminates and that every tree it
// returns satisfies the span invariants.
func FuzzParserNoHang(f *testing.F) {
	addCorpusSeeds(f)
	f.Add([]byte("fun f() { { { { } } } }"))
	f.Add([]byte("fun f() { match (x) { } }"))
	f.Add([]byte("fun f<T>(x: T?): T? { return x!; }"))

	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)
		ctx, cancel := context.WithTimeout(context.Background(), parseTimeout)
		defer cancel()

		done := make(chan *ast.Tree, 1)
		go func() {
			done <- parser.Parse(source.NewFile("fuzz.tolk", input), parser.Options{})
		}()

		select {
		case tree := <-done:
			if tree == nil {
				return
			}
			if err := testkit.CheckTreeInvariants(tree); err != nil {
				t.Fatalf("invariant violated: %v\ninput: %q", err, truncateForLog(input, 200))
			}
		case <-ctx.Done():
			t.Fatalf("parser hang detected: parsing took longer than %v\ninput (%d bytes): %q",
				parseTimeout, len(input), truncateForLog(input, 200))
		}
	})
}
