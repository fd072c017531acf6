package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tolkfmt/internal/diag"
	"tolkfmt/internal/lexer"
	"tolkfmt/internal/source"
	"tolkfmt/internal/token"
)

func lexAll(t *testing.T, input string) ([]token.Token, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.tolk", []byte(input)))
	bag := diag.NewBag(16)
	lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	return lx.All(), bag
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, 0, len(toks))
	for _, tk := range toks {
		out = append(out, tk.Kind)
	}
	return out
}

func TestKeywordsAndIdents(t *testing.T) {
	toks, bag := lexAll(t, "fun get main(mutate self) asm")
	require.False(t, bag.HasErrors())
	assert.Equal(t, []token.Kind{
		token.KwFun, token.Ident, token.Ident, token.LParen, token.KwMutate, token.Ident,
		token.RParen, token.Ident, token.EOF,
	}, kinds(toks))
	assert.Equal(t, "get", toks[1].Text)
}

func TestUnderscoreAndDollar(t *testing.T) {
	toks, _ := lexAll(t, "_ _x $y")
	assert.Equal(t, []token.Kind{token.Underscore, token.Ident, token.Ident, token.EOF}, kinds(toks))
	assert.Equal(t, "_x", toks[1].Text)
	assert.Equal(t, "$y", toks[2].Text)
}

func TestOperatorsGreedy(t *testing.T) {
	toks, bag := lexAll(t, "a <=> b ~>> c ^>> d ~/ e ^/ f <<= g -> h => i !is j !k")
	require.False(t, bag.HasErrors())
	var ops []token.Kind
	for _, tk := range toks {
		if tk.Kind != token.Ident && tk.Kind != token.EOF {
			ops = append(ops, tk.Kind)
		}
	}
	assert.Equal(t, []token.Kind{
		token.Spaceship, token.TildeShr, token.CaretShr, token.TildeSlash, token.CaretSlash,
		token.ShlAssign, token.Arrow, token.FatArrow, token.NotIs, token.Bang,
	}, ops)
}

func TestNotIsNeedsWordBoundary(t *testing.T) {
	toks, _ := lexAll(t, "!isValid")
	assert.Equal(t, []token.Kind{token.Bang, token.Ident, token.EOF}, kinds(toks))
}

func TestNumbers(t *testing.T) {
	toks, bag := lexAll(t, "0 123 0xFF 0b101 1_000")
	require.False(t, bag.HasErrors())
	for _, tk := range toks[:5] {
		assert.Equal(t, token.IntLit, tk.Kind, tk.Text)
	}

	toks, _ = lexAll(t, "0.6.0")
	assert.Equal(t, []token.Kind{token.IntLit, token.Dot, token.IntLit, token.Dot, token.IntLit, token.EOF}, kinds(toks))

	_, bag = lexAll(t, "12abc")
	require.True(t, bag.HasErrors())
	assert.Equal(t, diag.LexBadNumber, bag.Items()[0].Code)
}

func TestStrings(t *testing.T) {
	toks, bag := lexAll(t, `"a\"b" """x
y"""`)
	require.False(t, bag.HasErrors())
	require.Len(t, toks, 3)
	assert.Equal(t, `"a\"b"`, toks[0].Text)
	assert.Equal(t, "\"\"\"x\ny\"\"\"", toks[1].Text)

	toks, bag = lexAll(t, "\"abc\nx")
	assert.Equal(t, token.Invalid, toks[0].Kind)
	assert.Equal(t, diag.LexUnterminatedString, bag.Items()[0].Code)
}

func TestBacktickIdent(t *testing.T) {
	toks, bag := lexAll(t, "`my var` x")
	require.False(t, bag.HasErrors())
	assert.Equal(t, token.Ident, toks[0].Kind)
	assert.Equal(t, "`my var`", toks[0].Text)

	_, bag = lexAll(t, "`open")
	assert.True(t, bag.HasErrors())
}

func TestCommentsAreLeadingTrivia(t *testing.T) {
	toks, _ := lexAll(t, "a // one  \n/* two */ b // tail")
	require.Len(t, toks, 3)

	comments := toks[1].Comments()
	require.Len(t, comments, 2)
	assert.Equal(t, "// one", comments[0].Text)
	assert.Equal(t, token.TriviaLineComment, comments[0].Kind)
	assert.Equal(t, "/* two */", comments[1].Text)

	eof := toks[2]
	require.Equal(t, token.EOF, eof.Kind)
	require.Len(t, eof.Comments(), 1)
	assert.Equal(t, "// tail", eof.Comments()[0].Text)
}

func TestSlashOperatorsDoNotEatComments(t *testing.T) {
	toks, _ := lexAll(t, "a ~// c\nb")
	assert.Equal(t, []token.Kind{token.Ident, token.Tilde, token.Ident, token.EOF}, kinds(toks))
	assert.Len(t, toks[2].Comments(), 1)
}

func TestUnterminatedBlockComment(t *testing.T) {
	toks, bag := lexAll(t, "a /* open")
	require.True(t, bag.HasErrors())
	assert.Equal(t, diag.LexUnterminatedBlockComment, bag.Items()[0].Code)
	assert.Equal(t, token.EOF, toks[len(toks)-1].Kind)
}

func TestUnknownChar(t *testing.T) {
	toks, bag := lexAll(t, "a # b")
	assert.Equal(t, token.Invalid, toks[1].Kind)
	assert.Equal(t, diag.LexUnknownChar, bag.Items()[0].Code)
}

func TestPeekDoesNotConsume(t *testing.T) {
	fs := source.NewFileSet()
	lx := lexer.New(fs.Get(fs.AddVirtual("p.tolk", []byte("x y"))), lexer.Options{})
	assert.Equal(t, "x", lx.Peek().Text)
	assert.Equal(t, "x", lx.Next().Text)
	assert.Equal(t, "y", lx.Next().Text)
	assert.Equal(t, token.EOF, lx.Next().Kind)
	assert.Equal(t, token.EOF, lx.Next().Kind)
}
