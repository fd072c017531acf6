package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tolkfmt/internal/source"
)

func TestCursorBasics(t *testing.T) {
	c := NewCursor(source.NewFile("c.tolk", []byte("ab")))
	assert.Equal(t, byte('a'), c.Peek())
	assert.Equal(t, byte('b'), c.PeekAt(1))
	assert.Equal(t, byte(0), c.PeekAt(2))
	assert.True(t, c.HasPrefix("ab"))
	assert.False(t, c.HasPrefix("abc"))

	m := c.Mark()
	assert.True(t, c.Eat('a'))
	assert.False(t, c.Eat('a'))
	assert.Equal(t, source.Span{Start: 0, End: 1}, c.SpanFrom(m))
	c.Bump()
	assert.True(t, c.EOF())
	assert.Equal(t, byte(0), c.Bump())
	c.Reset(m)
	assert.Equal(t, uint32(0), c.Off)
}
