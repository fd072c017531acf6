package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("main.tolk", []byte("hello world"), 0)
	id2 := fs.Add("main.tolk", []byte("hello universe"), 0)
	assert.Equal(t, FileID(0), id1)
	assert.Equal(t, FileID(1), id2)

	latest, ok := fs.GetByPath("main.tolk")
	require.True(t, ok)
	assert.Equal(t, id2, latest.ID)
	assert.Equal(t, "hello world", string(fs.Get(id1).Content))
}

func TestAddVirtualLineIdx(t *testing.T) {
	fs := NewFileSet()
	file := fs.Get(fs.AddVirtual("a.tolk", []byte("a\nb\n")))

	assert.Equal(t, []uint32{1, 3}, file.LineIdx)
	assert.NotZero(t, file.Flags&FileVirtual)
	assert.Equal(t, 3, file.LineCount())
	assert.Equal(t, "b", string(file.Line(1)))
	assert.Empty(t, file.Line(2))
	assert.Nil(t, file.Line(3))
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		raw   []byte
		want  string
		flags FileFlags
	}{
		{"plain", []byte("a\nb"), "a\nb", 0},
		{"crlf", []byte("a\r\nb\r\n"), "a\nb\n", FileNormalizedCRLF},
		{"lone cr kept", []byte("a\rb"), "a\rb", 0},
		{"utf8 bom", []byte("\xEF\xBB\xBFx\n"), "x\n", FileHadBOM},
		{"utf16le bom", []byte{0xFF, 0xFE, 'h', 0, 'i', 0}, "hi", FileHadBOM | FileDecodedUTF16},
		{"utf16be bom crlf", []byte{0xFE, 0xFF, 0, 'a', 0, '\r', 0, '\n'}, "a\n", FileHadBOM | FileDecodedUTF16 | FileNormalizedCRLF},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, flags, err := Normalize(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
			assert.Equal(t, tt.flags, flags)
		})
	}
}

func TestPointAndOffset(t *testing.T) {
	f := NewFile("x.tolk", []byte("ab\ncd\n\nef"))

	tests := []struct {
		off  uint32
		want Point
	}{
		{0, Point{0, 0}},
		{2, Point{0, 2}},
		{3, Point{1, 0}},
		{6, Point{2, 0}},
		{7, Point{3, 0}},
		{9, Point{3, 2}},
	}
	for _, tt := range tests {
		got := f.Point(tt.off)
		assert.Equal(t, tt.want, got, "offset %d", tt.off)
		back, ok := f.OffsetOf(got)
		require.True(t, ok)
		assert.Equal(t, tt.off, back)
	}

	_, ok := f.OffsetOf(Point{Row: 9})
	assert.False(t, ok)
	_, ok = f.OffsetOf(Point{Row: 0, Column: 5})
	assert.False(t, ok)
}

func TestPointFromUTF16(t *testing.T) {
	// "α" is 2 bytes / 1 unit, "😀" is 4 bytes / 2 units
	f := NewFile("x.tolk", []byte("α😀b\nz"))

	p, ok := f.PointFromUTF16(0, 1)
	require.True(t, ok)
	assert.Equal(t, Point{0, 2}, p)

	p, ok = f.PointFromUTF16(0, 3)
	require.True(t, ok)
	assert.Equal(t, Point{0, 6}, p)

	p, ok = f.PointFromUTF16(0, 100)
	require.True(t, ok)
	assert.Equal(t, Point{0, 7}, p)

	_, ok = f.PointFromUTF16(5, 0)
	assert.False(t, ok)
}

func TestResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("test.tolk", []byte("α\nb"))

	start, end := fs.Resolve(Span{File: id, Start: 0, End: 4})
	assert.Equal(t, LineCol{Line: 1, Col: 1}, start)
	assert.Equal(t, LineCol{Line: 2, Col: 2}, end)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.tolk")
	require.NoError(t, os.WriteFile(path, []byte("\xEF\xBB\xBFa\r\nb\r\n"), 0o600))

	fs := NewFileSet()
	id, err := fs.Load(path)
	require.NoError(t, err)

	file := fs.Get(id)
	assert.Equal(t, "a\nb\n", string(file.Content))
	assert.NotZero(t, file.Flags&FileHadBOM)
	assert.NotZero(t, file.Flags&FileNormalizedCRLF)

	_, err = fs.Load(filepath.Join(t.TempDir(), "missing.tolk"))
	assert.Error(t, err)
}

func TestSpanCover(t *testing.T) {
	a := Span{Start: 4, End: 8}
	b := Span{Start: 2, End: 6}
	assert.Equal(t, Span{Start: 2, End: 8}, a.Cover(b))
	assert.True(t, a.Cover(b).Contains(a))
	assert.False(t, a.Contains(b))
	assert.Equal(t, uint32(4), a.Len())
}
