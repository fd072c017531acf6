package source

import (
	"bytes"
	"fmt"
	"path/filepath"
	"slices"
	"unicode/utf16"
	"unicode/utf8"

	"fortio.org/safecast"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16BE = []byte{0xFE, 0xFF}
	bomUTF16LE = []byte{0xFF, 0xFE}
)

// normalizeCRLF заменяет все \r\n на \n, не трогая одиночные \r.
func normalizeCRLF(content []byte) ([]byte, bool) {
	if !slices.Contains(content, '\r') {
		return content, false
	}

	out := make([]byte, 0, len(content))
	changed := false

	i := 0
	for i < len(content) {
		if content[i] == '\r' && i+1 < len(content) && content[i+1] == '\n' {
			out = append(out, '\n')
			i += 2
			changed = true
		} else {
			out = append(out, content[i])
			i++
		}
	}
	return out, changed
}

// decodeText strips a UTF-8 BOM and transcodes UTF-16 input (detected by BOM) to UTF-8.
func decodeText(content []byte) ([]byte, FileFlags, error) {
	var flags FileFlags
	switch {
	case bytes.HasPrefix(content, bomUTF8):
		flags |= FileHadBOM
	case bytes.HasPrefix(content, bomUTF16BE), bytes.HasPrefix(content, bomUTF16LE):
		flags |= FileHadBOM | FileDecodedUTF16
	default:
		return content, 0, nil
	}
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	out, _, err := transform.Bytes(decoder, content)
	if err != nil {
		return nil, 0, fmt.Errorf("decode: %w", err)
	}
	return out, flags, nil
}

func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 0, bytes.Count(content, []byte{'\n'}))
	for i, b := range content {
		if b == '\n' {
			out = append(out, mustU32(i))
		}
	}
	return out
}

// lineOf returns the 0-based row containing off.
func lineOf(lineIdx []uint32, off uint32) int {
	// бинпоиск: количество переводов строк строго до off
	lo, hi := 0, len(lineIdx)
	for lo < hi {
		mid := (lo + hi) >> 1
		if lineIdx[mid] < off {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

func lineStart(lineIdx []uint32, row int) uint32 {
	if row == 0 {
		return 0
	}
	return lineIdx[row-1] + 1
}

func toPoint(lineIdx []uint32, off uint32) Point {
	row := lineOf(lineIdx, off)
	return Point{Row: mustU32(row), Column: off - lineStart(lineIdx, row)}
}

func toLineCol(lineIdx []uint32, off uint32) LineCol {
	p := toPoint(lineIdx, off)
	return LineCol{Line: p.Row + 1, Col: p.Column + 1}
}

// utf16ToByteColumn converts a UTF-16 code unit offset inside line to a byte offset.
// Offsets past the end of line clamp to len(line).
func utf16ToByteColumn(line []byte, units uint32) uint32 {
	var seen uint32
	i := 0
	for i < len(line) && seen < units {
		r, size := utf8.DecodeRune(line[i:])
		n := utf16.RuneLen(r)
		if n < 0 {
			n = 1
		}
		seen += mustU32(n)
		i += size
	}
	return mustU32(i)
}

func mustU32(n int) uint32 {
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Errorf("offset overflow: %w", err))
	}
	return v
}

func normalizePath(p string) string {
	// единый вид в кроссплатформенных дифах
	return filepath.ToSlash(filepath.Clean(p))
}
