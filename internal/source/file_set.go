package source

import (
	"crypto/sha256"
	"fmt"
	"os"

	"fortio.org/safecast"
)

// FileSet manages a collection of source files loaded for one run.
type FileSet struct {
	files []File
	index map[string]FileID // path -> id
}

// NewFileSet creates a new empty FileSet.
func NewFileSet() *FileSet {
	return &FileSet{
		files: make([]File, 0),
		index: make(map[string]FileID),
	}
}

// Add stores a file from normalized bytes, computes LineIdx and Hash, and returns a new FileID.
// It always creates a new FileID even if a file with the same path already exists.
func (fileSet *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	normalizedPath := normalizePath(path)

	lenFiles, err := safecast.Conv[uint32](len(fileSet.files))
	if err != nil {
		panic(fmt.Errorf("len files overflow: %w", err))
	}
	id := FileID(lenFiles)
	fileSet.files = append(fileSet.files, newFile(id, normalizedPath, content, flags))
	fileSet.index[normalizedPath] = id
	return id
}

// Load reads a file from disk, decodes BOM-marked input, normalizes CRLF and calls Add.
func (fileSet *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	content, flags, err := Normalize(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}
	return fileSet.Add(path, content, flags), nil
}

// AddVirtual adds a virtual file (stdin, test) with the FileVirtual flag.
func (fileSet *FileSet) AddVirtual(name string, content []byte) FileID {
	return fileSet.Add(name, content, FileVirtual)
}

// Get returns the file metadata for the given ID.
func (fileSet *FileSet) Get(id FileID) *File {
	return &fileSet.files[id]
}

// GetByPath returns the latest file loaded under path.
func (fileSet *FileSet) GetByPath(path string) (*File, bool) {
	if id, ok := fileSet.index[normalizePath(path)]; ok {
		return &fileSet.files[id], true
	}
	return nil, false
}

// Resolve converts a span into 1-based line and column positions.
func (fileSet *FileSet) Resolve(span Span) (start, end LineCol) {
	f := fileSet.files[span.File]
	return toLineCol(f.LineIdx, span.Start), toLineCol(f.LineIdx, span.End)
}

// Normalize prepares raw file bytes for formatting: BOM and UTF-16 handling, then CRLF.
func Normalize(raw []byte) ([]byte, FileFlags, error) {
	content, flags, err := decodeText(raw)
	if err != nil {
		return nil, 0, err
	}
	content, hadCRLF := normalizeCRLF(content)
	if hadCRLF {
		flags |= FileNormalizedCRLF
	}
	return content, flags, nil
}

// NewFile builds a standalone File, used for in-memory inputs that never join a FileSet.
func NewFile(path string, content []byte) *File {
	f := newFile(0, normalizePath(path), content, FileVirtual)
	return &f
}

func newFile(id FileID, path string, content []byte, flags FileFlags) File {
	return File{
		ID:      id,
		Path:    path,
		Content: content,
		LineIdx: buildLineIndex(content),
		Hash:    sha256.Sum256(content),
		Flags:   flags,
	}
}

// LineCount returns the number of rows; a trailing newline opens an empty last row.
func (f *File) LineCount() int {
	return len(f.LineIdx) + 1
}

// Line returns the text of the 0-based row without its newline.
func (f *File) Line(row int) []byte {
	if row < 0 || row >= f.LineCount() {
		return nil
	}
	start := lineStart(f.LineIdx, row)
	end := mustU32(len(f.Content))
	if row < len(f.LineIdx) {
		end = f.LineIdx[row]
	}
	return f.Content[start:end]
}

// Point converts a byte offset to a 0-based row and byte column.
func (f *File) Point(off uint32) Point {
	return toPoint(f.LineIdx, off)
}

// OffsetOf converts a 0-based row and byte column to a byte offset.
func (f *File) OffsetOf(p Point) (uint32, bool) {
	row := int(p.Row)
	if row >= f.LineCount() {
		return 0, false
	}
	line := f.Line(row)
	if int(p.Column) > len(line) {
		return 0, false
	}
	return lineStart(f.LineIdx, row) + p.Column, true
}

// PointFromUTF16 converts an editor position (0-based line, UTF-16 character)
// to a byte Point. ok is false when the line does not exist.
func (f *File) PointFromUTF16(line, character uint32) (Point, bool) {
	if int(line) >= f.LineCount() {
		return Point{}, false
	}
	col := utf16ToByteColumn(f.Line(int(line)), character)
	return Point{Row: line, Column: col}, true
}
