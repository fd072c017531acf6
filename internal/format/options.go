package format

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"fortio.org/safecast"

	"tolkfmt/internal/observ"
	"tolkfmt/internal/source"
	"tolkfmt/internal/trace"
)

// DefaultMaxWidth is used when Options.MaxWidth is zero.
const DefaultMaxWidth = 100

// ErrInvalidRange reports a range that is malformed or lies outside the source.
var ErrInvalidRange = errors.New("invalid range")

// Position is a 0-based line and a UTF-16 code unit offset within it.
type Position struct {
	Line      int
	Character int
}

// Range selects the part of the file to format; everything outside is kept verbatim.
type Range struct {
	Start Position
	End   Position
}

func (r Range) String() string {
	return fmt.Sprintf("%d:%d-%d:%d", r.Start.Line, r.Start.Character, r.End.Line, r.End.Character)
}

type Options struct {
	MaxWidth    int
	Range       *Range
	SortImports bool
	Tracer      trace.Tracer
	Timer       *observ.Timer
	// Parent is the trace span the phase spans are nested under.
	Parent uint64
}

func (o Options) withDefaults() Options {
	if o.MaxWidth <= 0 {
		o.MaxWidth = DefaultMaxWidth
	}
	if o.Tracer == nil {
		o.Tracer = trace.Nop
	}
	return o
}

var rangeRe = regexp.MustCompile(`^(\d+):(\d+)-(\d+):(\d+)$`)

// ParseRange parses "L:C-L:C" with 1-based lines and characters, as typed on
// the command line, into a 0-based Range.
func ParseRange(s string) (Range, error) {
	m := rangeRe.FindStringSubmatch(s)
	if m == nil {
		return Range{}, fmt.Errorf("%w: %q, expected line:char-line:char", ErrInvalidRange, s)
	}
	var nums [4]int
	for i := range nums {
		n, err := strconv.Atoi(m[i+1])
		if err != nil || n < 1 {
			return Range{}, fmt.Errorf("%w: %q, positions are 1-based", ErrInvalidRange, s)
		}
		nums[i] = n - 1
	}
	return Range{
		Start: Position{Line: nums[0], Character: nums[1]},
		End:   Position{Line: nums[2], Character: nums[3]},
	}, nil
}

// pointRange is a Range converted to byte points of one file.
type pointRange struct {
	start source.Point
	end   source.Point
}

func resolveRange(f *source.File, r Range) (pointRange, error) {
	if r.Start.Line < 0 || r.Start.Character < 0 || r.End.Line < 0 || r.End.Character < 0 {
		return pointRange{}, fmt.Errorf("%w: %s has negative position", ErrInvalidRange, r)
	}
	if r.End.Line < r.Start.Line || (r.End.Line == r.Start.Line && r.End.Character < r.Start.Character) {
		return pointRange{}, fmt.Errorf("%w: %s ends before it starts", ErrInvalidRange, r)
	}
	start, err := resolvePosition(f, r.Start)
	if err != nil {
		return pointRange{}, err
	}
	end, err := resolvePosition(f, r.End)
	if err != nil {
		return pointRange{}, err
	}
	return pointRange{start: start, end: end}, nil
}

func resolvePosition(f *source.File, pos Position) (source.Point, error) {
	line, err := safecast.Conv[uint32](pos.Line)
	if err != nil {
		return source.Point{}, fmt.Errorf("%w: line %d: %w", ErrInvalidRange, pos.Line, err)
	}
	char, err := safecast.Conv[uint32](pos.Character)
	if err != nil {
		return source.Point{}, fmt.Errorf("%w: character %d: %w", ErrInvalidRange, pos.Character, err)
	}
	p, ok := f.PointFromUTF16(line, char)
	if !ok {
		return source.Point{}, fmt.Errorf("%w: line %d is past the end of file", ErrInvalidRange, pos.Line+1)
	}
	return p, nil
}

func (r pointRange) intersects(start, end source.Point) bool {
	if end.Less(r.start) {
		return false
	}
	if r.end.Less(start) {
		return false
	}
	return true
}
