package trace

import (
	"fmt"
	"slices"
	"strings"
)

// Level controls tracing verbosity.
type Level uint8

const (
	LevelOff    Level = iota // no tracing
	LevelError               // ring only, dumped when a file fails
	LevelPhase               // driver and pass boundaries
	LevelDetail              // plus one span per file
	LevelDebug               // plus node events: comment fallbacks and leftovers
)

var levelNames = []string{"off", "error", "phase", "detail", "debug"}

// widest scope a level streams; LevelError streams nothing
var levelScopes = [...]Scope{LevelPhase: ScopePass, LevelDetail: ScopeFile, LevelDebug: ScopeNode}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel reads a --trace-level value, case-insensitively.
func ParseLevel(s string) (Level, error) {
	i := slices.Index(levelNames, strings.ToLower(s))
	if i < 0 {
		return LevelOff, fmt.Errorf("invalid trace level: %q (expected: %s)", s, strings.Join(levelNames, "|"))
	}
	return Level(i), nil // #nosec G115 -- index of a five-element table
}

// ShouldEmit reports whether a streamed event of scope passes level l.
func (l Level) ShouldEmit(scope Scope) bool {
	if int(l) >= len(levelScopes) {
		return false
	}
	return scope != 0 && scope <= levelScopes[l]
}

// accepts is ShouldEmit for the ring: at LevelError the ring still keeps
// file and coarser events for a failure dump.
func accepts(l Level, scope Scope) bool {
	if l == LevelError {
		return scope <= ScopeFile
	}
	return l.ShouldEmit(scope)
}
