package fold

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/dshills/codeintel/internal/intel/language"
)

// Kind classifies a region.
type Kind = language.BlockKind

// Region is a foldable line range.
type Region struct {
	// StartLine and EndLine are 1-based and inclusive.
	StartLine int
	EndLine   int

	// StartColumn is the rune column of the first non-blank character on the
	// start line. EndColumn is the rune length of the end line.
	StartColumn int
	EndColumn   int

	Kind Kind

	// Label is the trimmed source text of the start line.
	Label string

	// Folded is filled in from the owner's flags by Flags.Apply.
	Folded bool
}

// Key returns the region's identity for fold-flag lookup.
func (r Region) Key() Key {
	return Key{StartLine: r.StartLine, Kind: r.Kind}
}

// Lines returns the number of lines the region spans.
func (r Region) Lines() int {
	return r.EndLine - r.StartLine + 1
}

// Contains reports whether line (1-based) is within the region.
func (r Region) Contains(line int) bool {
	return line >= r.StartLine && line <= r.EndLine
}

// DisplayLabel returns the label truncated to width terminal cells with an
// ellipsis. A non-positive width returns the full label.
func (r Region) DisplayLabel(width int) string {
	if width <= 0 || runewidth.StringWidth(r.Label) <= width {
		return r.Label
	}
	return runewidth.Truncate(r.Label, width, "…")
}

// Key identifies a region across re-detection. Keys are stable as long as no
// lines are inserted or removed above the region.
type Key struct {
	StartLine int
	Kind      Kind
}

// String returns the key as "<line>:<kind>".
func (k Key) String() string {
	return strconv.Itoa(k.StartLine) + ":" + string(k.Kind)
}

// ParseKey parses the String form of a key.
func ParseKey(s string) (Key, error) {
	lineStr, kindStr, ok := strings.Cut(s, ":")
	if !ok {
		return Key{}, fmt.Errorf("%w: %q", ErrInvalidKey, s)
	}
	line, err := strconv.Atoi(lineStr)
	if err != nil || line < 1 {
		return Key{}, fmt.Errorf("%w: bad line in %q", ErrInvalidKey, s)
	}
	kind, ok := language.ParseBlockKind(kindStr)
	if !ok {
		return Key{}, fmt.Errorf("%w: bad kind in %q", ErrInvalidKey, s)
	}
	return Key{StartLine: line, Kind: kind}, nil
}
