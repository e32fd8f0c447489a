package language

import (
	"github.com/dlclark/regexp2"

	"github.com/dshills/codeintel/internal/log"
)

// Range is a half-open rune range [Start, End).
type Range struct {
	Start int
	End   int
}

// Len returns the number of runes covered by the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// Pattern is a compiled rule pattern.
//
// Patterns use .NET-flavoured syntax (lookaround, lazy quantifiers, inline
// options) and report match positions as rune offsets. A pattern whose source
// failed to compile is kept in place and simply never matches.
type Pattern struct {
	source string
	re     *regexp2.Regexp
	err    error
}

// PatternOptions controls how a pattern is compiled.
type PatternOptions struct {
	// IgnoreCase makes the pattern case-insensitive.
	IgnoreCase bool
	// Logger receives a warning when compilation fails.
	Logger *log.Logger
}

// Compile compiles source in multiline mode (^ and $ match at line
// boundaries). It never fails: a broken source produces a pattern that never
// matches, and the failure is logged once.
func Compile(source string, opts PatternOptions) *Pattern {
	flags := regexp2.RegexOptions(regexp2.Multiline)
	if opts.IgnoreCase {
		flags |= regexp2.IgnoreCase
	}
	re, err := regexp2.Compile(source, flags)
	if err != nil {
		logger := opts.Logger
		if logger == nil {
			logger = log.Default().WithComponent("language")
		}
		logger.Warn("pattern %q does not compile, it will never match: %v", source, err)
		return &Pattern{source: source, err: err}
	}
	return &Pattern{source: source, re: re}
}

// MustCompile is like Compile but panics if source does not compile.
// It is meant for tests and package-level literals.
func MustCompile(source string) *Pattern {
	re := regexp2.MustCompile(source, regexp2.Multiline)
	return &Pattern{source: source, re: re}
}

// String returns the pattern source.
func (p *Pattern) String() string {
	if p == nil {
		return ""
	}
	return p.source
}

// Valid reports whether the pattern compiled.
func (p *Pattern) Valid() bool {
	return p != nil && p.re != nil
}

// Err returns the compilation error, if any.
func (p *Pattern) Err() error {
	if p == nil {
		return nil
	}
	return p.err
}

// MatchString reports whether the pattern matches anywhere in s.
func (p *Pattern) MatchString(s string) bool {
	if !p.Valid() {
		return false
	}
	ok, err := p.re.MatchString(s)
	return err == nil && ok
}

// Find returns the first match in s as a rune range.
func (p *Pattern) Find(s string) (Range, bool) {
	if !p.Valid() {
		return Range{}, false
	}
	m, err := p.re.FindStringMatch(s)
	if err != nil || m == nil {
		return Range{}, false
	}
	return Range{Start: m.Index, End: m.Index + m.Length}, true
}

// FindAll returns every non-empty match in text, in order.
func (p *Pattern) FindAll(text []rune) []Range {
	if !p.Valid() {
		return nil
	}
	var out []Range
	m, err := p.re.FindRunesMatch(text)
	for err == nil && m != nil {
		if m.Length > 0 {
			out = append(out, Range{Start: m.Index, End: m.Index + m.Length})
		}
		m, err = p.re.FindNextMatch(m)
	}
	return out
}

// AnyMatch reports whether any of the patterns matches s.
func AnyMatch(patterns []*Pattern, s string) bool {
	for _, p := range patterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}
