package indent

import (
	"strings"

	"github.com/dshills/codeintel/internal/intel/language"
)

// AlignWindow is how many lines NewlineIndent searches backward for an
// unclosed ( or [ when the language aligns continuation lines.
const AlignWindow = 10

// Leading returns the run of spaces and tabs at the start of line.
func Leading(line string) string {
	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}

// Columns measures whitespace, counting a tab as tabWidth columns and any
// other rune as one.
func Columns(ws string, tabWidth int) int {
	if tabWidth <= 0 {
		tabWidth = 4
	}
	cols := 0
	for _, r := range ws {
		if r == '\t' {
			cols += tabWidth
		} else {
			cols++
		}
	}
	return cols
}

// Materialize renders cols columns of indentation. With UseTabs it writes as
// many tabs as fit and pads the remainder with spaces.
func Materialize(cols int, rules language.IndentRules) string {
	if cols <= 0 {
		return ""
	}
	if !rules.UseTabs {
		return strings.Repeat(" ", cols)
	}
	tw := rules.TabWidth
	if tw <= 0 {
		tw = 4
	}
	return strings.Repeat("\t", cols/tw) + strings.Repeat(" ", cols%tw)
}

// NewlineIndent computes the indentation for the line containing offset,
// a rune offset into text taken just after a newline was inserted. The line
// before it is the predecessor.
//
// In order: a current line matching a decrease rule dedents one level from
// the predecessor; a predecessor matching an increase rule indents one
// level; a language that aligns with openers lines up after the last
// unclosed ( or [ found within AlignWindow lines; otherwise the
// predecessor's whitespace is copied unchanged.
func NewlineIndent(text string, offset int, lang *language.Language) string {
	if lang == nil {
		lang = language.Plain()
	}
	lines := strings.Split(text, "\n")
	idx := lineIndex(text, offset)
	if idx == 0 || idx >= len(lines) {
		return ""
	}
	rules := lang.Indent
	size := lang.IndentSize()
	tw := lang.TabWidth()

	current := strings.TrimSpace(lines[idx])
	pred := lines[idx-1]
	predCols := Columns(Leading(pred), tw)

	if language.AnyMatch(rules.Decrease, current) {
		return Materialize(max(0, predCols-size), rules)
	}
	if language.AnyMatch(rules.Increase, strings.TrimSpace(pred)) {
		return Materialize(predCols+size, rules)
	}
	if rules.AlignWithOpening {
		if cols, ok := alignColumn(lines, idx, tw); ok {
			return Materialize(cols, rules)
		}
	}
	return Leading(pred)
}

// lineIndex returns the 0-based line holding rune offset, clamped to text.
func lineIndex(text string, offset int) int {
	if offset < 0 {
		offset = 0
	}
	idx := 0
	n := 0
	for _, r := range text {
		if n >= offset {
			break
		}
		if r == '\n' {
			idx++
		}
		n++
	}
	return idx
}

// alignColumn scans backward from the predecessor of line idx for the first
// line that opens more ( and [ than it closes, and returns that line's
// indent plus the column just after its innermost unclosed opener.
func alignColumn(lines []string, idx, tabWidth int) (int, bool) {
	stop := max(0, idx-AlignWindow)
	for k := idx - 1; k >= stop; k-- {
		lead := Leading(lines[k])
		body := lines[k][len(lead):]
		pos, ok := lastUnclosed(body)
		if !ok {
			continue
		}
		return Columns(lead, tabWidth) + pos + 1, true
	}
	return 0, false
}

// lastUnclosed reports the rune index of the innermost ( or [ left open on
// line. Lines whose net open count is not positive have none.
func lastUnclosed(line string) (int, bool) {
	var stack []int
	net := 0
	i := 0
	for _, r := range line {
		switch r {
		case '(', '[':
			stack = append(stack, i)
			net++
		case ')', ']':
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
			net--
		}
		i++
	}
	if net <= 0 || len(stack) == 0 {
		return 0, false
	}
	return stack[len(stack)-1], true
}

// Reindent rewrites the indentation of every non-blank line in text from a
// running level: a line matching a decrease rule lowers the level before it
// is written, and a line matching an increase rule raises it for the lines
// that follow. Rules see each line without its indentation, so the result
// is stable under a second pass. Blank lines are left as they are.
func Reindent(text string, lang *language.Language) string {
	lines := strings.Split(text, "\n")
	reindentLines(lines, 0, lang)
	return strings.Join(lines, "\n")
}

// ReindentRange re-indents only lines startLine through endLine (1-based,
// inclusive). The running level starts from the indentation of the first
// non-blank line in the range.
func ReindentRange(text string, startLine, endLine int, lang *language.Language) string {
	lines := strings.Split(text, "\n")
	start := max(1, startLine) - 1
	end := min(len(lines), endLine)
	if start >= end {
		return text
	}
	if lang == nil {
		lang = language.Plain()
	}
	level := 0
	for _, l := range lines[start:end] {
		if strings.TrimSpace(l) != "" {
			level = Columns(Leading(l), lang.TabWidth()) / lang.IndentSize()
			break
		}
	}
	reindentLines(lines[start:end], level, lang)
	return strings.Join(lines, "\n")
}

func reindentLines(lines []string, level int, lang *language.Language) {
	if lang == nil {
		lang = language.Plain()
	}
	rules := lang.Indent
	size := lang.IndentSize()
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if level > 0 && language.AnyMatch(rules.Decrease, trimmed) {
			level--
		}
		lines[i] = Materialize(level*size, rules) + strings.TrimLeft(line, " \t")
		if language.AnyMatch(rules.Increase, trimmed) {
			level++
		}
	}
}
