package fold

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dshills/codeintel/internal/intel/indent"
	"github.com/dshills/codeintel/internal/intel/language"
)

// Detect finds every foldable region in text for lang.
//
// Regions come from four passes: import groups, declaration headers, block
// comments and generic brace blocks. Their results are concatenated and
// stably sorted by start line. Regions may nest or overlap. Detect never
// fails; structure it cannot close produces no region.
func Detect(text string, lang *language.Language) []Region {
	if lang == nil {
		lang = language.Plain()
	}
	d := &detector{lines: strings.Split(text, "\n"), lang: lang}

	var regions []Region
	regions = append(regions, d.imports()...)
	headers, opened := d.headers()
	regions = append(regions, headers...)
	regions = append(regions, d.comments()...)
	regions = append(regions, d.braces(opened)...)

	sort.SliceStable(regions, func(i, j int) bool {
		return regions[i].StartLine < regions[j].StartLine
	})
	return regions
}

type detector struct {
	lines []string
	lang  *language.Language
}

// region builds a region from 0-based line indexes.
func (d *detector) region(start, end int, kind Kind) Region {
	first := d.lines[start]
	col := 0
	for _, r := range first {
		if r != ' ' && r != '\t' {
			break
		}
		col++
	}
	return Region{
		StartLine:   start + 1,
		EndLine:     end + 1,
		StartColumn: col,
		EndColumn:   utf8.RuneCountInString(strings.TrimRight(d.lines[end], "\r")),
		Kind:        kind,
		Label:       strings.TrimSpace(first),
	}
}

func (d *detector) imports() []Region {
	if d.lang.Import == nil {
		return nil
	}
	var out []Region
	runStart := -1
	flush := func(end int) {
		if runStart >= 0 && end > runStart {
			out = append(out, d.region(runStart, end, language.KindImport))
		}
		runStart = -1
	}
	for i, line := range d.lines {
		if d.lang.Import.MatchString(line) {
			if runStart < 0 {
				runStart = i
			}
			continue
		}
		flush(i - 1)
	}
	flush(len(d.lines) - 1)
	return out
}

// headers returns header regions and the set of lines that opened one.
func (d *detector) headers() ([]Region, map[int]bool) {
	opened := make(map[int]bool)
	if len(d.lang.Headers) == 0 {
		return nil, opened
	}
	var out []Region
	for i, line := range d.lines {
		rule, ok := d.headerAt(line)
		if !ok {
			continue
		}
		style := d.lang.FoldStyle
		if rule.HasStyle {
			style = rule.Style
		}

		var end int
		switch style {
		case language.FoldIndentation:
			end, ok = d.indentEnd(i)
		case language.FoldKeyword:
			terms := rule.Terminators
			if len(terms) == 0 {
				terms = d.lang.Terminators
			}
			end, ok = d.keywordEnd(i, terms)
		default:
			end, ok = d.braceEnd(i, true)
		}
		if !ok {
			continue
		}
		opened[i] = true
		out = append(out, d.region(i, end, rule.Kind))
	}
	return out, opened
}

func (d *detector) headerAt(line string) (language.HeaderRule, bool) {
	for _, h := range d.lang.Headers {
		if h.Pattern.MatchString(line) {
			return h, true
		}
	}
	return language.HeaderRule{}, false
}

func (d *detector) comments() []Region {
	start, end := d.lang.BlockCommentStart, d.lang.BlockCommentEnd
	if start == nil || end == nil {
		return nil
	}
	var out []Region
	for i := 0; i < len(d.lines); i++ {
		m, ok := start.Find(d.lines[i])
		if !ok {
			continue
		}
		// Comments that close on their own line do not fold.
		rest := string([]rune(d.lines[i])[m.End:])
		if end.MatchString(rest) {
			continue
		}
		for j := i + 1; j < len(d.lines); j++ {
			if end.MatchString(d.lines[j]) {
				out = append(out, d.region(i, j, language.KindComment))
				i = j
				break
			}
		}
	}
	return out
}

func (d *detector) braces(opened map[int]bool) []Region {
	var out []Region
	for i, line := range d.lines {
		if opened[i] || !strings.HasSuffix(strings.TrimSpace(line), "{") {
			continue
		}
		if end, ok := d.braceEnd(i, false); ok {
			out = append(out, d.region(i, end, language.KindBlock))
		}
	}
	return out
}

// braceEnd scans from line start counting braces and returns the line where
// the depth first returns to zero after going positive. Closers seen at depth
// zero are ignored. Until the first opener is seen, a blank line, a line
// ending in ";", a line starting with "}" or another header abandons the
// search; with header set the last check applies.
func (d *detector) braceEnd(start int, header bool) (int, bool) {
	depth := 0
	open := false
	for i := start; i < len(d.lines); i++ {
		line := d.lines[i]
		if !open && i > start {
			trimmed := strings.TrimSpace(line)
			if trimmed == "" || strings.HasSuffix(trimmed, ";") || strings.HasPrefix(trimmed, "}") {
				return 0, false
			}
			if header {
				if _, ok := d.headerAt(line); ok {
					return 0, false
				}
			}
		}
		for _, c := range braceRunes(line, d.lang.LineComment) {
			if c == '{' {
				depth++
				open = true
				continue
			}
			if depth == 0 {
				continue
			}
			depth--
			if open && depth == 0 {
				return i, i > start
			}
		}
	}
	return 0, false
}

// braceRunes returns the braces on line that are outside double-quoted
// strings and before any line comment.
func braceRunes(line, lineComment string) []byte {
	var out []byte
	inString := false
	for j := 0; j < len(line); j++ {
		c := line[j]
		if inString {
			switch c {
			case '\\':
				j++
			case '"':
				inString = false
			}
			continue
		}
		if lineComment != "" && strings.HasPrefix(line[j:], lineComment) {
			break
		}
		switch c {
		case '"':
			inString = true
		case '{', '}':
			out = append(out, c)
		}
	}
	return out
}

// indentEnd returns the last line after start indented deeper than start.
// Blank and comment lines are skipped.
func (d *detector) indentEnd(start int) (int, bool) {
	tw := d.lang.TabWidth()
	base := indent.Columns(indent.Leading(d.lines[start]), tw)
	end := -1
	for i := start + 1; i < len(d.lines); i++ {
		trimmed := strings.TrimSpace(d.lines[i])
		if trimmed == "" || d.lang.IsComment(trimmed) {
			continue
		}
		if indent.Columns(indent.Leading(d.lines[i]), tw) <= base {
			break
		}
		end = i
	}
	return end, end > start
}

// keywordEnd returns the first line after start whose trimmed text is, or
// begins with, one of terms followed by a non-identifier rune.
func (d *detector) keywordEnd(start int, terms []string) (int, bool) {
	if len(terms) == 0 {
		return 0, false
	}
	fold := d.lang.CaseInsensitive
	want := make([]string, len(terms))
	for i, t := range terms {
		if fold {
			t = strings.ToLower(t)
		}
		want[i] = t
	}
	for i := start + 1; i < len(d.lines); i++ {
		trimmed := strings.TrimSpace(d.lines[i])
		if fold {
			trimmed = strings.ToLower(trimmed)
		}
		for _, t := range want {
			if terminates(trimmed, t) {
				return i, true
			}
		}
	}
	return 0, false
}

func terminates(line, term string) bool {
	if !strings.HasPrefix(line, term) {
		return false
	}
	rest := line[len(term):]
	if rest == "" {
		return true
	}
	r, _ := utf8.DecodeRuneInString(rest)
	return !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_')
}
