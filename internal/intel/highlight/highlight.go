package highlight

import (
	"context"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/codeintel/internal/intel/language"
)

// Span colors the rune range [Start, End) of a text.
type Span struct {
	Start int
	End   int
	Kind  language.TokenKind
	Color tcell.Color

	// Font is set on the base span only.
	Font Font
}

// Len returns the number of runes the span covers.
func (s Span) Len() int {
	return s.End - s.Start
}

// Base reports whether s is a base (whole text) span.
func (s Span) Base() bool {
	return s.Kind == language.TokenText
}

// Highlight applies lang's highlight rules to text. The first span always
// covers the whole text with the theme's font and text color; later spans
// take precedence over earlier ones where they overlap.
//
// A nil theme uses DefaultTheme. A nil lang yields only the base span.
func Highlight(text string, lang *language.Language, theme *Theme) []Span {
	spans, _ := HighlightContext(context.Background(), text, lang, theme)
	return spans
}

// HighlightContext is Highlight with cancellation. It checks ctx between
// rules and, once ctx is done, returns the spans produced so far together
// with ctx.Err().
func HighlightContext(ctx context.Context, text string, lang *language.Language, theme *Theme) ([]Span, error) {
	if theme == nil {
		theme = DefaultTheme()
	}
	runes := []rune(text)
	spans := []Span{{
		Start: 0,
		End:   len(runes),
		Kind:  language.TokenText,
		Color: theme.Text,
		Font:  theme.Font,
	}}
	if lang == nil || len(runes) == 0 {
		return spans, nil
	}

	for _, rule := range lang.Highlights {
		if err := ctx.Err(); err != nil {
			return spans, err
		}
		color := theme.Color(rule.Token)
		for _, r := range rule.Pattern.FindAll(runes) {
			spans = append(spans, Span{Start: r.Start, End: r.End, Kind: rule.Token, Color: color})
		}
	}
	return spans, nil
}

// Flatten resolves overlapping spans into ordered, non-overlapping runs.
// Where spans overlap the later one wins. Adjacent runs of the same kind
// and color are merged.
func Flatten(spans []Span) []Span {
	n := 0
	for _, s := range spans {
		n = max(n, s.End)
	}
	if n == 0 {
		return nil
	}

	owner := make([]int, n)
	for i := range owner {
		owner[i] = -1
	}
	for i, s := range spans {
		for p := max(s.Start, 0); p < s.End; p++ {
			owner[p] = i
		}
	}

	var out []Span
	for p := 0; p < n; {
		o := owner[p]
		q := p + 1
		for q < n && owner[q] == o {
			q++
		}
		if o >= 0 {
			run := spans[o]
			run.Start, run.End = p, q
			if k := len(out) - 1; k >= 0 && out[k].End == p && out[k].Kind == run.Kind && out[k].Color == run.Color {
				out[k].End = q
			} else {
				out = append(out, run)
			}
		}
		p = q
	}
	return out
}

// KindAt returns the kind of the last span covering offset, or TokenText.
func KindAt(spans []Span, offset int) language.TokenKind {
	for i := len(spans) - 1; i >= 0; i-- {
		if s := spans[i]; offset >= s.Start && offset < s.End {
			return s.Kind
		}
	}
	return language.TokenText
}
