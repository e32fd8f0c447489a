package language

import (
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"

	"github.com/dshills/codeintel/internal/log"
)

// Definition is the declarative form of a Language. Built-in languages and
// language packs loaded from YAML both go through Build.
type Definition struct {
	ID              string   `yaml:"id"`
	Name            string   `yaml:"name"`
	Aliases         []string `yaml:"aliases,omitempty"`
	Extensions      []string `yaml:"extensions"`
	CaseInsensitive bool     `yaml:"case_insensitive,omitempty"`

	Keywords    []string   `yaml:"keywords,omitempty"`
	Strings     []string   `yaml:"strings,omitempty"`
	Comments    []string   `yaml:"comments,omitempty"`
	Numbers     []string   `yaml:"numbers,omitempty"`
	Annotations []string   `yaml:"annotations,omitempty"`
	Types       []string   `yaml:"types,omitempty"`
	Extras      []ExtraDef `yaml:"extras,omitempty"`

	LineComment  string        `yaml:"line_comment,omitempty"`
	BlockComment *DelimiterDef `yaml:"block_comment,omitempty"`
	Import       string        `yaml:"import,omitempty"`

	FoldStyle   string      `yaml:"fold_style,omitempty"`
	Headers     []HeaderDef `yaml:"headers,omitempty"`
	Terminators []string    `yaml:"terminators,omitempty"`

	Indent IndentDef `yaml:"indent"`
}

// ExtraDef is a language-specific highlight rule applied after the standard
// categories.
type ExtraDef struct {
	Token   string `yaml:"token"`
	Pattern string `yaml:"pattern"`
}

// DelimiterDef holds start and end patterns for block comments.
type DelimiterDef struct {
	Start string `yaml:"start"`
	End   string `yaml:"end"`
}

// HeaderDef describes one declaration header rule.
type HeaderDef struct {
	Pattern     string   `yaml:"pattern"`
	Kind        string   `yaml:"kind"`
	Style       string   `yaml:"style,omitempty"`
	Terminators []string `yaml:"terminators,omitempty"`
}

// IndentDef describes indentation rules.
type IndentDef struct {
	Size             int      `yaml:"size,omitempty"`
	UseTabs          bool     `yaml:"use_tabs,omitempty"`
	TabWidth         int      `yaml:"tab_width,omitempty"`
	Increase         []string `yaml:"increase,omitempty"`
	Decrease         []string `yaml:"decrease,omitempty"`
	AlignWithOpening bool     `yaml:"align_with_opening,omitempty"`
	Continuation     int      `yaml:"continuation,omitempty"`
}

// Validate checks the parts of a definition that cannot be recovered from.
// Bad patterns are not validation errors; they compile to never-matching
// rules.
func (d Definition) Validate() error {
	if strings.TrimSpace(d.ID) == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidDefinition)
	}
	if d.FoldStyle != "" {
		if _, ok := ParseFoldStyle(d.FoldStyle); !ok {
			return fmt.Errorf("%w: %s: unknown fold style %q", ErrInvalidDefinition, d.ID, d.FoldStyle)
		}
	}
	for _, h := range d.Headers {
		if _, ok := ParseBlockKind(h.Kind); !ok {
			return fmt.Errorf("%w: %s: unknown header kind %q", ErrInvalidDefinition, d.ID, h.Kind)
		}
		if h.Style != "" {
			if _, ok := ParseFoldStyle(h.Style); !ok {
				return fmt.Errorf("%w: %s: unknown header style %q", ErrInvalidDefinition, d.ID, h.Style)
			}
		}
	}
	for _, e := range d.Extras {
		if _, ok := ParseTokenKind(e.Token); !ok {
			return fmt.Errorf("%w: %s: unknown token %q", ErrInvalidDefinition, d.ID, e.Token)
		}
	}
	if d.Indent.Size < 0 || d.Indent.TabWidth < 0 {
		return fmt.Errorf("%w: %s: negative indent size", ErrInvalidDefinition, d.ID)
	}
	return nil
}

// Build compiles a definition into a Language. Patterns that fail to compile
// are logged through logger and never match.
func Build(d Definition, logger *log.Logger) (*Language, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default().WithComponent("language")
	}
	logger = logger.WithField("language", d.ID)

	plain := PatternOptions{Logger: logger}
	folded := PatternOptions{Logger: logger, IgnoreCase: d.CaseInsensitive}
	compileAll := func(srcs []string, opts PatternOptions) []*Pattern {
		out := make([]*Pattern, 0, len(srcs))
		for _, s := range srcs {
			out = append(out, Compile(s, opts))
		}
		return out
	}

	l := &Language{
		ID:              strings.ToLower(d.ID),
		Name:            d.Name,
		Aliases:         lowerAll(d.Aliases),
		CaseInsensitive: d.CaseInsensitive,
		Keywords:        d.Keywords,
		LineComment:     d.LineComment,
		Brackets:        DefaultBrackets,
		Terminators:     d.Terminators,
	}
	if l.Name == "" {
		l.Name = d.ID
	}
	for _, e := range d.Extensions {
		l.Extensions = append(l.Extensions, normalizeExt(e))
	}

	if len(d.Keywords) > 0 {
		l.Highlights = append(l.Highlights, HighlightRule{
			Token:   TokenKeyword,
			Pattern: Compile(KeywordPattern(d.Keywords), folded),
		})
	}
	add := func(tok TokenKind, srcs []string) {
		for _, p := range compileAll(srcs, plain) {
			l.Highlights = append(l.Highlights, HighlightRule{Token: tok, Pattern: p})
		}
	}
	add(TokenString, d.Strings)
	add(TokenComment, d.Comments)
	add(TokenNumber, d.Numbers)
	add(TokenAnnotation, d.Annotations)
	add(TokenType, d.Types)
	for _, e := range d.Extras {
		tok, _ := ParseTokenKind(e.Token)
		l.Highlights = append(l.Highlights, HighlightRule{Token: tok, Pattern: Compile(e.Pattern, plain)})
	}

	if d.BlockComment != nil {
		l.BlockCommentStart = Compile(d.BlockComment.Start, plain)
		l.BlockCommentEnd = Compile(d.BlockComment.End, plain)
	}
	if d.Import != "" {
		l.Import = Compile(d.Import, folded)
	}

	l.FoldStyle, _ = ParseFoldStyle(d.FoldStyle)
	for _, h := range d.Headers {
		kind, _ := ParseBlockKind(h.Kind)
		rule := HeaderRule{
			Pattern:     Compile(h.Pattern, folded),
			Kind:        kind,
			Terminators: h.Terminators,
		}
		if h.Style != "" {
			rule.Style, _ = ParseFoldStyle(h.Style)
			rule.HasStyle = true
		}
		l.Headers = append(l.Headers, rule)
	}

	l.Indent = IndentRules{
		Size:             d.Indent.Size,
		UseTabs:          d.Indent.UseTabs,
		TabWidth:         d.Indent.TabWidth,
		Increase:         compileAll(d.Indent.Increase, folded),
		Decrease:         compileAll(d.Indent.Decrease, folded),
		AlignWithOpening: d.Indent.AlignWithOpening,
		ContinuationSize: d.Indent.Continuation,
	}
	if l.Indent.Size == 0 {
		l.Indent.Size = 4
	}
	if l.Indent.TabWidth == 0 {
		l.Indent.TabWidth = l.Indent.Size
	}
	return l, nil
}

// KeywordPattern builds a whole-word alternation for keywords.
func KeywordPattern(keywords []string) string {
	quoted := make([]string, len(keywords))
	for i, k := range keywords {
		quoted[i] = regexp2.Escape(k)
	}
	return `\b(?:` + strings.Join(quoted, "|") + `)\b`
}

func lowerAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(s)
	}
	return out
}
