package language

import (
	"slices"
	"strings"
)

// FoldStyle selects how the end of a declaration block is found.
type FoldStyle uint8

const (
	// FoldBrace ends a block where its brace depth returns to zero.
	FoldBrace FoldStyle = iota
	// FoldIndentation ends a block at the last line indented deeper than
	// its header.
	FoldIndentation
	// FoldKeyword ends a block at a terminator line such as "end" or "fi".
	FoldKeyword
)

// String returns the style name used in definition files.
func (s FoldStyle) String() string {
	switch s {
	case FoldBrace:
		return "brace"
	case FoldIndentation:
		return "indentation"
	case FoldKeyword:
		return "keyword"
	default:
		return "unknown"
	}
}

// ParseFoldStyle parses a style name. The empty string and unknown names
// return FoldBrace and false.
func ParseFoldStyle(s string) (FoldStyle, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "brace", "braces":
		return FoldBrace, true
	case "indentation", "indent":
		return FoldIndentation, true
	case "keyword", "keywords", "terminator":
		return FoldKeyword, true
	default:
		return FoldBrace, false
	}
}

// BlockKind classifies a foldable block.
type BlockKind string

// Block kinds.
const (
	KindFunction    BlockKind = "function"
	KindClass       BlockKind = "class"
	KindStruct      BlockKind = "struct"
	KindEnum        BlockKind = "enum"
	KindProtocol    BlockKind = "protocol"
	KindExtension   BlockKind = "extension"
	KindBlock       BlockKind = "block"
	KindComment     BlockKind = "comment"
	KindImport      BlockKind = "import"
	KindConditional BlockKind = "conditional"
	KindLoop        BlockKind = "loop"
	KindSwitch      BlockKind = "switch"
)

var blockKinds = []BlockKind{
	KindFunction, KindClass, KindStruct, KindEnum, KindProtocol, KindExtension,
	KindBlock, KindComment, KindImport, KindConditional, KindLoop, KindSwitch,
}

// ParseBlockKind parses a kind name.
func ParseBlockKind(s string) (BlockKind, bool) {
	k := BlockKind(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(blockKinds, k) {
		return k, true
	}
	return "", false
}

// TokenKind names the category a highlight rule colors.
type TokenKind uint8

// Token kinds in highlight priority order. TokenText is the base layer.
const (
	TokenText TokenKind = iota
	TokenKeyword
	TokenString
	TokenComment
	TokenNumber
	TokenAnnotation
	TokenType
	TokenRegex
	TokenPath
)

// String returns the token kind name.
func (k TokenKind) String() string {
	switch k {
	case TokenText:
		return "text"
	case TokenKeyword:
		return "keyword"
	case TokenString:
		return "string"
	case TokenComment:
		return "comment"
	case TokenNumber:
		return "number"
	case TokenAnnotation:
		return "annotation"
	case TokenType:
		return "type"
	case TokenRegex:
		return "regex"
	case TokenPath:
		return "path"
	default:
		return "unknown"
	}
}

// ParseTokenKind parses a token kind name.
func ParseTokenKind(s string) (TokenKind, bool) {
	for k := TokenText; k <= TokenPath; k++ {
		if k.String() == strings.ToLower(strings.TrimSpace(s)) {
			return k, true
		}
	}
	return TokenText, false
}

// HighlightRule colors every match of Pattern as Token.
type HighlightRule struct {
	Token   TokenKind
	Pattern *Pattern
}

// HeaderRule recognizes a declaration header line.
type HeaderRule struct {
	// Pattern matches the header line.
	Pattern *Pattern
	// Kind is the kind of region the header opens.
	Kind BlockKind
	// Style overrides the language fold style when HasStyle is set.
	Style    FoldStyle
	HasStyle bool
	// Terminators end keyword-style blocks opened by this header. When empty
	// the language terminators are used.
	Terminators []string
}

// BracketPair is an opening/closing delimiter pair.
type BracketPair struct {
	Open  rune
	Close rune
}

// DefaultBrackets is the fixed delimiter table shared by all languages.
var DefaultBrackets = []BracketPair{
	{'(', ')'}, {'[', ']'}, {'{', '}'}, {'<', '>'},
	{'"', '"'}, {'\'', '\''}, {'`', '`'},
}

// IndentRules governs newline indentation and re-indentation.
type IndentRules struct {
	// Size is the number of columns one indent level adds.
	Size int
	// UseTabs writes indentation with tab characters.
	UseTabs bool
	// TabWidth is the column width of a tab when measuring existing
	// indentation.
	TabWidth int
	// Increase patterns are matched against a line; a match indents the
	// following line one level deeper.
	Increase []*Pattern
	// Decrease patterns are matched against a line's trimmed content; a match
	// dedents that line one level.
	Decrease []*Pattern
	// AlignWithOpening aligns continuation lines after an unclosed ( or [.
	AlignWithOpening bool
	// ContinuationSize is the declared indent for wrapped expressions.
	// NewlineIndent aligns after the opener and does not apply it.
	ContinuationSize int
}

// Language is the immutable rule set for one language.
type Language struct {
	ID         string
	Name       string
	Aliases    []string
	Extensions []string

	// CaseInsensitive applies to keywords, headers and terminators.
	CaseInsensitive bool

	Keywords    []string
	LineComment string

	// Highlights are applied in order; later rules win on overlap.
	Highlights []HighlightRule

	Brackets []BracketPair
	Indent   IndentRules

	FoldStyle   FoldStyle
	Headers     []HeaderRule
	Terminators []string
	Import      *Pattern

	// BlockCommentStart and BlockCommentEnd delimit multi-line comments and
	// docstrings for folding.
	BlockCommentStart *Pattern
	BlockCommentEnd   *Pattern
}

// TabWidth returns the measuring width of a tab, defaulting to 4.
func (l *Language) TabWidth() int {
	if l == nil || l.Indent.TabWidth <= 0 {
		return 4
	}
	return l.Indent.TabWidth
}

// IndentSize returns the indent step, defaulting to 4.
func (l *Language) IndentSize() int {
	if l == nil || l.Indent.Size <= 0 {
		return 4
	}
	return l.Indent.Size
}

// IsComment reports whether the trimmed line starts with the line comment
// prefix.
func (l *Language) IsComment(trimmed string) bool {
	return l != nil && l.LineComment != "" && strings.HasPrefix(trimmed, l.LineComment)
}

// HasExtension reports whether ext (without leading dot) belongs to the
// language.
func (l *Language) HasExtension(ext string) bool {
	ext = normalizeExt(ext)
	for _, e := range l.Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// clone returns a copy that can be modified without touching l.
func (l *Language) clone() *Language {
	c := *l
	c.Aliases = slices.Clone(l.Aliases)
	c.Extensions = slices.Clone(l.Extensions)
	c.Indent.Increase = slices.Clone(l.Indent.Increase)
	c.Indent.Decrease = slices.Clone(l.Indent.Decrease)
	return &c
}

// Plain returns the minimal language used for unknown extensions: no
// keywords, no highlight rules, generic brace folding only, and indentation
// that copies the previous line.
func Plain() *Language {
	return &Language{
		ID:        "plain",
		Name:      "Plain Text",
		Aliases:   []string{"text", "txt"},
		Brackets:  DefaultBrackets,
		FoldStyle: FoldBrace,
		Indent: IndentRules{
			Size:     4,
			TabWidth: 4,
		},
	}
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
}
