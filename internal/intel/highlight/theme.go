package highlight

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/codeintel/internal/intel/language"
)

// DefaultThemeName is the chroma style used when no theme is configured.
const DefaultThemeName = "monokai"

// Font describes the face the base span is drawn with.
type Font struct {
	Family string
	Size   float64
}

// DefaultFont is the font of themes that do not name one.
var DefaultFont = Font{Family: "Menlo", Size: 12}

// Theme defines the font and colors used for highlighting.
type Theme struct {
	// Name is the display name of the theme.
	Name string

	// Font is applied to the whole text through the base span.
	Font Font

	// Background is the editor background color.
	Background tcell.Color

	// Selection is the selection highlight color.
	Selection tcell.Color

	// Text is the default text color.
	Text tcell.Color

	Keyword    tcell.Color
	String     tcell.Color
	Comment    tcell.Color
	Number     tcell.Color
	Annotation tcell.Color
	Type       tcell.Color
	Regex      tcell.Color
	Path       tcell.Color
}

// Color returns the color for a token kind. Unknown kinds use the text
// color.
func (t *Theme) Color(kind language.TokenKind) tcell.Color {
	if t == nil {
		return tcell.ColorDefault
	}
	switch kind {
	case language.TokenKeyword:
		return t.Keyword
	case language.TokenString:
		return t.String
	case language.TokenComment:
		return t.Comment
	case language.TokenNumber:
		return t.Number
	case language.TokenAnnotation:
		return t.Annotation
	case language.TokenType:
		return t.Type
	case language.TokenRegex:
		return t.Regex
	case language.TokenPath:
		return t.Path
	default:
		return t.Text
	}
}

// Style returns a terminal style for a token kind on the theme background.
func (t *Theme) Style(kind language.TokenKind) tcell.Style {
	if t == nil {
		return tcell.StyleDefault
	}
	return tcell.StyleDefault.Foreground(t.Color(kind)).Background(t.Background)
}

// DefaultTheme returns the monokai theme.
func DefaultTheme() *Theme {
	t, err := ThemeFromChroma(DefaultThemeName)
	if err != nil {
		return fallbackTheme()
	}
	return t
}

// ThemeNames returns the names accepted by ThemeFromChroma, sorted.
func ThemeNames() []string {
	return styles.Names()
}

// ThemeFromChroma converts a registered chroma style into a Theme.
func ThemeFromChroma(name string) (*Theme, error) {
	style, ok := styles.Registry[name]
	if !ok {
		for n, s := range styles.Registry {
			if strings.EqualFold(n, name) {
				style, ok = s, true
				break
			}
		}
	}
	if !ok || style == nil {
		return nil, fmt.Errorf("%w: %q", ErrThemeNotFound, name)
	}
	return themeFromStyle(style), nil
}

// chromaTokens lists, per theme slot, the chroma token types tried in order.
// The first type with an explicit entry in the style wins.
var chromaTokens = map[language.TokenKind][]chroma.TokenType{
	language.TokenKeyword:    {chroma.Keyword},
	language.TokenString:     {chroma.LiteralString},
	language.TokenComment:    {chroma.Comment},
	language.TokenNumber:     {chroma.LiteralNumber, chroma.Literal},
	language.TokenAnnotation: {chroma.NameDecorator, chroma.NameAttribute, chroma.NameBuiltin},
	language.TokenType:       {chroma.KeywordType, chroma.NameClass, chroma.NameBuiltin},
	language.TokenRegex:      {chroma.LiteralStringRegex, chroma.LiteralStringOther, chroma.LiteralString},
	language.TokenPath:       {chroma.LiteralStringOther, chroma.NameNamespace, chroma.LiteralString},
}

func themeFromStyle(style *chroma.Style) *Theme {
	t := &Theme{
		Name:       style.Name,
		Font:       DefaultFont,
		Background: tcellColor(style.Get(chroma.Background).Background),
		Text:       tcellColor(style.Get(chroma.Text).Colour),
		Selection:  tcellColor(style.Get(chroma.LineHighlight).Background),
	}
	if t.Selection == tcell.ColorDefault {
		t.Selection = t.Text
	}

	color := func(kind language.TokenKind) tcell.Color {
		types := chromaTokens[kind]
		for _, tt := range types {
			if style.Has(tt) {
				if c := style.Get(tt).Colour; c.IsSet() {
					return tcellColor(c)
				}
			}
		}
		if c := style.Get(types[len(types)-1]).Colour; c.IsSet() {
			return tcellColor(c)
		}
		return t.Text
	}
	t.Keyword = color(language.TokenKeyword)
	t.String = color(language.TokenString)
	t.Comment = color(language.TokenComment)
	t.Number = color(language.TokenNumber)
	t.Annotation = color(language.TokenAnnotation)
	t.Type = color(language.TokenType)
	t.Regex = color(language.TokenRegex)
	t.Path = color(language.TokenPath)
	return t
}

func tcellColor(c chroma.Colour) tcell.Color {
	if !c.IsSet() {
		return tcell.ColorDefault
	}
	return tcell.NewRGBColor(int32(c.Red()), int32(c.Green()), int32(c.Blue()))
}

// fallbackTheme mirrors monokai for builds where the chroma style is
// missing.
func fallbackTheme() *Theme {
	return &Theme{
		Name:       DefaultThemeName,
		Font:       DefaultFont,
		Background: tcell.NewHexColor(0x272822),
		Selection:  tcell.NewHexColor(0x3c3d38),
		Text:       tcell.NewHexColor(0xf8f8f2),
		Keyword:    tcell.NewHexColor(0x66d9ef),
		String:     tcell.NewHexColor(0xe6db74),
		Comment:    tcell.NewHexColor(0x75715e),
		Number:     tcell.NewHexColor(0xae81ff),
		Annotation: tcell.NewHexColor(0xa6e22e),
		Type:       tcell.NewHexColor(0x66d9ef),
		Regex:      tcell.NewHexColor(0xe6db74),
		Path:       tcell.NewHexColor(0xe6db74),
	}
}
