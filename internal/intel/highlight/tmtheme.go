package highlight

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gdamore/tcell/v2"
	"howett.net/plist"

	"github.com/dshills/codeintel/internal/intel/language"
)

type tmTheme struct {
	Name     string      `plist:"name"`
	Settings []tmSetting `plist:"settings"`
}

type tmSetting struct {
	Name     string            `plist:"name"`
	Scope    string            `plist:"scope"`
	Settings map[string]string `plist:"settings"`
}

// tmScopes maps token kinds to the TextMate scope prefixes that color them,
// most specific first.
var tmScopes = map[language.TokenKind][]string{
	language.TokenKeyword:    {"keyword.control", "keyword", "storage.type"},
	language.TokenString:     {"string.quoted", "string"},
	language.TokenComment:    {"comment"},
	language.TokenNumber:     {"constant.numeric", "constant"},
	language.TokenAnnotation: {"meta.annotation", "entity.other.attribute-name", "storage.modifier", "entity.name.function"},
	language.TokenType:       {"entity.name.type", "support.type", "support.class", "storage.type"},
	language.TokenRegex:      {"string.regexp", "string"},
	language.TokenPath:       {"string.other.link", "markup.underline.link", "string"},
}

// LoadTMTheme reads a TextMate .tmTheme file.
func LoadTMTheme(path string) (*Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read theme %s: %w", path, err)
	}
	t, err := ParseTMTheme(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if t.Name == "" {
		t.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return t, nil
}

// ParseTMTheme decodes a TextMate theme property list. Scopes missing from
// the theme fall back to its foreground color.
func ParseTMTheme(data []byte) (*Theme, error) {
	var raw tmTheme
	if _, err := plist.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTheme, err)
	}

	scopes := make(map[string]tcell.Color)
	t := &Theme{
		Name:       raw.Name,
		Font:       DefaultFont,
		Background: tcell.ColorDefault,
		Text:       tcell.ColorDefault,
		Selection:  tcell.ColorDefault,
	}
	for _, s := range raw.Settings {
		if s.Scope == "" {
			t.Background = tmColor(s.Settings["background"], t.Background)
			t.Text = tmColor(s.Settings["foreground"], t.Text)
			t.Selection = tmColor(s.Settings["selection"], t.Selection)
			continue
		}
		fg := tmColor(s.Settings["foreground"], tcell.ColorDefault)
		if fg == tcell.ColorDefault {
			continue
		}
		for _, scope := range strings.Split(s.Scope, ",") {
			if scope = strings.TrimSpace(scope); scope != "" {
				scopes[scope] = fg
			}
		}
	}
	if len(raw.Settings) == 0 {
		return nil, fmt.Errorf("%w: no settings", ErrInvalidTheme)
	}

	lookup := func(kind language.TokenKind) tcell.Color {
		for _, prefix := range tmScopes[kind] {
			if c, ok := scopeColor(scopes, prefix); ok {
				return c
			}
		}
		return t.Text
	}
	t.Keyword = lookup(language.TokenKeyword)
	t.String = lookup(language.TokenString)
	t.Comment = lookup(language.TokenComment)
	t.Number = lookup(language.TokenNumber)
	t.Annotation = lookup(language.TokenAnnotation)
	t.Type = lookup(language.TokenType)
	t.Regex = lookup(language.TokenRegex)
	t.Path = lookup(language.TokenPath)
	return t, nil
}

// scopeColor finds the color of scope, or of the shortest scope in the
// theme that scope is a prefix of ("string" matches "string.quoted.double").
func scopeColor(scopes map[string]tcell.Color, scope string) (tcell.Color, bool) {
	if c, ok := scopes[scope]; ok {
		return c, true
	}
	best := ""
	for name := range scopes {
		if strings.HasPrefix(name, scope+".") && (best == "" || len(name) < len(best) || len(name) == len(best) && name < best) {
			best = name
		}
	}
	if best == "" {
		return tcell.ColorDefault, false
	}
	return scopes[best], true
}

// tmColor parses "#rrggbb" or "#rrggbbaa"; anything else yields def.
func tmColor(s string, def tcell.Color) tcell.Color {
	s = strings.TrimSpace(s)
	if len(s) == 9 && s[0] == '#' {
		s = s[:7]
	}
	if len(s) != 7 || s[0] != '#' {
		return def
	}
	c := tcell.GetColor(strings.ToLower(s))
	if c == tcell.ColorDefault {
		return def
	}
	return c
}
