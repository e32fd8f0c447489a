package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dshills/codeintel/internal/log"
)

// Limits enforced by Validate.
const (
	MaxIndentSize = 16
	MaxTabWidth   = 16
)

// Config is the complete engine configuration.
type Config struct {
	Log       LogConfig       `toml:"log"`
	Highlight HighlightConfig `toml:"highlight"`
	Indent    IndentConfig    `toml:"indent"`

	// Languages overrides indentation and extensions per language ID.
	Languages map[string]LanguageOverride `toml:"languages"`

	// LanguageDirs lists directories of YAML language definitions loaded on
	// top of the built-in languages.
	LanguageDirs []string `toml:"languageDirs"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level"`
	// Output is "stderr", "stdout" or a file path.
	Output string `toml:"output"`
}

// HighlightConfig configures highlighting and live sessions.
type HighlightConfig struct {
	// Theme names a built-in theme.
	Theme string `toml:"theme"`
	// ThemeFile is a .tmTheme file that takes precedence over Theme.
	ThemeFile string `toml:"themeFile"`
	// SyncThreshold is the text length in runes from which live updates are
	// debounced.
	SyncThreshold int `toml:"syncThreshold"`
	// DebounceMS is the debounce delay in milliseconds.
	DebounceMS int `toml:"debounceMs"`
	// CacheTTL is how long highlight results are cached, as a duration
	// string. "0" disables the cache.
	CacheTTL string `toml:"cacheTTL"`
}

// IndentConfig holds defaults applied to every language.
type IndentConfig struct {
	// TabWidth overrides the column width of a tab when measuring
	// indentation. Zero keeps each language's own width.
	TabWidth int `toml:"tabWidth"`
}

// LanguageOverride changes parts of one language's rules. Nil fields keep
// the language's value.
type LanguageOverride struct {
	IndentSize *int     `toml:"indentSize"`
	UseTabs    *bool    `toml:"useTabs"`
	TabWidth   *int     `toml:"tabWidth"`
	Extensions []string `toml:"extensions"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Log: LogConfig{
			Level:  "info",
			Output: "stderr",
		},
		Highlight: HighlightConfig{
			Theme:         "monokai",
			SyncThreshold: 5000,
			DebounceMS:    100,
			CacheTTL:      "5m",
		},
	}
}

// Validate reports every out-of-range setting, joined into one error
// wrapping ErrInvalidConfig.
func (c Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}

	if !log.ValidLevel(c.Log.Level) {
		bad("log.level %q is not one of debug, info, warn, error", c.Log.Level)
	}
	if c.Highlight.SyncThreshold < 0 {
		bad("highlight.syncThreshold must not be negative, got %d", c.Highlight.SyncThreshold)
	}
	if c.Highlight.DebounceMS < 0 {
		bad("highlight.debounceMs must not be negative, got %d", c.Highlight.DebounceMS)
	}
	if _, err := c.CacheTTL(); err != nil {
		bad("highlight.cacheTTL: %v", err)
	}
	if c.Indent.TabWidth < 0 || c.Indent.TabWidth > MaxTabWidth {
		bad("indent.tabWidth must be between 0 and %d, got %d", MaxTabWidth, c.Indent.TabWidth)
	}
	for id, o := range c.Languages {
		if o.IndentSize != nil && (*o.IndentSize < 1 || *o.IndentSize > MaxIndentSize) {
			bad("languages.%s.indentSize must be between 1 and %d, got %d", id, MaxIndentSize, *o.IndentSize)
		}
		if o.TabWidth != nil && (*o.TabWidth < 1 || *o.TabWidth > MaxTabWidth) {
			bad("languages.%s.tabWidth must be between 1 and %d, got %d", id, MaxTabWidth, *o.TabWidth)
		}
	}
	return errors.Join(errs...)
}

// Delay returns the highlight debounce delay.
func (c Config) Delay() time.Duration {
	return time.Duration(c.Highlight.DebounceMS) * time.Millisecond
}

// CacheTTL parses the highlight cache lifetime. Zero disables caching.
func (c Config) CacheTTL() (time.Duration, error) {
	s := strings.TrimSpace(c.Highlight.CacheTTL)
	if s == "" || s == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("negative duration %s", s)
	}
	return d, nil
}

// Logger builds a logger from the log section. The returned close function
// releases an opened log file.
func (c Config) Logger() (*log.Logger, func() error, error) {
	cfg := log.DefaultConfig()
	cfg.Level = log.ParseLevel(c.Log.Level)
	closeFn := func() error { return nil }

	switch out := strings.TrimSpace(c.Log.Output); out {
	case "", "stderr":
	case "stdout":
		cfg.Output = os.Stdout
	default:
		f, err := os.OpenFile(ExpandPath(out), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		cfg.Output = f
		closeFn = f.Close
	}
	return log.New(cfg), closeFn, nil
}

// ExpandPath expands a leading "~" and environment variables in path.
func ExpandPath(path string) string {
	path = os.ExpandEnv(path)
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[1:])
		}
	}
	return path
}

// DefaultPath returns the user configuration file location,
// $XDG_CONFIG_HOME/codeintel/config.toml or its OS equivalent.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "codeintel", "config.toml")
}
