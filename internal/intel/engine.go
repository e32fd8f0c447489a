package intel

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/dshills/codeintel/internal/config"
	"github.com/dshills/codeintel/internal/intel/bracket"
	"github.com/dshills/codeintel/internal/intel/fold"
	"github.com/dshills/codeintel/internal/intel/highlight"
	"github.com/dshills/codeintel/internal/intel/indent"
	"github.com/dshills/codeintel/internal/intel/language"
	"github.com/dshills/codeintel/internal/log"
	"github.com/dshills/codeintel/internal/schedule"
)

// Re-export commonly used types for convenience.
type (
	// Language is a resolved rule set.
	Language = language.Language

	// Region is a foldable line range.
	Region = fold.Region

	// FoldKey identifies a region across re-detection.
	FoldKey = fold.Key

	// BracketMatch is the result of bracket matching.
	BracketMatch = bracket.Match

	// Span is a colored rune range.
	Span = highlight.Span
)

// Engine exposes the analyzers over a fixed language registry and theme.
//
// Thread-safety: All methods are safe for concurrent use.
type Engine struct {
	mu sync.RWMutex

	registry *language.Registry
	theme    *highlight.Theme
	cache    *highlight.Cache
	logger   *log.Logger

	syncThreshold int
	delay         time.Duration
	sched         *schedule.Scheduler
}

// New creates an engine with the built-in languages and the default theme.
func New(opts ...Option) *Engine {
	e := &Engine{
		syncThreshold: highlight.DefaultSyncThreshold,
		delay:         highlight.DefaultDelay,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = log.Default()
	}
	if e.registry == nil {
		e.registry = language.Default()
	}
	if e.theme == nil {
		e.theme = highlight.DefaultTheme()
	}
	e.sched = schedule.New()
	return e
}

// NewFromConfig creates an engine from cfg. Options are applied after the
// configuration and take precedence.
func NewFromConfig(cfg config.Config, opts ...Option) (*Engine, error) {
	probe := &Engine{}
	for _, opt := range opts {
		opt(probe)
	}
	logger := probe.logger
	if logger == nil {
		logger = log.Default()
	}
	base := []Option{WithLogger(logger)}

	reg, err := registryFromConfig(cfg, logger)
	if err != nil {
		return nil, err
	}
	base = append(base, WithRegistry(reg))

	theme, err := themeFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	base = append(base, WithTheme(theme))

	ttl, err := cfg.CacheTTL()
	if err != nil {
		return nil, fmt.Errorf("%w: highlight.cacheTTL: %v", config.ErrInvalidConfig, err)
	}
	if ttl > 0 {
		base = append(base, WithCache(highlight.NewCache(ttl)))
	}
	base = append(base, WithSyncThreshold(cfg.Highlight.SyncThreshold), WithDelay(cfg.Delay()))

	return New(append(base, opts...)...), nil
}

func registryFromConfig(cfg config.Config, logger *log.Logger) (*language.Registry, error) {
	reg := language.Default()
	for _, dir := range cfg.LanguageDirs {
		dir = config.ExpandPath(dir)
		next, err := reg.WithDefinitions(os.DirFS(dir), ".", logger.WithComponent("language"))
		if err != nil {
			return nil, fmt.Errorf("%w %s: %w", ErrLanguageDir, dir, err)
		}
		reg = next
	}

	overrides := make(map[string]language.Override, len(cfg.Languages))
	if cfg.Indent.TabWidth > 0 {
		width := cfg.Indent.TabWidth
		for _, l := range reg.Languages() {
			overrides[l.ID] = language.Override{TabWidth: &width}
		}
	}
	for id, o := range cfg.Languages {
		l, ok := reg.ByID(id)
		if !ok {
			logger.Warn("override for unknown language %q ignored", id)
			continue
		}
		merged := overrides[l.ID]
		merged.IndentSize = o.IndentSize
		merged.UseTabs = o.UseTabs
		if o.TabWidth != nil {
			merged.TabWidth = o.TabWidth
		}
		merged.Extensions = o.Extensions
		overrides[l.ID] = merged
	}
	return reg.WithOverrides(overrides), nil
}

func themeFromConfig(cfg config.Config) (*highlight.Theme, error) {
	if cfg.Highlight.ThemeFile != "" {
		t, err := highlight.LoadTMTheme(config.ExpandPath(cfg.Highlight.ThemeFile))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrTheme, err)
		}
		return t, nil
	}
	if cfg.Highlight.Theme == "" {
		return highlight.DefaultTheme(), nil
	}
	t, err := highlight.ThemeFromChroma(cfg.Highlight.Theme)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTheme, err)
	}
	return t, nil
}

// Registry returns the language registry.
func (e *Engine) Registry() *language.Registry {
	return e.registry
}

// Language returns the language named by an ID, alias or extension. Unknown
// names yield the plain language.
func (e *Engine) Language(name string) *Language {
	if l, ok := e.registry.ByID(name); ok {
		return l
	}
	return e.registry.Resolve(name)
}

// Resolve returns the language for a file extension.
func (e *Engine) Resolve(ext string) *Language {
	return e.registry.Resolve(ext)
}

// ResolveFilename returns the language for a file name.
func (e *Engine) ResolveFilename(name string) *Language {
	return e.registry.ResolveFilename(name)
}

// DetectFolds returns the foldable regions of text, ordered by start line.
func (e *Engine) DetectFolds(text, lang string) []Region {
	return fold.Detect(text, e.Language(lang))
}

// MatchBracket matches the bracket just before the cursor, or else the one
// at the cursor.
func (e *Engine) MatchBracket(text string, cursor int) (BracketMatch, bool) {
	return bracket.Nearest(text, cursor)
}

// MatchBracketAt matches the bracket at pos only.
func (e *Engine) MatchBracketAt(text string, pos int) (BracketMatch, bool) {
	return bracket.MatchAt(text, pos)
}

// NewlineIndent returns the whitespace for the line containing offset.
func (e *Engine) NewlineIndent(text string, offset int, lang string) string {
	return indent.NewlineIndent(text, offset, e.Language(lang))
}

// Reindent re-indents every line of text.
func (e *Engine) Reindent(text, lang string) string {
	return indent.Reindent(text, e.Language(lang))
}

// ReindentRange re-indents the 1-based inclusive line range of text.
func (e *Engine) ReindentRange(text string, startLine, endLine int, lang string) string {
	return indent.ReindentRange(text, startLine, endLine, e.Language(lang))
}

// Highlight colors text with the current theme.
func (e *Engine) Highlight(text, lang string) []Span {
	theme := e.Theme()
	if e.cache != nil {
		return e.cache.Highlight(text, e.Language(lang), theme)
	}
	return highlight.Highlight(text, e.Language(lang), theme)
}

// Theme returns the current theme.
func (e *Engine) Theme() *highlight.Theme {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.theme
}

// SetTheme replaces the theme used by later highlights. Existing sessions
// keep theirs.
func (e *Engine) SetTheme(t *highlight.Theme) {
	if t == nil {
		return
	}
	e.mu.Lock()
	e.theme = t
	e.mu.Unlock()
}

// SetThemeName switches to a built-in theme.
func (e *Engine) SetThemeName(name string) error {
	t, err := highlight.ThemeFromChroma(name)
	if err != nil {
		return err
	}
	e.SetTheme(t)
	return nil
}

// NewSession starts a live highlight session for lang. onResult receives
// every delivered result; see highlight.Session.
func (e *Engine) NewSession(lang string, onResult func(highlight.Result)) *highlight.Session {
	return highlight.NewSession(e.Language(lang), e.Theme(), onResult,
		highlight.WithScheduler(e.sched),
		highlight.WithCache(e.cache),
		highlight.WithSyncThreshold(e.syncThreshold),
		highlight.WithDelay(e.delay),
		highlight.WithLogger(e.logger),
	)
}

// Close cancels the pending work of every session created by the engine.
func (e *Engine) Close() {
	e.sched.Stop()
}
