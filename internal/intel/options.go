package intel

import (
	"time"

	"github.com/dshills/codeintel/internal/intel/highlight"
	"github.com/dshills/codeintel/internal/intel/language"
	"github.com/dshills/codeintel/internal/log"
)

// Option configures an Engine during creation.
type Option func(*Engine)

// WithRegistry sets the language registry.
func WithRegistry(r *language.Registry) Option {
	return func(e *Engine) {
		if r != nil {
			e.registry = r
		}
	}
}

// WithTheme sets the highlight theme.
func WithTheme(t *highlight.Theme) Option {
	return func(e *Engine) {
		if t != nil {
			e.theme = t
		}
	}
}

// WithLogger sets the engine logger.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// WithCache enables result caching for Highlight. A nil cache disables it.
func WithCache(c *highlight.Cache) Option {
	return func(e *Engine) {
		e.cache = c
	}
}

// WithSyncThreshold sets the text length from which sessions debounce.
func WithSyncThreshold(n int) Option {
	return func(e *Engine) {
		if n >= 0 {
			e.syncThreshold = n
		}
	}
}

// WithDelay sets the session debounce delay.
func WithDelay(d time.Duration) Option {
	return func(e *Engine) {
		if d >= 0 {
			e.delay = d
		}
	}
}
