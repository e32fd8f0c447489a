package highlight

import (
	"context"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/dshills/codeintel/internal/intel/language"
	"github.com/dshills/codeintel/internal/log"
	"github.com/dshills/codeintel/internal/schedule"
)

// Session defaults.
const (
	// DefaultSyncThreshold is the text length in runes from which updates
	// are debounced instead of highlighted inline.
	DefaultSyncThreshold = 5000

	// DefaultDelay is the quiet period before a debounced highlight runs.
	DefaultDelay = 100 * time.Millisecond
)

// Result is a highlight delivered by a Session.
type Result struct {
	// Version is the value Update returned for the highlighted snapshot.
	Version uint64
	Spans   []Span
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithSyncThreshold sets the rune count from which updates are debounced.
func WithSyncThreshold(n int) SessionOption {
	return func(s *Session) {
		if n >= 0 {
			s.threshold = n
		}
	}
}

// WithDelay sets the debounce delay.
func WithDelay(d time.Duration) SessionOption {
	return func(s *Session) {
		if d >= 0 {
			s.delay = d
		}
	}
}

// WithScheduler runs debounced work on sched. The session does not stop a
// scheduler it did not create.
func WithScheduler(sched *schedule.Scheduler) SessionOption {
	return func(s *Session) {
		s.sched = sched
	}
}

// WithCache consults c before highlighting.
func WithCache(c *Cache) SessionOption {
	return func(s *Session) {
		s.cache = c
	}
}

// WithLogger sets the session logger.
func WithLogger(l *log.Logger) SessionOption {
	return func(s *Session) {
		s.logger = l
	}
}

// Session keeps the highlight of one live document current.
//
// Every Update bumps the session version. Texts shorter than the sync
// threshold are highlighted before Update returns; longer texts are
// highlighted after the debounce delay on a scheduler goroutine. A result is
// delivered only while its version is still the latest, so a slow recompute
// never overwrites the result of a newer snapshot.
//
// Thread-safety: All methods are safe for concurrent use. Results are
// delivered one at a time and in version order; the callback must not call
// back into the session.
type Session struct {
	mu        sync.Mutex
	deliverMu sync.Mutex

	lang      *language.Language
	theme     *Theme
	threshold int
	delay     time.Duration
	sched     *schedule.Scheduler
	owned     bool
	cache     *Cache
	logger    *log.Logger
	onResult  func(Result)

	version   uint64
	delivered uint64
	token     *schedule.Token
	pending   string
	queued    bool
	last      Result
	closed    bool
}

// NewSession creates a session highlighting with lang and theme and
// reporting results to onResult.
func NewSession(lang *language.Language, theme *Theme, onResult func(Result), opts ...SessionOption) *Session {
	if theme == nil {
		theme = DefaultTheme()
	}
	s := &Session{
		lang:      lang,
		theme:     theme,
		threshold: DefaultSyncThreshold,
		delay:     DefaultDelay,
		onResult:  onResult,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.sched == nil {
		s.sched = schedule.New()
		s.owned = true
	}
	if s.logger == nil {
		s.logger = log.Nop()
	}
	s.logger = s.logger.WithComponent("highlight")
	return s
}

// Update records a new text snapshot and returns its version. A closed
// session ignores updates and returns 0.
func (s *Session) Update(text string) uint64 {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return 0
	}
	s.version++
	v := s.version
	theme := s.theme
	if s.token != nil {
		s.token.Cancel()
		s.token = nil
	}

	if utf8.RuneCountInString(text) < s.threshold {
		s.queued = false
		s.pending = ""
		s.mu.Unlock()
		s.deliver(v, s.highlight(text, theme))
		return v
	}

	s.pending = text
	s.queued = true
	s.token = s.sched.Schedule(s.delay, func(ctx context.Context) {
		s.run(ctx, text, theme, v)
	})
	s.mu.Unlock()
	return v
}

func (s *Session) run(ctx context.Context, text string, theme *Theme, v uint64) {
	var spans []Span
	if s.cache != nil {
		spans = s.cache.Highlight(text, s.lang, theme)
	} else {
		var err error
		spans, err = HighlightContext(ctx, text, s.lang, theme)
		if err != nil {
			s.logger.Debug("highlight of version %d abandoned: %v", v, err)
			return
		}
	}
	s.deliver(v, spans)
}

func (s *Session) highlight(text string, theme *Theme) []Span {
	if s.cache != nil {
		return s.cache.Highlight(text, s.lang, theme)
	}
	return Highlight(text, s.lang, theme)
}

// deliver hands spans computed for version v to the callback unless a newer
// snapshot has been recorded or v was already delivered.
func (s *Session) deliver(v uint64, spans []Span) {
	s.deliverMu.Lock()
	defer s.deliverMu.Unlock()

	s.mu.Lock()
	if s.closed || v != s.version || v <= s.delivered {
		latest := s.version
		s.mu.Unlock()
		s.logger.Debug("discarding stale highlight for version %d (latest %d)", v, latest)
		return
	}
	s.delivered = v
	s.queued = false
	s.pending = ""
	s.last = Result{Version: v, Spans: spans}
	res := s.last
	cb := s.onResult
	s.mu.Unlock()

	if cb != nil {
		cb(res)
	}
}

// Flush highlights a debounced snapshot immediately instead of waiting for
// the delay. It does nothing when no update is waiting.
func (s *Session) Flush() {
	s.mu.Lock()
	if s.closed || !s.queued {
		s.mu.Unlock()
		return
	}
	if s.token != nil {
		s.token.Cancel()
		s.token = nil
	}
	text, v, theme := s.pending, s.version, s.theme
	s.mu.Unlock()

	s.deliver(v, s.highlight(text, theme))
}

// Pending reports whether a debounced update has not been delivered yet.
func (s *Session) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queued
}

// Version returns the version of the latest update.
func (s *Session) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// Last returns the most recently delivered result.
func (s *Session) Last() Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// SetTheme changes the theme used by later updates.
func (s *Session) SetTheme(theme *Theme) {
	if theme == nil {
		return
	}
	s.mu.Lock()
	s.theme = theme
	s.mu.Unlock()
}

// Close cancels pending work. Nothing is delivered after Close returns.
func (s *Session) Close() {
	s.deliverMu.Lock()
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		s.deliverMu.Unlock()
		return
	}
	s.closed = true
	s.queued = false
	if s.token != nil {
		s.token.Cancel()
		s.token = nil
	}
	s.mu.Unlock()
	s.deliverMu.Unlock()

	if s.owned {
		s.sched.Stop()
	}
}
