package document

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/codeintel/internal/intel"
	"github.com/dshills/codeintel/internal/intel/bracket"
	"github.com/dshills/codeintel/internal/intel/fold"
	"github.com/dshills/codeintel/internal/intel/highlight"
)

// Option configures a Document.
type Option func(*Document)

// WithLanguage fixes the language by ID, alias or extension instead of
// resolving it from the path.
func WithLanguage(name string) Option {
	return func(d *Document) {
		d.langName = name
	}
}

// WithFoldState restores fold flags persisted with FoldState.
func WithFoldState(state map[string]bool) Option {
	return func(d *Document) {
		d.flags = fold.NewFlagsFrom(state)
	}
}

// WithHighlighter starts a live highlight session that is fed every text
// change and reports results to fn.
func WithHighlighter(fn func(highlight.Result)) Option {
	return func(d *Document) {
		d.onHighlight = fn
	}
}

// Document is an open text together with the analyzer state the host keeps
// for it.
type Document struct {
	mu sync.RWMutex
	// feedMu orders session updates with text changes.
	feedMu sync.Mutex

	id      uuid.UUID
	engine  *intel.Engine
	path    string
	text    string
	saved   string
	version int64

	langName string
	lang     *intel.Language

	flags       *fold.Flags
	onHighlight func(highlight.Result)
	session     *highlight.Session

	openedAt   time.Time
	modifiedAt time.Time
	closed     bool
}

// New creates a document for text. The language is resolved from path
// unless WithLanguage is given; an empty path resolves to plain text.
func New(engine *intel.Engine, path, text string, opts ...Option) *Document {
	now := time.Now()
	d := &Document{
		id:         uuid.New(),
		engine:     engine,
		path:       path,
		text:       text,
		saved:      text,
		version:    1,
		openedAt:   now,
		modifiedAt: now,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.flags == nil {
		d.flags = fold.NewFlags()
	}
	d.lang = d.resolve()
	if d.onHighlight != nil {
		d.session = engine.NewSession(d.lang.ID, d.onHighlight)
		d.session.Update(text)
	}
	return d
}

// Open reads path and creates a document for its contents.
func Open(engine *intel.Engine, path string, opts ...Option) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open document: %w", err)
	}
	return New(engine, path, string(data), opts...), nil
}

func (d *Document) resolve() *intel.Language {
	if d.langName != "" {
		return d.engine.Language(d.langName)
	}
	return d.engine.ResolveFilename(d.path)
}

// ID returns the document's unique identifier.
func (d *Document) ID() uuid.UUID {
	return d.id
}

// Path returns the file path, which may be empty.
func (d *Document) Path() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.path
}

// Text returns the current text.
func (d *Document) Text() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.text
}

// Version is incremented on each change.
func (d *Document) Version() int64 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.version
}

// Language returns the resolved language.
func (d *Document) Language() *intel.Language {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.lang
}

// LineCount returns the number of lines in the text.
func (d *Document) LineCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return strings.Count(d.text, "\n") + 1
}

// IsDirty reports whether the text differs from the last saved text.
func (d *Document) IsDirty() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.text != d.saved
}

// IsClosed reports whether Close has been called.
func (d *Document) IsClosed() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.closed
}

// ModifiedAt returns when the text last changed.
func (d *Document) ModifiedAt() time.Time {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.modifiedAt
}

// SetText replaces the text and returns the new version.
func (d *Document) SetText(text string) (int64, error) {
	d.feedMu.Lock()
	defer d.feedMu.Unlock()
	return d.setText(text)
}

// setText stores text and feeds the session. The caller holds feedMu.
func (d *Document) setText(text string) (int64, error) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return 0, ErrClosed
	}
	d.text = text
	d.version++
	d.modifiedAt = time.Now()
	v, s := d.version, d.session
	d.mu.Unlock()

	if s != nil {
		s.Update(text)
	}
	return v, nil
}

// ApplyEdit replaces the runes in [start, end) with newText.
func (d *Document) ApplyEdit(start, end int, newText string) (int64, error) {
	d.feedMu.Lock()
	defer d.feedMu.Unlock()

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return 0, ErrClosed
	}
	runes := []rune(d.text)
	if start < 0 || end < start || end > len(runes) {
		d.mu.Unlock()
		return 0, fmt.Errorf("%w: [%d, %d) of %d", ErrInvalidEditRange, start, end, len(runes))
	}
	d.text = string(runes[:start]) + newText + string(runes[end:])
	d.version++
	d.modifiedAt = time.Now()
	v, text, s := d.version, d.text, d.session
	d.mu.Unlock()

	if s != nil {
		s.Update(text)
	}
	return v, nil
}

// SetLanguage switches the language by ID, alias or extension. A running
// highlight session is restarted for the new language.
func (d *Document) SetLanguage(name string) *intel.Language {
	d.feedMu.Lock()
	defer d.feedMu.Unlock()

	d.mu.Lock()
	d.langName = name
	d.lang = d.resolve()
	lang, text := d.lang, d.text
	old := d.session
	if old != nil && !d.closed {
		d.session = d.engine.NewSession(lang.ID, d.onHighlight)
	}
	s := d.session
	d.mu.Unlock()

	if old != nil && s != old {
		old.Close()
		s.Update(text)
	}
	return lang
}

// Folds detects the foldable regions of the current text with their fold
// flags applied.
func (d *Document) Folds() []fold.Region {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.flags.Apply(d.engine.DetectFolds(d.text, d.lang.ID))
}

// ToggleFold flips the fold flag for k and returns the new state.
func (d *Document) ToggleFold(k fold.Key) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.flags.Toggle(k)
}

// SetFolded sets the fold flag for k.
func (d *Document) SetFolded(k fold.Key, folded bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.flags.Set(k, folded)
}

// IsFolded reports whether k is folded.
func (d *Document) IsFolded(k fold.Key) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.flags.IsFolded(k)
}

// ToggleFoldAt toggles the innermost region containing line. It returns
// false when no region contains the line.
func (d *Document) ToggleFoldAt(line int) (fold.Region, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	var best fold.Region
	found := false
	for _, r := range d.engine.DetectFolds(d.text, d.lang.ID) {
		if !r.Contains(line) {
			continue
		}
		if !found || r.Lines() <= best.Lines() {
			best, found = r, true
		}
	}
	if !found {
		return fold.Region{}, false
	}
	best.Folded = d.flags.Toggle(best.Key())
	return best, true
}

// HiddenLines returns the lines collapsed by folded regions.
func (d *Document) HiddenLines() []int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	regions := d.flags.Apply(d.engine.DetectFolds(d.text, d.lang.ID))
	return fold.HiddenLines(regions, strings.Count(d.text, "\n")+1)
}

// PruneFolds drops fold flags that no longer name a detected region and
// returns how many were removed.
func (d *Document) PruneFolds() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.flags.Prune(d.engine.DetectFolds(d.text, d.lang.ID))
}

// FoldState returns the fold flags for persistence.
func (d *Document) FoldState() map[string]bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.flags.Map()
}

// MatchBracket matches the bracket around the cursor.
func (d *Document) MatchBracket(cursor int) (intel.BracketMatch, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return bracket.Nearest(d.text, cursor)
}

// NewlineIndent returns the indentation for the line containing offset.
func (d *Document) NewlineIndent(offset int) string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.engine.NewlineIndent(d.text, offset, d.lang.ID)
}

// Reindent re-indents the whole text. It reports whether the text changed.
func (d *Document) Reindent() (bool, error) {
	return d.rewrite(func(text, id string) string {
		return d.engine.Reindent(text, id)
	})
}

// ReindentLines re-indents the 1-based inclusive line range. It reports
// whether the text changed.
func (d *Document) ReindentLines(startLine, endLine int) (bool, error) {
	return d.rewrite(func(text, id string) string {
		return d.engine.ReindentRange(text, startLine, endLine, id)
	})
}

// rewrite replaces the text with fn's result. feedMu is held from the read
// to the write so no edit lands in between.
func (d *Document) rewrite(fn func(text, langID string) string) (bool, error) {
	d.feedMu.Lock()
	defer d.feedMu.Unlock()

	d.mu.RLock()
	text, id, closed := d.text, d.lang.ID, d.closed
	d.mu.RUnlock()
	if closed {
		return false, ErrClosed
	}

	out := fn(text, id)
	if out == text {
		return false, nil
	}
	if _, err := d.setText(out); err != nil {
		return false, err
	}
	return true, nil
}

// Highlight colors the current text synchronously.
func (d *Document) Highlight() []highlight.Span {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.engine.Highlight(d.text, d.lang.ID)
}

// FlushHighlight delivers a pending debounced highlight immediately.
func (d *Document) FlushHighlight() {
	d.mu.RLock()
	s := d.session
	d.mu.RUnlock()
	if s != nil {
		s.Flush()
	}
}

// Save writes the text to the document's path.
func (d *Document) Save() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return ErrClosed
	}
	if d.path == "" {
		return ErrNoPath
	}
	if err := os.WriteFile(d.path, []byte(d.text), 0o644); err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	d.saved = d.text
	return nil
}

// Close stops the highlight session. Later changes return ErrClosed.
func (d *Document) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	s := d.session
	d.session = nil
	d.mu.Unlock()

	if s != nil {
		s.Close()
	}
}
