package document

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/codeintel/internal/intel"
	"github.com/dshills/codeintel/internal/intel/fold"
	"github.com/dshills/codeintel/internal/intel/highlight"
	"github.com/dshills/codeintel/internal/intel/language"
	"github.com/dshills/codeintel/internal/log"
)

const swiftSource = "class A {\n    func f() {\n        x()\n    }\n}"

func newEngine(t *testing.T, opts ...intel.Option) *intel.Engine {
	t.Helper()
	e := intel.New(append([]intel.Option{intel.WithLogger(log.Nop())}, opts...)...)
	t.Cleanup(e.Close)
	return e
}

func TestNew(t *testing.T) {
	doc := New(newEngine(t), "/src/view.swift", swiftSource)
	defer doc.Close()

	if doc.ID() == uuid.Nil {
		t.Error("ID should be set")
	}
	if doc.Path() != "/src/view.swift" {
		t.Errorf("Path = %q, want %q", doc.Path(), "/src/view.swift")
	}
	if doc.Version() != 1 {
		t.Errorf("Version = %d, want 1", doc.Version())
	}
	if doc.Language().ID != "swift" {
		t.Errorf("Language = %q, want swift", doc.Language().ID)
	}
	if doc.LineCount() != 5 {
		t.Errorf("LineCount = %d, want 5", doc.LineCount())
	}
	if doc.IsDirty() {
		t.Error("new document should not be dirty")
	}
}

func TestNew_LanguageOption(t *testing.T) {
	e := newEngine(t)

	if id := New(e, "", "x").Language().ID; id != "plain" {
		t.Errorf("empty path Language = %q, want plain", id)
	}
	if id := New(e, "notes.txt", "x", WithLanguage("py")).Language().ID; id != "python" {
		t.Errorf("WithLanguage Language = %q, want python", id)
	}
}

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main.go")
	if err := os.WriteFile(path, []byte("package main\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	doc, err := Open(newEngine(t), path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer doc.Close()

	if doc.Text() != "package main\n" {
		t.Errorf("Text = %q", doc.Text())
	}
	if doc.Language().ID != "go" {
		t.Errorf("Language = %q, want go", doc.Language().ID)
	}

	if _, err := Open(newEngine(t), filepath.Join(t.TempDir(), "missing.go")); err == nil {
		t.Error("Open of a missing file should fail")
	}
}

func TestDocument_SetText(t *testing.T) {
	doc := New(newEngine(t), "a.swift", "let x = 1")

	v, err := doc.SetText("let y = 2")
	if err != nil {
		t.Fatalf("SetText: %v", err)
	}
	if v != 2 || doc.Version() != 2 {
		t.Errorf("Version = %d, want 2", v)
	}
	if !doc.IsDirty() {
		t.Error("document should be dirty after SetText")
	}

	doc.Close()
	if _, err := doc.SetText("z"); !errors.Is(err, ErrClosed) {
		t.Errorf("SetText after Close error = %v, want ErrClosed", err)
	}
}

func TestDocument_ApplyEdit(t *testing.T) {
	doc := New(newEngine(t), "a.swift", "héllo world")
	defer doc.Close()

	if _, err := doc.ApplyEdit(6, 11, "there"); err != nil {
		t.Fatalf("ApplyEdit: %v", err)
	}
	if doc.Text() != "héllo there" {
		t.Errorf("Text = %q, want %q", doc.Text(), "héllo there")
	}

	tests := []struct {
		name       string
		start, end int
	}{
		{"negative start", -1, 2},
		{"end before start", 3, 2},
		{"past end", 0, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := doc.ApplyEdit(tt.start, tt.end, "x")
			if !errors.Is(err, ErrInvalidEditRange) {
				t.Errorf("error = %v, want ErrInvalidEditRange", err)
			}
		})
	}
}

func TestDocument_FoldsAndToggle(t *testing.T) {
	doc := New(newEngine(t), "a.swift", swiftSource)
	defer doc.Close()

	regions := doc.Folds()
	if len(regions) != 2 {
		t.Fatalf("len(Folds) = %d, want 2", len(regions))
	}
	fn := regions[1].Key()
	if fn != (fold.Key{StartLine: 2, Kind: language.KindFunction}) {
		t.Fatalf("inner key = %v", fn)
	}

	if !doc.ToggleFold(fn) {
		t.Error("ToggleFold should fold")
	}
	if !doc.IsFolded(fn) {
		t.Error("IsFolded should be true after toggle")
	}

	// Re-detection after an edit below the region keeps the flag.
	if _, err := doc.SetText(swiftSource + "\n// trailing"); err != nil {
		t.Fatal(err)
	}
	regions = doc.Folds()
	if !regions[1].Folded {
		t.Error("flag should survive re-detection")
	}
	if regions[0].Folded {
		t.Error("outer region should not be folded")
	}

	hidden := doc.HiddenLines()
	if len(hidden) != 2 || hidden[0] != 3 || hidden[1] != 4 {
		t.Errorf("HiddenLines = %v, want [3 4]", hidden)
	}
}

func TestDocument_ToggleFoldAt(t *testing.T) {
	doc := New(newEngine(t), "a.swift", swiftSource)
	defer doc.Close()

	r, ok := doc.ToggleFoldAt(3)
	if !ok {
		t.Fatal("ToggleFoldAt(3) found no region")
	}
	if r.StartLine != 2 || !r.Folded {
		t.Errorf("ToggleFoldAt(3) = %+v, want folded region at line 2", r)
	}

	r, ok = doc.ToggleFoldAt(5)
	if !ok || r.StartLine != 1 {
		t.Errorf("ToggleFoldAt(5) = %+v, %v", r, ok)
	}

	if _, ok := New(newEngine(t), "a.swift", "let x = 1").ToggleFoldAt(1); ok {
		t.Error("ToggleFoldAt on unfoldable text should report false")
	}
}

func TestDocument_FoldStatePersistence(t *testing.T) {
	e := newEngine(t)
	doc := New(e, "a.swift", swiftSource)
	doc.SetFolded(fold.Key{StartLine: 1, Kind: language.KindClass}, true)
	doc.SetFolded(fold.Key{StartLine: 40, Kind: language.KindLoop}, true)

	state := doc.FoldState()
	doc.Close()

	restored := New(e, "a.swift", swiftSource, WithFoldState(state))
	defer restored.Close()

	if !restored.Folds()[0].Folded {
		t.Error("restored class region should be folded")
	}
	if n := restored.PruneFolds(); n != 1 {
		t.Errorf("PruneFolds = %d, want 1", n)
	}
	if len(restored.FoldState()) != 1 {
		t.Errorf("FoldState = %v", restored.FoldState())
	}
}

func TestDocument_MatchBracketAndIndent(t *testing.T) {
	doc := New(newEngine(t), "a.swift", "func f() {\n}")
	defer doc.Close()

	m, ok := doc.MatchBracket(10)
	if !ok || m.Open != 9 || m.Close != 11 {
		t.Errorf("MatchBracket(10) = %+v, %v", m, ok)
	}

	if got := doc.NewlineIndent(11); got != "" {
		t.Errorf("NewlineIndent on closer = %q, want empty", got)
	}
}

func TestDocument_Reindent(t *testing.T) {
	doc := New(newEngine(t), "a.swift", "func f() {\nx()\n}")
	defer doc.Close()

	changed, err := doc.Reindent()
	if err != nil {
		t.Fatal(err)
	}
	if !changed {
		t.Error("Reindent should change the text")
	}
	if doc.Text() != "func f() {\n    x()\n}" {
		t.Errorf("Text = %q", doc.Text())
	}

	changed, err = doc.Reindent()
	if err != nil || changed {
		t.Errorf("second Reindent = %v, %v; want no change", changed, err)
	}

	changed, err = doc.ReindentLines(2, 2)
	if err != nil || changed {
		t.Errorf("ReindentLines = %v, %v; want no change", changed, err)
	}
}

func TestDocument_ReindentKeepsConcurrentEdits(t *testing.T) {
	doc := New(newEngine(t), "a.swift", "func f() {\n}")
	defer doc.Close()

	const edits = 200
	header := len([]rune("func f() {\n"))
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < edits; i++ {
			if _, err := doc.ApplyEdit(header, header, "y()\n"); err != nil {
				t.Errorf("ApplyEdit: %v", err)
				return
			}
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < edits; i++ {
			if _, err := doc.Reindent(); err != nil {
				t.Errorf("Reindent: %v", err)
				return
			}
		}
	}()
	wg.Wait()

	if _, err := doc.Reindent(); err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(doc.Text(), "y()"); got != edits {
		t.Errorf("edits kept = %d, want %d", got, edits)
	}
	want := "func f() {\n" + strings.Repeat("    y()\n", edits) + "}"
	if doc.Text() != want {
		t.Errorf("Text = %q, want every line indented", doc.Text())
	}
}

func TestDocument_Highlight(t *testing.T) {
	doc := New(newEngine(t), "a.swift", "// note")
	defer doc.Close()

	spans := highlight.Flatten(doc.Highlight())
	if len(spans) != 1 || spans[0].Kind != language.TokenComment {
		t.Errorf("Highlight = %+v, want one comment run", spans)
	}
}

func TestDocument_LiveHighlight(t *testing.T) {
	var mu sync.Mutex
	var results []highlight.Result
	record := func(r highlight.Result) {
		mu.Lock()
		results = append(results, r)
		mu.Unlock()
	}
	count := func() int {
		mu.Lock()
		defer mu.Unlock()
		return len(results)
	}

	e := newEngine(t, intel.WithSyncThreshold(100), intel.WithDelay(time.Hour))
	doc := New(e, "a.swift", "let x = 1", WithHighlighter(record))
	defer doc.Close()

	if count() != 1 {
		t.Fatalf("results after New = %d, want 1", count())
	}

	if _, err := doc.SetText(strings.Repeat("x", 200)); err != nil {
		t.Fatal(err)
	}
	if count() != 1 {
		t.Errorf("large text should be debounced, results = %d", count())
	}
	doc.FlushHighlight()
	if count() != 2 {
		t.Errorf("results after flush = %d, want 2", count())
	}

	if l := doc.SetLanguage("py"); l.ID != "python" {
		t.Errorf("SetLanguage = %q, want python", l.ID)
	}
	if count() != 2 {
		t.Errorf("restarted session should debounce, results = %d", count())
	}
	doc.FlushHighlight()
	if count() != 3 {
		t.Errorf("results after second flush = %d, want 3", count())
	}
}

func TestDocument_Save(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.swift")
	doc := New(newEngine(t), path, "let x = 1")
	defer doc.Close()

	if _, err := doc.SetText("let x = 2"); err != nil {
		t.Fatal(err)
	}
	if err := doc.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if doc.IsDirty() {
		t.Error("document should be clean after Save")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "let x = 2" {
		t.Errorf("saved = %q", data)
	}

	if err := New(newEngine(t), "", "x").Save(); !errors.Is(err, ErrNoPath) {
		t.Errorf("Save without path error = %v, want ErrNoPath", err)
	}
}
