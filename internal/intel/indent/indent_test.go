package indent

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/dshills/codeintel/internal/intel/language"
)

var registry = language.Default()

// newlineAt returns text with a newline inserted after before, and the rune
// offset of the position just after that newline.
func newlineAt(before, after string) (string, int) {
	return before + "\n" + after, utf8.RuneCountInString(before) + 1
}

func TestNewlineIndent(t *testing.T) {
	swift := registry.Resolve("swift")
	python := registry.Resolve("py")
	golang := registry.Resolve("go")
	plain := registry.Resolve("txt")

	tests := []struct {
		name   string
		before string
		after  string
		lang   *language.Language
		want   string
	}{
		{"increase after brace", "func foo() {", "", swift, "    "},
		{"decrease on closer", "    return 1", "}", swift, ""},
		{"decrease clamps at zero", "x", "}", swift, ""},
		{"copy predecessor", "    let x = 1", "", swift, "    "},
		{"copy keeps tabs verbatim", "\t\tx := 1", "", plain, "\t\t"},
		{"python colon", "def f(x):", "", python, "    "},
		{"python else dedents", "        y = 1", "else:", python, "    "},
		{"python aligns with paren", "result = compute(a,", "", python, strings.Repeat(" ", 17)},
		{"python opener at line end", "x = call(", "", python, strings.Repeat(" ", 9)},
		{"python aligns past argument line", "x = call(\n    a,", "", python, strings.Repeat(" ", 9)},
		{"python net zero line copies", "x = a) + foo(b,", "", python, ""},
		{"python nested opener", "  f(a, g(b,", "", python, strings.Repeat(" ", 9)},
		{"go tabs", "\tif x {", "", golang, "\t\t"},
		{"first line", "", "", swift, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, off := newlineAt(tt.before, tt.after)
			assert.Equal(t, tt.want, NewlineIndent(text, off, tt.lang))
		})
	}
}

func TestNewlineIndent_FirstLine(t *testing.T) {
	assert.Equal(t, "", NewlineIndent("    x", 2, registry.Resolve("swift")))
	assert.Equal(t, "", NewlineIndent("", 0, nil))
}

func TestNewlineIndent_AlignWindowBounded(t *testing.T) {
	python := registry.Resolve("py")
	lines := []string{"f(a,"}
	for i := 0; i < AlignWindow; i++ {
		lines = append(lines, "  b")
	}
	text := strings.Join(lines, "\n") + "\n"

	got := NewlineIndent(text, utf8.RuneCountInString(text), python)

	// The opener is outside the window, so the predecessor is copied.
	assert.Equal(t, "  ", got)
}

func TestColumns(t *testing.T) {
	assert.Equal(t, 0, Columns("", 4))
	assert.Equal(t, 4, Columns("    ", 4))
	assert.Equal(t, 8, Columns("\t\t", 4))
	assert.Equal(t, 6, Columns("\t  ", 4))
	assert.Equal(t, 4, Columns("\t", 0))
}

func TestMaterialize(t *testing.T) {
	spaces := language.IndentRules{Size: 4}
	tabs := language.IndentRules{Size: 4, UseTabs: true, TabWidth: 4}

	assert.Equal(t, "", Materialize(-3, spaces))
	assert.Equal(t, "      ", Materialize(6, spaces))
	assert.Equal(t, "\t\t", Materialize(8, tabs))
	assert.Equal(t, "\t  ", Materialize(6, tabs))
}

func TestLeading(t *testing.T) {
	assert.Equal(t, " \t ", Leading(" \t x "))
	assert.Equal(t, "", Leading("x"))
	assert.Equal(t, "  ", Leading("  "))
}

func TestReindent(t *testing.T) {
	swift := registry.Resolve("swift")
	in := "func f() {\nif x {\n  y()\n        }\n\n   }\n"
	want := "func f() {\n    if x {\n        y()\n    }\n\n}\n"

	assert.Equal(t, want, Reindent(in, swift))
}

func TestReindent_BlankLinesUnchanged(t *testing.T) {
	swift := registry.Resolve("swift")
	in := "struct S {\n   \n  var a: Int\n}"

	got := Reindent(in, swift)

	assert.Equal(t, "struct S {\n   \n    var a: Int\n}", got)
}

func TestReindent_Tabs(t *testing.T) {
	golang := registry.Resolve("go")

	got := Reindent("func main() {\n    fmt.Println()\n}", golang)

	assert.Equal(t, "func main() {\n\tfmt.Println()\n}", got)
}

func TestReindent_BrokenPatternNeverMatches(t *testing.T) {
	l, err := language.Build(language.Definition{
		ID:     "broken",
		Indent: language.IndentDef{Increase: []string{`(`}, Decrease: []string{`^\}`}},
	}, nil)
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, "a (\nb\n}", Reindent("a (\n  b\n}", l))
}

func TestReindentRange(t *testing.T) {
	swift := registry.Resolve("swift")
	in := "class A {\n    func f() {\n  x()\n      }\n}"

	got := ReindentRange(in, 2, 4, swift)

	assert.Equal(t, "class A {\n    func f() {\n        x()\n    }\n}", got)
	assert.Equal(t, in, ReindentRange(in, 5, 2, swift))
}

func TestReindent_Idempotent(t *testing.T) {
	langs := []*language.Language{
		registry.Resolve("swift"),
		registry.Resolve("py"),
		registry.Resolve("rb"),
		registry.Resolve("go"),
	}
	fragments := []string{
		"", "  ", "\t", "{", "}", "x = 1", "if y:", "else:", "end", "def f",
		"func f() {", "  }  ", "(", ")", "case 1:", "\tfoo(", "]", "  // c",
	}

	rapid.Check(t, func(t *rapid.T) {
		l := rapid.SampledFrom(langs).Draw(t, "lang")
		n := rapid.IntRange(0, 20).Draw(t, "lines")
		lines := make([]string, n)
		for i := range lines {
			lead := rapid.SampledFrom([]string{"", " ", "    ", "\t"}).Draw(t, "lead")
			lines[i] = lead + rapid.SampledFrom(fragments).Draw(t, "frag")
		}
		text := strings.Join(lines, "\n")

		once := Reindent(text, l)
		twice := Reindent(once, l)
		if once != twice {
			t.Fatalf("not idempotent for %s:\n%q\n%q", l.ID, once, twice)
		}
	})
}
