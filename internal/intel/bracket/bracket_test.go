package bracket

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestMatchAt(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		pos   int
		open  int
		close int
		ok    bool
	}{
		{"simple parens", "(a)", 0, 0, 2, true},
		{"from closer", "(a)", 2, 0, 2, true},
		{"nested outer", "(a(b)c)", 0, 0, 6, true},
		{"nested inner", "(a(b)c)", 2, 2, 4, true},
		{"unmatched opener", "(a(b)c", 0, 0, NoPosition, true},
		{"unmatched closer", "a)b", 1, NoPosition, 1, true},
		{"braces across lines", "func f() {\n  x\n}", 9, 9, 15, true},
		{"angle", "Array<Int>", 5, 5, 9, true},
		{"mixed kinds ignored", "([)]", 0, 0, 2, true},
		{"not a bracket", "abc", 1, 0, 0, false},
		{"negative", "()", -1, 0, 0, false},
		{"past end", "()", 2, 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ok := MatchAt(tt.text, tt.pos)
			require.Equal(t, tt.ok, ok)
			if !ok {
				return
			}
			assert.Equal(t, tt.open, m.Open)
			assert.Equal(t, tt.close, m.Close)
		})
	}
}

func TestMatchAt_Symmetric(t *testing.T) {
	text := `say "hi" and "bye"`

	m, ok := MatchAt(text, 4)
	require.True(t, ok)
	assert.Equal(t, 4, m.Open)
	assert.Equal(t, 7, m.Close)

	m, ok = MatchAt(text, 7)
	require.True(t, ok)
	assert.Equal(t, 4, m.Open)
	assert.Equal(t, 7, m.Close)

	m, ok = MatchAt(text, 13)
	require.True(t, ok)
	assert.Equal(t, 13, m.Open)
	assert.Equal(t, 17, m.Close)

	m, ok = MatchAt("x = 'a", 4)
	require.True(t, ok)
	assert.Equal(t, 4, m.Open)
	assert.Equal(t, NoPosition, m.Close)
	assert.False(t, m.Matched())
}

func TestMatchAt_RuneOffsets(t *testing.T) {
	text := "é(ü)"

	m, ok := MatchAt(text, 1)
	require.True(t, ok)
	assert.Equal(t, 3, m.Close)
	assert.Equal(t, '(', m.OpenChar)
	assert.Equal(t, ')', m.CloseChar)
}

func TestNearest(t *testing.T) {
	text := "f(x)"

	// Cursor after ")" prefers the rune before the cursor.
	m, ok := Nearest(text, 4)
	require.True(t, ok)
	assert.Equal(t, 1, m.Open)
	assert.Equal(t, 3, m.Close)

	// Cursor on "(" with a non-bracket before it.
	m, ok = Nearest(text, 1)
	require.True(t, ok)
	assert.Equal(t, 1, m.Open)

	_, ok = Nearest("abc", 1)
	assert.False(t, ok)

	_, ok = Nearest("", 0)
	assert.False(t, ok)
}

func TestMatch_Contains(t *testing.T) {
	m := Match{Open: 2, Close: 5}
	assert.True(t, m.Contains(2))
	assert.True(t, m.Contains(5))
	assert.False(t, m.Contains(6))
	assert.False(t, Match{Open: 2, Close: NoPosition}.Contains(3))
}

func TestIsBracket(t *testing.T) {
	for _, r := range "()[]{}<>\"'`" {
		assert.True(t, IsBracket(r), string(r))
	}
	assert.False(t, IsBracket('a'))
}

// balanced generates strings of nested, matched non-symmetric brackets with
// filler text between them.
func balanced(t *rapid.T, depth int) string {
	if depth == 0 {
		return rapid.StringMatching(`[a-z ]{0,3}`).Draw(t, "leaf")
	}
	n := rapid.IntRange(0, 3).Draw(t, "n")
	out := rapid.StringMatching(`[a-z ]{0,2}`).Draw(t, "pre")
	for i := 0; i < n; i++ {
		p := rapid.SampledFrom(Pairs[:4]).Draw(t, "pair")
		out += string(p.Open) + balanced(t, depth-1) + string(p.Close)
	}
	return out
}

func TestMatchAt_Symmetry(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		text := []rune(balanced(t, 3))
		for i, r := range text {
			p, opening, ok := lookup(r)
			if !ok || p.Symmetric() {
				continue
			}
			m, ok := MatchAtRunes(text, i)
			if !ok || !m.Matched() {
				t.Fatalf("bracket at %d in %q did not match", i, string(text))
			}
			var back Match
			if opening {
				back, _ = MatchAtRunes(text, m.Close)
			} else {
				back, _ = MatchAtRunes(text, m.Open)
			}
			if back.Open != m.Open || back.Close != m.Close {
				t.Fatalf("asymmetric match in %q: %+v vs %+v", string(text), m, back)
			}
		}
	})
}
