// Package bracket finds the partner of a delimiter in a text buffer.
//
// Matching is purely lexical: brackets inside strings or comments are not
// skipped, and identical-character pairs (quotes and backticks) are resolved
// by parity, without escape handling.
package bracket

// NoPosition marks a side of a match that could not be found.
const NoPosition = -1

// Pair is an opening/closing delimiter pair.
type Pair struct {
	Open  rune
	Close rune
}

// Symmetric reports whether the pair uses the same rune on both sides.
func (p Pair) Symmetric() bool {
	return p.Open == p.Close
}

// Pairs is the fixed delimiter table.
var Pairs = []Pair{
	{'(', ')'},
	{'[', ']'},
	{'{', '}'},
	{'<', '>'},
	{'"', '"'},
	{'\'', '\''},
	{'`', '`'},
}

// Match is the result of a bracket lookup. Open and Close are rune offsets;
// the side that was not found holds NoPosition.
type Match struct {
	Open      int
	Close     int
	OpenChar  rune
	CloseChar rune
}

// Matched reports whether both sides were found.
func (m Match) Matched() bool {
	return m.Open != NoPosition && m.Close != NoPosition
}

// Contains reports whether offset lies within the matched span, inclusive.
func (m Match) Contains(offset int) bool {
	return m.Matched() && offset >= m.Open && offset <= m.Close
}

// lookup returns the pair r belongs to and whether r is its opening rune.
// Symmetric runes report opening true.
func lookup(r rune) (Pair, bool, bool) {
	for _, p := range Pairs {
		if r == p.Open {
			return p, true, true
		}
		if r == p.Close {
			return p, false, true
		}
	}
	return Pair{}, false, false
}

// IsBracket reports whether r is any delimiter in the table.
func IsBracket(r rune) bool {
	_, _, ok := lookup(r)
	return ok
}

// MatchAt finds the partner of the delimiter at rune offset pos in text. It
// returns false when pos is out of range or the rune there is not a
// delimiter. An unmatched delimiter returns true with the missing side set
// to NoPosition.
func MatchAt(text string, pos int) (Match, bool) {
	return MatchAtRunes([]rune(text), pos)
}

// MatchAtRunes is MatchAt for callers that already hold the text as runes.
func MatchAtRunes(text []rune, pos int) (Match, bool) {
	if pos < 0 || pos >= len(text) {
		return Match{}, false
	}
	p, opening, ok := lookup(text[pos])
	if !ok {
		return Match{}, false
	}

	m := Match{Open: NoPosition, Close: NoPosition, OpenChar: p.Open, CloseChar: p.Close}

	if p.Symmetric() {
		// An even number of the same rune before pos means pos opens a pair.
		count := 0
		for _, r := range text[:pos] {
			if r == p.Open {
				count++
			}
		}
		opening = count%2 == 0
		if opening {
			m.Open = pos
			for i := pos + 1; i < len(text); i++ {
				if text[i] == p.Close {
					m.Close = i
					break
				}
			}
		} else {
			m.Close = pos
			for i := pos - 1; i >= 0; i-- {
				if text[i] == p.Open {
					m.Open = i
					break
				}
			}
		}
		return m, true
	}

	if opening {
		m.Open = pos
		m.Close = scanForward(text, pos, p)
	} else {
		m.Close = pos
		m.Open = scanBackward(text, pos, p)
	}
	return m, true
}

func scanForward(text []rune, pos int, p Pair) int {
	depth := 0
	for i := pos; i < len(text); i++ {
		switch text[i] {
		case p.Open:
			depth++
		case p.Close:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return NoPosition
}

func scanBackward(text []rune, pos int, p Pair) int {
	depth := 0
	for i := pos; i >= 0; i-- {
		switch text[i] {
		case p.Close:
			depth++
		case p.Open:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return NoPosition
}

// Nearest looks for a delimiter adjacent to a cursor, checking the rune
// before the cursor first and then the rune at the cursor.
func Nearest(text string, cursor int) (Match, bool) {
	return NearestRunes([]rune(text), cursor)
}

// NearestRunes is Nearest for rune slices.
func NearestRunes(text []rune, cursor int) (Match, bool) {
	if m, ok := MatchAtRunes(text, cursor-1); ok {
		return m, true
	}
	return MatchAtRunes(text, cursor)
}
