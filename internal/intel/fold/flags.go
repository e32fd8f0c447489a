package fold

import "sort"

// Flags records which regions are folded, keyed by Key.String().
//
// Flags belongs to the document that displays the regions. It is not safe
// for concurrent use; the owner serializes access. The zero value is ready
// to use.
type Flags struct {
	m map[string]bool
}

// NewFlags creates an empty flag set.
func NewFlags() *Flags {
	return &Flags{m: make(map[string]bool)}
}

// NewFlagsFrom creates a flag set from a persisted map. Entries set to false
// are dropped.
func NewFlagsFrom(m map[string]bool) *Flags {
	f := NewFlags()
	for k, v := range m {
		if v {
			f.m[k] = true
		}
	}
	return f
}

// Toggle flips the flag for k and returns the new state.
func (f *Flags) Toggle(k Key) bool {
	folded := !f.IsFolded(k)
	f.Set(k, folded)
	return folded
}

// Set sets the flag for k.
func (f *Flags) Set(k Key, folded bool) {
	if !folded {
		delete(f.m, k.String())
		return
	}
	if f.m == nil {
		f.m = make(map[string]bool)
	}
	f.m[k.String()] = true
}

// IsFolded reports whether k is folded.
func (f *Flags) IsFolded(k Key) bool {
	if f == nil {
		return false
	}
	return f.m[k.String()]
}

// Apply returns a copy of regions with Folded set from the flags, so a flag
// toggled on an earlier detection carries over to the region detected now
// with the same key.
func (f *Flags) Apply(regions []Region) []Region {
	out := make([]Region, len(regions))
	for i, r := range regions {
		r.Folded = f.IsFolded(r.Key())
		out[i] = r
	}
	return out
}

// Prune drops flags whose key matches none of regions and returns how many
// were removed.
func (f *Flags) Prune(regions []Region) int {
	if f == nil || len(f.m) == 0 {
		return 0
	}
	live := make(map[string]bool, len(regions))
	for _, r := range regions {
		live[r.Key().String()] = true
	}
	removed := 0
	for k := range f.m {
		if !live[k] {
			delete(f.m, k)
			removed++
		}
	}
	return removed
}

// Len returns the number of folded keys.
func (f *Flags) Len() int {
	if f == nil {
		return 0
	}
	return len(f.m)
}

// Keys returns the folded keys in string form, sorted.
func (f *Flags) Keys() []string {
	if f == nil {
		return nil
	}
	keys := make([]string, 0, len(f.m))
	for k := range f.m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Map returns a copy of the flags for persistence.
func (f *Flags) Map() map[string]bool {
	out := make(map[string]bool, f.Len())
	if f == nil {
		return out
	}
	for k, v := range f.m {
		out[k] = v
	}
	return out
}

// IsHidden reports whether line is collapsed by a folded region. The start
// line of a folded region stays visible.
func IsHidden(regions []Region, line int) bool {
	for _, r := range regions {
		if r.Folded && line > r.StartLine && line <= r.EndLine {
			return true
		}
	}
	return false
}

// HiddenLines returns the sorted line numbers, up to totalLines, collapsed
// by folded regions.
func HiddenLines(regions []Region, totalLines int) []int {
	hidden := make([]bool, totalLines+1)
	for _, r := range regions {
		if !r.Folded {
			continue
		}
		for l := r.StartLine + 1; l <= r.EndLine && l <= totalLines; l++ {
			hidden[l] = true
		}
	}
	var out []int
	for l, h := range hidden {
		if h {
			out = append(out, l)
		}
	}
	return out
}
