// Package fold detects foldable regions in source text and tracks which of
// them the user has collapsed.
//
// # Detection
//
// Detect runs four line-based passes over a text snapshot:
//
//   - import groups: runs of two or more consecutive import lines
//   - declaration headers: a header rule opens a region that is closed by the
//     language's fold style (brace depth, indentation, or a terminator
//     keyword such as "end" or "fi")
//   - block comments and docstrings spanning more than one line
//   - generic brace blocks: any other line ending in "{"
//
// Detection is heuristic and total. Unterminated blocks produce no region.
//
// # Fold flags
//
// Regions are recomputed wholesale after every edit, so the folded state is
// kept outside them in Flags, keyed by (start line, kind). Flags.Apply copies
// the stored state onto freshly detected regions:
//
//	flags := fold.NewFlags()
//	regions := fold.Detect(text, lang)
//	flags.Toggle(regions[0].Key())
//	regions = flags.Apply(fold.Detect(text, lang))
//
// Keys shift when lines are inserted above a region; see Flags.Prune for
// dropping keys that no longer match anything.
package fold
