// Package language holds the per-language rule sets used by the code
// intelligence engine.
//
// A Language bundles everything the other engines need to know about one
// language: highlight rules, declaration header rules for folding, the fold
// style, comment and import markers, and indentation rules.
//
// # Registry
//
// Languages are looked up through a Registry by file extension. Lookup is
// total: an unknown extension resolves to the plain language, which has no
// keywords and only generic brace folding.
//
//	reg := language.Default()
//	swift := reg.Resolve(".swift")
//	plain := reg.Resolve("xyz")
//
// # Definitions
//
// Built-in languages and YAML language packs share the Definition type. A
// pattern that does not compile is logged and replaced by one that never
// matches, so a bad rule degrades output instead of failing the language.
//
// # Patterns
//
// Patterns are compiled with regexp2 in multiline mode and report positions
// as rune offsets, matching the offsets used throughout the engine.
package language
