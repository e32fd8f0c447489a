// Package intel is the code intelligence engine: a facade over language
// resolution, fold detection, bracket matching, indentation and syntax
// highlighting.
//
// # Architecture
//
// The engine is built on several sub-packages:
//
//   - language: immutable registry of per-language rule records
//   - fold: fold region detection and per-document fold flags
//   - bracket: bracket and quote matching
//   - indent: newline indentation and block re-indentation
//   - highlight: rule-based highlighting, themes and live sessions
//
// Every analysis is a pure function of a text snapshot and a language. The
// engine holds only immutable configuration, so all methods are safe for
// concurrent use. Fold flags belong to the caller (see document.Document).
//
// # Basic Usage
//
//	e := intel.New()
//	regions := e.DetectFolds(text, "swift")
//	m, ok := e.MatchBracket(text, cursor)
//	ws := e.NewlineIndent(text, offset, "swift")
//	spans := e.Highlight(text, "swift")
//
// Languages are named by ID, alias or file extension; unknown names resolve
// to the plain language.
//
// # Configuration
//
// NewFromConfig builds an engine from config.Config, loading extra language
// definitions, per-language overrides and the configured theme:
//
//	cfg, err := config.Load(config.DefaultPath())
//	e, err := intel.NewFromConfig(cfg)
//
// # Live Highlighting
//
// NewSession returns a highlight.Session bound to the engine's theme, cache
// and scheduler. Large documents are highlighted after a debounce delay and
// results for superseded snapshots are dropped.
package intel
