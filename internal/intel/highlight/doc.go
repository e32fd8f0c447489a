// Package highlight colors source text with a language's ordered highlight
// rules.
//
// # Spans
//
// Highlight returns a base span covering the whole text, carrying the theme
// font and text color, followed by one span per rule match. Rules run in the
// language's fixed order (keywords, strings, comments, numbers, annotations,
// types, extras) and later spans win where they overlap earlier ones. A
// capitalized word inside a string literal is therefore recolored by the type
// rule. Flatten resolves the overlaps into an ordered run list for renderers
// that cannot layer spans.
//
// # Themes
//
// A Theme is a font plus eleven named colors. Built-in themes are derived
// from chroma's style registry:
//
//	theme, err := highlight.ThemeFromChroma("dracula")
//
// TextMate .tmTheme files are loaded with LoadTMTheme.
//
// # Sessions
//
// A Session keeps the highlight of one live document current. Small texts are
// highlighted inline on every Update; larger texts are debounced, and a
// result computed for a snapshot that has since been replaced is discarded
// rather than delivered.
package highlight
