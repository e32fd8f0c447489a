// Package indent computes indentation for new lines and re-indents blocks
// of text from a language's increase and decrease rules.
//
// Existing indentation is measured in columns with a tab counting as the
// language's tab width. New indentation is written according to the
// language's tab policy and indent size; measuring never decides how
// whitespace is written.
package indent
