package highlight

import "errors"

// Theme errors.
var (
	// ErrThemeNotFound indicates no built-in theme has the requested name.
	ErrThemeNotFound = errors.New("theme not found")

	// ErrInvalidTheme indicates a theme file could not be decoded.
	ErrInvalidTheme = errors.New("invalid theme")
)
