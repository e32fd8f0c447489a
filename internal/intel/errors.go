package intel

import "errors"

var (
	// ErrLanguageDir indicates a configured language directory could not be
	// loaded.
	ErrLanguageDir = errors.New("language directory")

	// ErrTheme indicates the configured theme could not be loaded.
	ErrTheme = errors.New("theme")
)
