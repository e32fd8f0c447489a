package language

import "errors"

var (
	// ErrInvalidDefinition indicates a language definition is malformed.
	ErrInvalidDefinition = errors.New("invalid language definition")

	// ErrDuplicateLanguage indicates two definitions share an ID.
	ErrDuplicateLanguage = errors.New("duplicate language")
)
