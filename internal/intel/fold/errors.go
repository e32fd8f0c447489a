package fold

import "errors"

// ErrInvalidKey indicates a persisted fold key could not be parsed.
var ErrInvalidKey = errors.New("invalid fold key")
