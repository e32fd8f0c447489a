package document

import "errors"

var (
	// ErrInvalidEditRange is returned when ApplyEdit receives invalid offsets.
	ErrInvalidEditRange = errors.New("invalid edit range")

	// ErrClosed is returned by operations on a closed document.
	ErrClosed = errors.New("document closed")

	// ErrNoPath is returned by Save for a document that was never given a
	// path.
	ErrNoPath = errors.New("document has no path")
)
