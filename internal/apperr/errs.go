// Package apperr collects the fatal-error taxonomy the engine can raise.
// Library code never calls os.Exit or log.Fatal itself; it returns one of
// these sentinels (wrapped with context via fmt.Errorf's %w) and leaves the
// decision to terminate to cmd/diac.
package apperr

import "errors"

var (
	// ErrDictionaryUnreadable is returned when the word dictionary file
	// cannot be opened or parsed.
	ErrDictionaryUnreadable = errors.New("dictionary file is unreadable")

	// ErrOffsetIndexUnreadable is returned when the offset index file
	// cannot be opened or parsed.
	ErrOffsetIndexUnreadable = errors.New("offset index file is unreadable")

	// ErrModelUnreadable is returned when the trigram model file cannot be
	// opened for reading.
	ErrModelUnreadable = errors.New("model file is unreadable")

	// ErrCorruptRecord is returned when a trigram record read from the
	// model does not align to the fixed 16-byte record size.
	ErrCorruptRecord = errors.New("trigram record is truncated or misaligned")

	// ErrInvalidPageSize is returned when a page cache is constructed with
	// a page size that is not a positive power of two.
	ErrInvalidPageSize = errors.New("page size must be a positive power of two")

	// ErrNoCandidates is returned when accent-variant expansion and model
	// lookup both fail to produce any candidate for a token.
	ErrNoCandidates = errors.New("no restoration candidate found")

	// ErrInvalidChoice is returned when an interactive conflict prompt
	// receives a selection outside the displayed range.
	ErrInvalidChoice = errors.New("selection is out of range")
)
