package ledger

import "errors"

// Failure classes returned by engine operations. Handlers translate them
// into user-facing responses with errors.Is.
var (
	// ErrEmptyInput is returned when submitted text is blank after trimming.
	ErrEmptyInput = errors.New("submitted text is empty")

	// ErrNotFound is returned when an ID or message reference does not
	// resolve to a live record.
	ErrNotFound = errors.New("record not found")

	// ErrForbidden is returned when the caller lacks the capability for
	// the operation.
	ErrForbidden = errors.New("caller is not allowed to do that")

	// ErrInvalidStatus is returned for a status outside the fixed vocabulary.
	ErrInvalidStatus = errors.New("invalid suggestion status")

	// ErrNotConfigured is returned when a required channel role has not
	// been set for the guild.
	ErrNotConfigured = errors.New("channel role not configured for this guild")
)
