package notify

import "errors"

var (
	// ErrUnknownTemplate is returned when a message references a template
	// that has no embedded body.
	ErrUnknownTemplate = errors.New("unknown notification template")

	// ErrEmptyRecipient is returned when a message has no destination
	// address.
	ErrEmptyRecipient = errors.New("notification recipient is empty")
)
