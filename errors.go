package harmony

import "errors"

var (
	// ErrMissingToken is returned by Run when no token was configured.
	ErrMissingToken = errors.New("harmony: no token configured")

	// ErrQueueClosed is returned when pushing to a closed event queue.
	ErrQueueClosed = errors.New("harmony: event queue closed")
)
