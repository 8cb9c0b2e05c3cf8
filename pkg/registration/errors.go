package registration

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("registration: aborted")
	// ErrDeclined is returned when the user does not confirm the summary.
	ErrDeclined = errors.New("registration: not confirmed")
)
