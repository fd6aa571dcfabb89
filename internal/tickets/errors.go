package tickets

import "errors"

var (
	// ErrNotFound means no ticket exists with the given id.
	ErrNotFound = errors.New("ticket not found")
	// ErrValidation means the input was malformed or missing required fields.
	ErrValidation = errors.New("validation failed")
	// ErrAuthorization means an actor failed a transition guard.
	ErrAuthorization = errors.New("not authorized")
	// ErrInvalidTransition means the action is not permitted from the
	// ticket's current status.
	ErrInvalidTransition = errors.New("invalid transition")
)
