package workflow

import "errors"

// Failure taxonomy for workflow operations. Handlers map these to HTTP
// statuses with errors.Is; anything unmatched is an internal error.
var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrConflict          = errors.New("conflict")
	ErrForbidden         = errors.New("forbidden")
	ErrNotFound          = errors.New("not found")
	ErrInvalidState      = errors.New("invalid state")
	ErrPaymentIncomplete = errors.New("payment not completed")
)
