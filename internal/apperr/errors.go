package apperr

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrBusy              = errors.New("transition in progress")
	ErrInvalidTransition = errors.New("invalid view transition")
	ErrEmptyOrder        = errors.New("note order is empty")
)
