package application

import "errors"

var (
	ErrNotFound          = errors.New("application not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrNotOwner          = errors.New("not the owner of this application")
	ErrAlreadyDecided    = errors.New("application already decided")
)
