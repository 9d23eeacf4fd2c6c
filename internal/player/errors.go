package player

import "errors"

var (
	ErrInvalidElement = errors.New("invalid element: requires an element to host the player frame")
	ErrMissingOptions = errors.New("missing options")
	ErrInvalidOptions = errors.New("invalid options")
	ErrPlayerNotReady = errors.New("player not ready")
	ErrPlayerNotFound = errors.New("player not found")
)
