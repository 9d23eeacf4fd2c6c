package state

import "errors"

var (
	ErrStateNotFound = errors.New("player state not found")
)
