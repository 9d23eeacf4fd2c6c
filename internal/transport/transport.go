// Package transport holds the types shared by one-way message channels that
// connect the host to embedded player frames.
package transport

import (
	"context"
	"errors"
)

// Wildcard as a target origin delivers to a window whatever its origin.
const Wildcard = "*"

var (
	ErrWindowNotFound = errors.New("window not found")
	ErrOriginMismatch = errors.New("target origin does not match window origin")
)

// Message is a raw inbound message together with the origin of its sender.
type Message struct {
	Origin string
	Data   string
}

// Handler receives every inbound message of a channel.
type Handler func(ctx context.Context, msg Message)
