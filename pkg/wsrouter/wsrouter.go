package wsrouter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gorilla/websocket"
)

var ErrMissingParameter = errors.New("missing parameter")

type message struct {
	Command    string            `json:"command"`
	Parameters []json.RawMessage `json:"parameters"`
}

type HandlerFunc func(ctx context.Context, conn *websocket.Conn, params []json.RawMessage) error

type ErrorHandlerFunc func(ctx context.Context, err error)

// WSRouter dispatches {command, parameters} messages read from a connection
// to the handler registered for the command.
type WSRouter struct {
	routes   map[string]HandlerFunc
	notFound HandlerFunc
	onError  ErrorHandlerFunc
}

func New() *WSRouter {
	return &WSRouter{
		routes:   make(map[string]HandlerFunc),
		notFound: func(context.Context, *websocket.Conn, []json.RawMessage) error { return nil },
		onError:  func(context.Context, error) {},
	}
}

func (r *WSRouter) Handle(command string, handler HandlerFunc) {
	r.routes[command] = handler
}

// NotFound sets the handler for commands without a route. By default they
// are ignored.
func (r *WSRouter) NotFound(handler HandlerFunc) {
	r.notFound = handler
}

// OnError sets the handler for undecodable messages and handler errors.
func (r *WSRouter) OnError(handler ErrorHandlerFunc) {
	r.onError = handler
}

// ServeConn reads until the connection fails and returns that error.
// Handler errors do not stop the loop.
func (r *WSRouter) ServeConn(ctx context.Context, conn *websocket.Conn) error {
	for {
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			return err
		}

		if messageType != websocket.TextMessage {
			continue
		}

		var msg message
		if err := json.Unmarshal(data, &msg); err != nil {
			r.onError(ctx, fmt.Errorf("failed to decode message: %w", err))
			continue
		}

		handler, exists := r.routes[msg.Command]
		if !exists {
			handler = r.notFound
		}

		msgCtx := context.WithValue(ctx, commandKey, msg.Command)
		if err := handler(msgCtx, conn, msg.Parameters); err != nil {
			r.onError(msgCtx, fmt.Errorf("command %q: %w", msg.Command, err))
		}
	}
}

// Param decodes parameter i into a T.
func Param[T any](params []json.RawMessage, i int) (T, error) {
	var v T
	if i >= len(params) {
		return v, fmt.Errorf("%w: %d", ErrMissingParameter, i)
	}

	if err := json.Unmarshal(params[i], &v); err != nil {
		return v, fmt.Errorf("failed to decode parameter %d: %w", i, err)
	}

	return v, nil
}
