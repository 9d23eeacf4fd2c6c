// Package ws implements the player channel over websocket connections, one
// per embedded frame. The Origin header of the handshake is the origin of
// every message read from that connection.
package ws

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sharetube/player-api/internal/transport"
	"github.com/sharetube/player-api/pkg/ctxlogger"
	"golang.org/x/exp/maps"
)

const defaultWriteTimeout = 5 * time.Second

type frame struct {
	conn    *websocket.Conn
	origin  string
	writeMu sync.Mutex
}

type Hub struct {
	upgrader     websocket.Upgrader
	frames       map[string]*frame
	handlers     []transport.Handler
	mu           sync.RWMutex
	writeTimeout time.Duration
	logger       *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			// origins are filtered per message by the subscribers
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		frames:       make(map[string]*frame),
		writeTimeout: defaultWriteTimeout,
		logger:       logger,
	}
}

// Subscribe adds a handler called for every message read from any frame.
func (h *Hub) Subscribe(handler transport.Handler) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.handlers = append(h.handlers, handler)
}

// PostMessage writes data to the frame connected as window, provided the
// frame's origin matches targetOrigin or targetOrigin is the wildcard.
func (h *Hub) PostMessage(ctx context.Context, window string, data []byte, targetOrigin string) error {
	h.mu.RLock()
	f, ok := h.frames[window]
	h.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", transport.ErrWindowNotFound, window)
	}

	if targetOrigin != transport.Wildcard && targetOrigin != f.origin {
		return fmt.Errorf("%w: %q", transport.ErrOriginMismatch, f.origin)
	}

	deadline := time.Now().Add(h.writeTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	f.writeMu.Lock()
	defer f.writeMu.Unlock()

	if err := f.conn.SetWriteDeadline(deadline); err != nil {
		return err
	}

	return f.conn.WriteMessage(websocket.TextMessage, data)
}

// ServeFrame upgrades r and reads messages from the frame until the
// connection closes. A second connection for the same window replaces the
// first.
func (h *Hub) ServeFrame(w http.ResponseWriter, r *http.Request, window string) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return fmt.Errorf("failed to upgrade connection: %w", err)
	}

	f := &frame{conn: conn, origin: r.Header.Get("Origin")}
	h.attach(window, f)
	defer h.detach(window, f)

	ctx := ctxlogger.AppendCtx(r.Context(), slog.String("window", window))
	h.logger.InfoContext(ctx, "frame connected", "origin", f.origin)

	for {
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) || errors.Is(err, websocket.ErrCloseSent) {
				h.logger.InfoContext(ctx, "frame disconnected")
				return nil
			}

			return fmt.Errorf("failed to read message: %w", err)
		}

		if messageType != websocket.TextMessage {
			continue
		}

		h.deliver(ctx, transport.Message{Origin: f.origin, Data: string(data)})
	}
}

func (h *Hub) deliver(ctx context.Context, msg transport.Message) {
	h.mu.RLock()
	handlers := append([]transport.Handler(nil), h.handlers...)
	h.mu.RUnlock()

	for _, handler := range handlers {
		handler(ctx, msg)
	}
}

func (h *Hub) attach(window string, f *frame) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if prev, ok := h.frames[window]; ok {
		h.logger.Debug("ws.Hub.attach", "window", window, "result", "replaced")
		prev.conn.Close()
	}
	h.frames[window] = f
}

func (h *Hub) detach(window string, f *frame) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.frames[window] == f {
		delete(h.frames, window)
	}
	f.conn.Close()
}

// Windows lists the currently connected windows.
func (h *Hub) Windows() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return maps.Keys(h.frames)
}

// Close disconnects every frame.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for window, f := range h.frames {
		f.writeMu.Lock()
		f.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""), time.Now().Add(time.Second))
		f.writeMu.Unlock()
		f.conn.Close()
		delete(h.frames, window)
	}
}
