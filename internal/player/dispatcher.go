package player

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/exp/slices"
)

// Event is passed to listeners after the player state has been updated.
type Event struct {
	Type   string
	Target *Player
}

// Listener reacts to a player event. A returned error or a panic is logged
// and does not stop the remaining listeners.
type Listener func(ctx context.Context, e Event) error

type dispatcher struct {
	listeners map[string][]Listener
	mu        sync.RWMutex
	logger    *slog.Logger
}

func newDispatcher(logger *slog.Logger) *dispatcher {
	return &dispatcher{
		listeners: make(map[string][]Listener),
		logger:    logger,
	}
}

func (d *dispatcher) add(name string, l Listener) {
	if l == nil {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.listeners[name] = append(d.listeners[name], l)
}

func (d *dispatcher) count(name string) int {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return len(d.listeners[name])
}

func (d *dispatcher) dispatch(ctx context.Context, e Event) {
	d.mu.RLock()
	listeners := slices.Clone(d.listeners[e.Type])
	d.mu.RUnlock()

	for i, l := range listeners {
		d.call(ctx, i, l, e)
	}
}

func (d *dispatcher) call(ctx context.Context, i int, l Listener, e Event) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.ErrorContext(ctx, "listener panicked", "event", e.Type, "listener", i, "panic", r)
		}
	}()

	if err := l(ctx, e); err != nil {
		d.logger.WarnContext(ctx, "listener failed", "event", e.Type, "listener", i, "err", err)
	}
}
