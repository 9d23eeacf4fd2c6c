package player

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
)

// Player is the local proxy of one embedded player frame.
type Player struct {
	host     *Host
	id       string
	src      string
	autoplay bool
	ready    atomic.Bool

	mu    sync.RWMutex
	state State

	listeners *dispatcher
	logger    *slog.Logger
}

func newPlayer(h *Host, id, src string, logger *slog.Logger) *Player {
	return &Player{
		host:      h,
		id:        id,
		src:       src,
		state:     DefaultState(),
		listeners: newDispatcher(logger),
		logger:    logger,
	}
}

func (p *Player) ID() string { return p.id }

// Src is the embed URL the frame loads.
func (p *Player) Src() string { return p.src }

func (p *Player) Autoplay() bool { return p.autoplay }

// Ready reports whether the remote player announced it accepts commands.
func (p *Player) Ready() bool { return p.ready.Load() }

// State returns a copy of the mirrored remote state.
func (p *Player) State() State {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.state.clone()
}

// AddListener registers l for events named name. Registering the same
// listener twice makes it run twice.
func (p *Player) AddListener(name string, l Listener) {
	p.listeners.add(name, l)
}

func (p *Player) receive(ctx context.Context, ev InboundEvent) {
	switch ev.Kind {
	case KindAPIReady:
		if !p.ready.CompareAndSwap(false, true) {
			return
		}
		p.logger.InfoContext(ctx, "player ready")
	case KindUnload:
		p.host.unregister(ctx, p)
		p.logger.InfoContext(ctx, "player unloaded")
	default:
		p.mu.Lock()
		p.state = Reduce(p.state, ev)
		p.mu.Unlock()
	}

	if ev.Kind != KindUnload {
		p.host.mirrorState(ctx, p, ev.Name)
	}

	p.listeners.dispatch(ctx, Event{Type: ev.Name, Target: p})
}
