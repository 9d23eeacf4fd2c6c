package inmemory

import (
	"log/slog"
	"sync"

	"github.com/sharetube/player-api/internal/repository/instance"
	"golang.org/x/exp/maps"
)

// Repo maps instance ids to live instances. It holds lookup references only.
type Repo[T any] struct {
	instances map[string]T
	mu        sync.RWMutex
	logger    *slog.Logger
}

func NewRepo[T any](logger *slog.Logger) *Repo[T] {
	return &Repo[T]{
		instances: make(map[string]T),
		logger:    logger,
	}
}

// Add inserts v under id, replacing any previous entry.
func (r *Repo[T]) Add(id string, v T) {
	funcName := "instance.inmemory.Add"
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.instances[id]; ok {
		r.logger.Debug(funcName, "id", id, "result", "replaced")
	}
	r.instances[id] = v

	r.logger.Debug(funcName, "id", id, "result", "OK")
}

func (r *Repo[T]) Get(id string) (T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.instances[id]
	if !ok {
		var zero T
		return zero, instance.ErrNotFound
	}

	return v, nil
}

func (r *Repo[T]) Remove(id string) error {
	funcName := "instance.inmemory.Remove"
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.instances[id]; !ok {
		return instance.ErrNotFound
	}
	delete(r.instances, id)

	r.logger.Debug(funcName, "id", id, "result", "OK")
	return nil
}

func (r *Repo[T]) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return maps.Keys(r.instances)
}
