package planner

import (
	"context"
	"sync"

	"menu-planner/internal/storage"
)

// Registry hands out one Planner per user, each saved under its own key.
// Calls to With for the same user are serialized; different users run
// concurrently.
type Registry struct {
	mu       sync.Mutex
	kv       storage.KV
	opts     []Option
	planners map[string]*registryEntry
}

type registryEntry struct {
	mu sync.Mutex
	p  *Planner
}

// NewRegistry creates a Registry whose planners are stored in kv and built
// with opts.
func NewRegistry(kv storage.KV, opts ...Option) *Registry {
	return &Registry{
		kv:       kv,
		opts:     opts,
		planners: make(map[string]*registryEntry),
	}
}

func (r *Registry) entry(userID string) *registryEntry {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.planners[userID]
	if !ok {
		e = &registryEntry{}
		r.planners[userID] = e
	}
	return e
}

// With runs fn with the user's planner, opening it on first use.
func (r *Registry) With(ctx context.Context, userID string, fn func(*Planner) error) error {
	e := r.entry(userID)
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.p == nil {
		p, err := Open(ctx, r.kv, storage.UserKey(userID), r.opts...)
		if err != nil {
			return err
		}
		e.p = p
	}
	return fn(e.p)
}
