package pass

import (
	"context"
	"sort"
	"sync"

	"github.com/Alexandredadadadada/velo-altitude-sub000/pkg/validation"
)

// Store is the read side of the pass data collaborator.
type Store interface {
	Get(ctx context.Context, id string) (*Pass, error)
	List(ctx context.Context) ([]*Pass, error)
}

// MemoryStore is a Store backed by a map. It is safe for concurrent use.
type MemoryStore struct {
	mu     sync.RWMutex
	passes map[string]*Pass
}

// NewMemoryStore returns a store holding the given passes. Later entries
// replace earlier ones with the same id.
func NewMemoryStore(passes ...*Pass) *MemoryStore {
	s := &MemoryStore{passes: make(map[string]*Pass, len(passes))}
	for _, p := range passes {
		s.Put(p)
	}
	return s
}

// Put adds or replaces a pass.
func (s *MemoryStore) Put(p *Pass) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.passes[p.ID] = p
}

// Get returns the pass with the given id, or a *validation.NotFoundError.
func (s *MemoryStore) Get(ctx context.Context, id string) (*Pass, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.passes[id]
	if !ok {
		return nil, &validation.NotFoundError{Kind: "pass", ID: id}
	}
	return p, nil
}

// List returns all passes ordered by id.
func (s *MemoryStore) List(ctx context.Context) ([]*Pass, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	out := make([]*Pass, 0, len(s.passes))
	for _, p := range s.passes {
		out = append(out, p)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
