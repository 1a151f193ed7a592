// Package memory keeps the canonical directory state in process memory.
package memory

import (
	"context"
	"sync"

	"github.com/sngm3741/hairline-directory/api/internal/directory/application"
)

// Store serializes every operation behind one mutex. Reads and writes
// both work on copies, so callers never alias canonical state.
type Store struct {
	mu    sync.RWMutex
	state application.State
}

var _ application.StateStore = (*Store)(nil)

func NewStore() *Store {
	return &Store{}
}

// View executes fn against a read-only copy of the state.
func (s *Store) View(ctx context.Context, fn func(application.State) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	snapshot := s.state.Clone()
	s.mu.RUnlock()
	return fn(snapshot)
}

// Update executes fn within a transactional copy of the state. The copy
// replaces the canonical state only when fn succeeds.
func (s *Store) Update(ctx context.Context, fn func(*application.State) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	working := s.state.Clone()
	if err := fn(&working); err != nil {
		return err
	}
	s.state = working.Clone()
	return nil
}

func (s *Store) Replace(ctx context.Context, state application.State) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	s.state = state.Clone()
	s.mu.Unlock()
	return nil
}
