// Package repo provides transcript repositories: an in-memory implementation
// used by the core and a Redis-backed one for durable transcripts.
package repo

import (
	"context"
	"sync"

	"github.com/sliceline-core/server/internal/agent/model"
)

// MemoryTurnRepository keeps transcripts in process memory.
type MemoryTurnRepository struct {
	mu    sync.RWMutex
	turns map[string][]model.Turn
}

func NewMemoryTurnRepository() *MemoryTurnRepository {
	return &MemoryTurnRepository{turns: make(map[string][]model.Turn)}
}

func (r *MemoryTurnRepository) AppendTurn(ctx context.Context, sessionID string, turn model.Turn) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.turns[sessionID] = append(r.turns[sessionID], turn)
	return nil
}

func (r *MemoryTurnRepository) LoadTurns(ctx context.Context, sessionID string) ([]model.Turn, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stored := r.turns[sessionID]
	out := make([]model.Turn, len(stored))
	copy(out, stored)
	return out, nil
}

func (r *MemoryTurnRepository) ClearTurns(ctx context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.turns, sessionID)
	return nil
}

func (r *MemoryTurnRepository) TurnCount(ctx context.Context, sessionID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.turns[sessionID]), nil
}

var _ model.TurnRepository = (*MemoryTurnRepository)(nil)
