package repo

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sliceline-core/server/internal/agent/model"
)

func TestMemoryTurnRepository(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryTurnRepository()

	turns, err := r.LoadTurns(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, turns)

	first := model.Turn{Speaker: "user", Content: "hello", Status: "initial", Timestamp: time.Now()}
	second := model.Turn{Speaker: "system", Content: "routing", Status: "processing_order", Timestamp: time.Now()}
	require.NoError(t, r.AppendTurn(ctx, "s1", first))
	require.NoError(t, r.AppendTurn(ctx, "s1", second))

	turns, err = r.LoadTurns(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, turns, 2)
	assert.Equal(t, "hello", turns[0].Content)
	assert.Equal(t, "routing", turns[1].Content)

	n, err := r.TurnCount(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// sessions are isolated
	n, err = r.TurnCount(ctx, "s2")
	require.NoError(t, err)
	assert.Zero(t, n)

	require.NoError(t, r.ClearTurns(ctx, "s1"))
	n, err = r.TurnCount(ctx, "s1")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestMemoryTurnRepositoryCopyOnRead(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryTurnRepository()

	require.NoError(t, r.AppendTurn(ctx, "s1", model.Turn{Content: "original"}))

	turns, err := r.LoadTurns(ctx, "s1")
	require.NoError(t, err)
	turns[0].Content = "mutated"

	reloaded, err := r.LoadTurns(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "original", reloaded[0].Content)
}

func TestMemoryTurnRepositoryConcurrentAppends(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryTurnRepository()

	const writers = 10
	const perWriter = 20

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for j := 0; j < perWriter; j++ {
				_ = r.AppendTurn(ctx, "shared", model.Turn{Content: fmt.Sprintf("w%d-%d", w, j)})
			}
		}(i)
	}
	wg.Wait()

	n, err := r.TurnCount(ctx, "shared")
	require.NoError(t, err)
	assert.Equal(t, writers*perWriter, n)
}
