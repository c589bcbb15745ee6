package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sliceline-core/server/internal/agent/catalog"
	"github.com/sliceline-core/server/internal/agent/graph"
	"github.com/sliceline-core/server/internal/agent/model"
	"github.com/sliceline-core/server/internal/agent/order"
	"github.com/sliceline-core/server/internal/agent/repo"
	"github.com/sliceline-core/server/internal/agent/session"
	errx "github.com/sliceline-core/server/internal/core/error"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()

	cat := catalog.NewService()
	runner, err := graph.BuildWorkflow(context.Background(), &graph.Config{
		Catalog:     cat,
		Recommender: catalog.NewRecommender(cat),
		Orders:      order.NewService(),
		Classifier:  nil,
		Search:      model.SearchConfig{MaxResults: 3, ConfidenceThreshold: 0.7, DefaultProduct: "margherita"},
	})
	require.NoError(t, err)

	store := session.NewStore(repo.NewMemoryTurnRepository(), model.ConversationConfig{MaxTurns: 20})
	return NewEngine(store, runner)
}

func TestEngineOrderConversation(t *testing.T) {
	ctx := context.Background()
	engine := newTestEngine(t)

	sessionID, state, err := engine.StartSession(ctx, "I want to order a pepperoni pizza")
	require.NoError(t, err)
	require.NotEmpty(t, sessionID)
	require.NotNil(t, state)

	require.NotNil(t, state.Order)
	require.Len(t, state.Order.Lines, 1)
	assert.Equal(t, "pepperoni", state.Order.Lines[0].Product.Name)
	assert.True(t, engine.ShouldContinue(ctx, sessionID))

	state, err = engine.SubmitInput(ctx, sessionID, "yes, add a margherita too")
	require.NoError(t, err)
	require.Len(t, state.Order.Lines, 2)
	assert.InDelta(t, 14.99+12.99, state.Order.TotalAmount, 0.001)
	assert.True(t, engine.ShouldContinue(ctx, sessionID))

	state, err = engine.SubmitInput(ctx, sessionID, "no, that's all")
	require.NoError(t, err)
	assert.Equal(t, model.StatusExited, state.Context.Status)
	assert.False(t, engine.ShouldContinue(ctx, sessionID))

	summary, ok := engine.Summarize(ctx, sessionID)
	require.True(t, ok)
	assert.Equal(t, model.StatusExited, summary.Status)
	assert.True(t, summary.HasOrder)
	assert.Greater(t, summary.TurnLogCount, 0)

	assert.True(t, engine.EndSession(ctx, sessionID))
	assert.False(t, engine.EndSession(ctx, sessionID))
}

func TestEngineDeclineConversation(t *testing.T) {
	ctx := context.Background()
	engine := newTestEngine(t)

	sessionID, state, err := engine.StartSession(ctx, "No thanks, I don't want anything")
	require.NoError(t, err)

	assert.Equal(t, model.StatusExited, state.Context.Status)
	assert.Nil(t, state.Order)
	assert.False(t, engine.ShouldContinue(ctx, sessionID))
}

func TestEngineUnknownSession(t *testing.T) {
	ctx := context.Background()
	engine := newTestEngine(t)

	_, err := engine.SubmitInput(ctx, "missing", "hello")
	assert.ErrorIs(t, err, errx.ErrSessionNotFound)

	assert.False(t, engine.ShouldContinue(ctx, "missing"))
	_, ok := engine.Summarize(ctx, "missing")
	assert.False(t, ok)
}

// failingRunner always faults, standing in for a misbehaving workflow.
type failingRunner struct{}

func (failingRunner) RunTurn(context.Context, *model.SessionState) (*model.SessionState, error) {
	return nil, errors.New("node fault")
}

func TestEngineRunnerFailure(t *testing.T) {
	ctx := context.Background()
	store := session.NewStore(repo.NewMemoryTurnRepository(), model.ConversationConfig{})
	engine := NewEngine(store, failingRunner{})

	sessionID, state, err := engine.StartSession(ctx, "hello")
	require.Error(t, err)
	assert.Nil(t, state)
	// the session itself survives a failed turn
	assert.NotEmpty(t, sessionID)
	_, ok := store.Get(sessionID)
	assert.True(t, ok)
}
