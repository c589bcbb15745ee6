package nodes

import (
	"context"
	"testing"

	"github.com/cloudwego/eino/compose"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sliceline-core/server/internal/agent/model"
)

func TestTriageCondition(t *testing.T) {
	cond := NewTriageCondition()
	ctx := context.Background()

	state := model.NewSessionState("I want a pizza", "s1")
	state.TransitionToSearch(state.UserInput)

	next, err := cond(ctx, state)
	require.NoError(t, err)
	assert.Equal(t, NodeSearch, next)

	state = model.NewSessionState("no thanks", "s1")
	state.TransitionToExit("user declined to order")

	next, err = cond(ctx, state)
	require.NoError(t, err)
	assert.Equal(t, compose.END, next)
}

func TestTurnTraceHandlers(t *testing.T) {
	ctx := context.Background()
	state := model.NewSessionState("hello", "s1")
	trace := &model.TurnTrace{Visited: []string{"stale"}}

	_, err := NewTurnStartHandler()(ctx, state, trace)
	require.NoError(t, err)
	assert.Equal(t, "s1", trace.SessionID)
	assert.Empty(t, trace.Visited)
	assert.False(t, trace.StartedAt.IsZero())

	_, err = NewStepTraceHandler(NodeTriage)(ctx, state, trace)
	require.NoError(t, err)
	_, err = NewStepTraceHandler(NodeSearch)(ctx, state, trace)
	require.NoError(t, err)
	assert.Equal(t, []string{NodeTriage, NodeSearch}, trace.Visited)
}

func TestIsExplicitExit(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"no thanks, i don't want anything", true},
		{"nothing for me", true},
		{"goodbye", true},
		{"never mind", true},
		{"i want a pizza", false},
		{"give me a meat lovers pizza", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, isExplicitExit(tt.input), "input: %s", tt.input)
	}
}

func TestContainsAnyKeyword(t *testing.T) {
	assert.True(t, containsAnyKeyword("i'm really hungry", itemKeywords))
	assert.False(t, containsAnyKeyword("what time is it", itemKeywords))
}
