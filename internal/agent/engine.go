// Package agent ties the session store and the workflow graph together into
// the per-turn conversational ordering engine.
package agent

import (
	"context"

	"github.com/sliceline-core/server/internal/agent/graph"
	"github.com/sliceline-core/server/internal/agent/model"
	"github.com/sliceline-core/server/internal/agent/session"
	errx "github.com/sliceline-core/server/internal/core/error"
	logx "github.com/sliceline-core/server/pkg/logger"
)

// Engine executes workflow turns against stored sessions. Each session's turn
// runs strictly sequentially under the store's per-key lock; different
// sessions run concurrently and independently.
type Engine struct {
	store  *session.Store
	runner graph.Runner
}

// NewEngine wires an engine over a session store and a compiled workflow.
func NewEngine(store *session.Store, runner graph.Runner) *Engine {
	return &Engine{store: store, runner: runner}
}

// StartSession creates a session from the initial user input and runs its
// first workflow turn.
func (e *Engine) StartSession(ctx context.Context, initialInput string) (string, *model.SessionState, error) {
	sessionID, _, err := e.store.Create(ctx, initialInput)
	if err != nil {
		return "", nil, err
	}

	state, err := e.runTurn(ctx, sessionID)
	if err != nil {
		return sessionID, nil, err
	}
	return sessionID, state, nil
}

// SubmitInput records the next user input for an existing session and runs
// one workflow turn over it.
func (e *Engine) SubmitInput(ctx context.Context, sessionID, input string) (*model.SessionState, error) {
	if !e.store.AddUserInput(ctx, sessionID, input) {
		return nil, errx.ErrSessionNotFound
	}
	return e.runTurn(ctx, sessionID)
}

// runTurn executes the graph while holding exclusive ownership of the
// session's state.
func (e *Engine) runTurn(ctx context.Context, sessionID string) (*model.SessionState, error) {
	var out *model.SessionState
	err := e.store.WithSession(sessionID, func(state *model.SessionState) error {
		result, err := e.runner.RunTurn(ctx, state)
		if err != nil {
			return err
		}
		out = result
		return nil
	})
	if err != nil {
		logx.Error().Err(err).Str("session_id", sessionID).Msg("workflow turn failed")
		return nil, err
	}
	return out, nil
}

// ShouldContinue reports whether the session's conversation loop should run
// another turn.
func (e *Engine) ShouldContinue(ctx context.Context, sessionID string) bool {
	return e.store.ShouldContinue(ctx, sessionID)
}

// Summarize exposes the session's conversational summary.
func (e *Engine) Summarize(ctx context.Context, sessionID string) (session.Summary, bool) {
	return e.store.Summarize(ctx, sessionID)
}

// EndSession removes all session data. Idempotent.
func (e *Engine) EndSession(ctx context.Context, sessionID string) bool {
	return e.store.Cleanup(ctx, sessionID)
}
