// Package nodes holds the workflow step lambdas and their routing conditions.
package nodes

import (
	"context"
	"time"

	"github.com/cloudwego/eino/compose"

	"github.com/sliceline-core/server/internal/agent/model"
	logx "github.com/sliceline-core/server/pkg/logger"
)

// Graph node keys. These match the NextAction values on the session state.
const (
	NodeTriage       = model.ActionTriage
	NodeSearch       = model.ActionSearch
	NodeContinuation = model.ActionContinuation
)

// NewTurnStartHandler creates the pre-handler for the triage node. It seeds
// the per-invocation trace for each new turn.
func NewTurnStartHandler() func(context.Context, *model.SessionState, *model.TurnTrace) (*model.SessionState, error) {
	return func(ctx context.Context, in *model.SessionState, trace *model.TurnTrace) (*model.SessionState, error) {
		trace.SessionID = in.SessionID
		trace.Visited = trace.Visited[:0]
		trace.StartedAt = time.Now()
		return in, nil
	}
}

// NewStepTraceHandler creates a post-handler that records the executed node in
// the turn trace.
func NewStepTraceHandler(name string) func(context.Context, *model.SessionState, *model.TurnTrace) (*model.SessionState, error) {
	return func(ctx context.Context, out *model.SessionState, trace *model.TurnTrace) (*model.SessionState, error) {
		trace.Visited = append(trace.Visited, name)
		logx.Debug().
			Str("session_id", trace.SessionID).
			Str("node", name).
			Strs("visited", trace.Visited).
			Dur("elapsed", time.Since(trace.StartedAt)).
			Msg("workflow step completed")
		return out, nil
	}
}

// NewTriageCondition routes the output of triage: to search when the user
// wants an item, otherwise to the terminal node.
func NewTriageCondition() func(context.Context, *model.SessionState) (string, error) {
	return func(ctx context.Context, state *model.SessionState) (string, error) {
		if state.WantsItem && state.NextAction == model.ActionSearch {
			logx.Debug().Str("session_id", state.SessionID).Msg("routing: triage -> search")
			return NodeSearch, nil
		}
		logx.Debug().Str("session_id", state.SessionID).Str("exit_reason", state.ExitReason).
			Msg("routing: triage -> end")
		return compose.END, nil
	}
}
