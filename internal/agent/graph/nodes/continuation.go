package nodes

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/compose"

	"github.com/sliceline-core/server/internal/agent/model"
	"github.com/sliceline-core/server/internal/agent/order"
	logx "github.com/sliceline-core/server/pkg/logger"
)

const continuationPrompt = "Would you like to add another pizza or complete your order?"

// NewContinuationNode creates the continuation step. It summarizes the current
// order, computes add-on suggestions (side-effect-free) and pauses the session
// awaiting the user's continuation decision. The next triage invocation
// resolves the loop-back.
func NewContinuationNode(orders *order.Service, generator model.Classifier) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, state *model.SessionState) (*model.SessionState, error) {
		state.Context.AddTurn("order_processed", "continuation")

		reply := continuationPrompt
		if state.Order != nil {
			summary := orders.Summarize(state.Order)
			logx.Info().Str("session_id", state.SessionID).
				Int("lines", summary.LineCount).
				Float64("total", summary.TotalAmount).
				Msg("continuation: current order")

			if suggestions := order.SuggestAddOns(state.Order); len(suggestions) > 0 {
				logx.Debug().Str("session_id", state.SessionID).
					Str("suggestions", strings.Join(suggestions, ", ")).
					Msg("continuation: add-on suggestions")
			}

			reply = generateReply(ctx, generator, summary)
		}
		state.AssistantReply = reply

		state.TransitionToContinuation()
		return state, nil
	})
}

// generateReply asks the external generator for a user-facing continuation
// message, degrading to a static prompt on any failure.
func generateReply(ctx context.Context, generator model.Classifier, summary model.OrderSummary) string {
	if generator == nil {
		return continuationPrompt
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Current order (%s): %d item(s), total $%.2f\n", summary.Status, summary.LineCount, summary.TotalAmount)
	for i, line := range summary.Lines {
		fmt.Fprintf(&b, "%d. %s x%d - $%.2f\n", i+1, line.Name, line.Quantity, line.Total)
	}
	b.WriteString("Ask the customer whether they want another item or to complete the order.")

	reply, err := generator.Generate(ctx, b.String())
	if err != nil || strings.TrimSpace(reply) == "" {
		if err != nil {
			logx.Warn().Err(err).Msg("continuation: reply generation failed, using static prompt")
		}
		return continuationPrompt
	}
	return reply
}
