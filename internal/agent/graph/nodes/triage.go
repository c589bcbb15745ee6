package nodes

import (
	"context"
	"strconv"
	"strings"

	"github.com/cloudwego/eino/compose"

	"github.com/sliceline-core/server/internal/agent/model"
	"github.com/sliceline-core/server/internal/agent/session"
	logx "github.com/sliceline-core/server/pkg/logger"
)

// Keyword heuristics used before falling back to the external classifier.
var itemKeywords = []string{
	"pizza", "order", "buy", "want", "hungry", "food", "eat",
	"margherita", "pepperoni", "veggie", "hawaiian", "meat",
	"give", "get", "like", "love", "craving",
}

var exitKeywords = []string{
	"no thanks", "exit", "quit", "bye", "goodbye",
	"stop", "cancel", "nothing", "never mind", "not interested",
}

// NewTriageNode creates the triage step. It resolves continuation intent when
// the session is awaiting one, otherwise classifies fresh input into a search
// or exit route. Classifier failures degrade to the exit path; ambiguous but
// successful classifications default to search as a clarification opportunity.
func NewTriageNode(classifier model.Classifier) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, state *model.SessionState) (*model.SessionState, error) {
		input := strings.ToLower(strings.TrimSpace(state.UserInput))
		state.Context.AddTurn(input, "triage")

		// Loop-back resolution: the previous turn ended awaiting continuation.
		if state.Context.Status == model.StatusAwaitingContinuation {
			if session.DetectContinuation(state.UserInput, state.Context) {
				state.ResetForNewOrder()
				state.RequiresUserInput = false
				state.TransitionToSearch(state.UserInput)
				logx.Debug().Str("session_id", state.SessionID).Str("request", input).
					Msg("triage: continuing with another item")
			} else {
				state.TransitionToExit("user finished ordering")
				logx.Debug().Str("session_id", state.SessionID).Msg("triage: user finished ordering")
			}
			return state, nil
		}

		switch {
		case isExplicitExit(input):
			state.TransitionToExit("user declined to order")
			logx.Debug().Str("session_id", state.SessionID).Msg("triage: explicit exit")

		case containsAnyKeyword(input, itemKeywords):
			state.TransitionToSearch(state.UserInput)
			logx.Debug().Str("session_id", state.SessionID).Str("request", input).
				Msg("triage: user wants an item")

		default:
			label := classifyAmbiguous(ctx, classifier, state)
			if label == model.LabelExit {
				state.TransitionToExit("user declined to order")
			} else {
				// search doubles as the clarification path
				state.TransitionToSearch(state.UserInput)
			}
			logx.Debug().Str("session_id", state.SessionID).Str("label", label).
				Msg("triage: ambiguous input classified")
		}

		return state, nil
	})
}

// classifyAmbiguous consults the external classifier. Timeouts and errors are
// caught here and degrade to the exit label; they never fault the workflow.
func classifyAmbiguous(ctx context.Context, classifier model.Classifier, state *model.SessionState) string {
	if classifier == nil {
		return model.LabelNone
	}

	hints := map[string]string{
		"conversation_status": string(state.Context.Status),
		"turn_count":          strconv.Itoa(state.Context.TurnCount),
	}
	label, err := classifier.Classify(ctx, state.UserInput,
		[]string{model.LabelSearch, model.LabelExit, model.LabelNone}, hints)
	if err != nil {
		logx.Warn().Err(err).Str("session_id", state.SessionID).
			Msg("triage: classification failed, degrading to exit")
		return model.LabelExit
	}
	return label
}

// isExplicitExit matches the original exit heuristics: an input starting with
// "no" or containing any explicit exit phrase.
func isExplicitExit(input string) bool {
	if strings.HasPrefix(input, "no") {
		return true
	}
	return containsAnyKeyword(input, exitKeywords)
}

func containsAnyKeyword(input string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(input, kw) {
			return true
		}
	}
	return false
}
