package nodes

import (
	"context"
	"strings"

	"github.com/cloudwego/eino/compose"

	"github.com/sliceline-core/server/internal/agent/catalog"
	"github.com/sliceline-core/server/internal/agent/model"
	"github.com/sliceline-core/server/internal/agent/order"
	logx "github.com/sliceline-core/server/pkg/logger"
)

const defaultMatchConfidence = 0.3

// NewSearchNode creates the catalog/order step. It ranks the catalog against
// the session's request, adds the best match to the session's order and routes
// to continuation. Order failures are recorded in state as recoverable
// validation errors, never propagated as workflow faults.
func NewSearchNode(
	cat *catalog.Service,
	rec *catalog.Recommender,
	orders *order.Service,
	cfg model.SearchConfig,
) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, state *model.SessionState) (*model.SessionState, error) {
		state.Context.AddTurn(state.RequestText, "search")
		state.ClearErrors()

		result := cat.Search(state.RequestText, cfg.MaxResults)

		if len(result.Matches) == 0 {
			// lookup miss: substitute the default product at low confidence
			if def, ok := cat.ByName(cfg.DefaultProduct); ok {
				result.Matches = []model.Product{def}
				result.Confidence = defaultMatchConfidence
				logx.Debug().Str("session_id", state.SessionID).Str("default", def.Name).
					Msg("search: no matches, offering default recommendation")
			}
		}

		state.Matches = result.Matches
		if len(result.Matches) == 0 {
			state.AddError("no suitable product found for your request")
			state.TransitionToContinuation()
			return state, nil
		}

		best := result.Matches[0]
		state.Selected = &best

		if state.Order == nil {
			state.Order = orders.Create(state.SessionID)
		}

		if _, err := orders.AddLine(state.Order, best, 1, ""); err != nil {
			state.AddError("failed to add product to order: " + err.Error())
			logx.Warn().Err(err).Str("session_id", state.SessionID).Msg("search: add line failed")
		} else {
			state.FoundItem = best.String()
			logx.Debug().Str("session_id", state.SessionID).Str("product", best.Name).
				Float64("confidence", result.Confidence).
				Msg("search: added product to order")
		}

		// Low confidence: log nearby alternatives, no state mutation.
		if result.Confidence < cfg.ConfidenceThreshold {
			if similar := rec.Similar(best, 2); len(similar) > 0 {
				names := make([]string, 0, len(similar))
				for _, p := range similar {
					names = append(names, p.Name)
				}
				logx.Debug().Str("session_id", state.SessionID).
					Str("alternatives", strings.Join(names, ", ")).
					Msg("search: low confidence match, nearby alternatives")
			}
		}

		state.TransitionToContinuation()
		return state, nil
	})
}
