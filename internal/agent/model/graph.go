package model

import (
	"time"
)

// TurnTrace stores per-invocation state for the Eino graph.
// Concurrency model:
//   - This struct is registered as Graph Local State via compose.WithGenLocalState.
//   - All reads/writes happen only inside Eino state handlers:
//     WithStatePreHandler or WithStatePostHandler.
//   - Eino serializes access to state within these handlers, so no additional
//     mutex/atomic is required as long as it is never touched outside handlers.
type TurnTrace struct {
	SessionID string
	Visited   []string // node names in execution order, appended in handlers
	StartedAt time.Time
}
