package model

import (
	"context"
)

// TurnRepository persists the append-only per-session transcript.
type TurnRepository interface {
	// AppendTurn adds a turn to the session's transcript.
	AppendTurn(ctx context.Context, sessionID string, turn Turn) error

	// LoadTurns retrieves the full transcript for a session.
	LoadTurns(ctx context.Context, sessionID string) ([]Turn, error)

	// ClearTurns removes all transcript data for a session.
	ClearTurns(ctx context.Context, sessionID string) error

	// TurnCount returns the number of recorded turns.
	TurnCount(ctx context.Context, sessionID string) (int, error)
}
