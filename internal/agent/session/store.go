// Package session owns per-session conversational state: a thread-safe store
// keyed by session id with single-writer-per-key discipline, and the
// continuation-intent heuristics.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sliceline-core/server/internal/agent/model"
	errx "github.com/sliceline-core/server/internal/core/error"
	logx "github.com/sliceline-core/server/pkg/logger"
)

// DefaultMaxTurns is the loop-guard ceiling when the config leaves it unset.
const DefaultMaxTurns = 20

const systemSpeaker = "system"

type entry struct {
	mu    sync.Mutex
	state *model.SessionState
}

// Store maps session ids to session state. Operations on one session id are
// serialized through a per-entry mutex; different sessions never block each
// other beyond the map access itself.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*entry

	turns    model.TurnRepository
	maxTurns int
}

// NewStore wires a store over the given transcript repository.
func NewStore(turns model.TurnRepository, cfg model.ConversationConfig) *Store {
	maxTurns := cfg.MaxTurns
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}
	return &Store{
		sessions: make(map[string]*entry),
		turns:    turns,
		maxTurns: maxTurns,
	}
}

// Create starts a new session seeded with the initial user input, logging the
// first turn to the transcript.
func (s *Store) Create(ctx context.Context, initialInput string) (string, *model.SessionState, error) {
	sessionID := uuid.NewString()
	state := model.NewSessionState(initialInput, sessionID)
	state.Context.AddTurn(initialInput, "user")

	s.mu.Lock()
	s.sessions[sessionID] = &entry{state: state}
	s.mu.Unlock()

	if err := s.turns.AppendTurn(ctx, sessionID, model.Turn{
		Speaker:   "user",
		Content:   initialInput,
		Status:    "session_start",
		Timestamp: time.Now(),
	}); err != nil {
		logx.Error().Err(err).Str("session_id", sessionID).Msg("failed to log initial turn")
		return "", nil, err
	}

	logx.Debug().Str("session_id", sessionID).Msg("session created")
	return sessionID, state, nil
}

func (s *Store) lookup(sessionID string) (*entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.sessions[sessionID]
	return e, ok
}

// Get returns the current state for a session.
func (s *Store) Get(sessionID string) (*model.SessionState, bool) {
	e, ok := s.lookup(sessionID)
	if !ok {
		return nil, false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state, true
}

// Update replaces the session's state. Returns false for unknown sessions.
func (s *Store) Update(sessionID string, state *model.SessionState) bool {
	e, ok := s.lookup(sessionID)
	if !ok {
		return false
	}
	e.mu.Lock()
	e.state = state
	e.mu.Unlock()
	return true
}

// WithSession runs fn with exclusive ownership of the session's state for the
// duration of the call. This is the single-writer-per-key discipline every
// workflow turn goes through.
func (s *Store) WithSession(sessionID string, fn func(*model.SessionState) error) error {
	e, ok := s.lookup(sessionID)
	if !ok {
		return errx.ErrSessionNotFound
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.state)
}

// AddUserInput appends the input as a turn and overwrites the pending
// user-input field, releasing the awaiting-input pause.
func (s *Store) AddUserInput(ctx context.Context, sessionID, input string) bool {
	e, ok := s.lookup(sessionID)
	if !ok {
		return false
	}

	e.mu.Lock()
	e.state.UserInput = input
	e.state.RequiresUserInput = false
	e.state.Context.AddTurn(input, "user")
	status := string(e.state.Context.Status)
	e.mu.Unlock()

	if err := s.turns.AppendTurn(ctx, sessionID, model.Turn{
		Speaker:   "user",
		Content:   input,
		Status:    status,
		Timestamp: time.Now(),
	}); err != nil {
		logx.Error().Err(err).Str("session_id", sessionID).Msg("failed to log user turn")
	}
	return true
}

// TransitionStatus moves the session to a new conversation status and records
// the transition in the transcript as a system turn.
func (s *Store) TransitionStatus(ctx context.Context, sessionID string, status model.ConversationStatus) bool {
	e, ok := s.lookup(sessionID)
	if !ok {
		return false
	}

	e.mu.Lock()
	old := e.state.Context.Status
	e.state.Context.Status = status
	e.mu.Unlock()

	if err := s.turns.AppendTurn(ctx, sessionID, model.Turn{
		Speaker:   systemSpeaker,
		Content:   "status transition: " + string(old) + " -> " + string(status),
		Status:    string(status),
		Timestamp: time.Now(),
	}); err != nil {
		logx.Error().Err(err).Str("session_id", sessionID).Msg("failed to log status transition")
	}
	return true
}

// ShouldContinue decides whether the conversation loop should run another
// turn. A session past the turn ceiling is forced to exited regardless of
// input content.
func (s *Store) ShouldContinue(ctx context.Context, sessionID string) bool {
	e, ok := s.lookup(sessionID)
	if !ok {
		return false
	}

	e.mu.Lock()
	state := e.state
	status := state.Context.Status
	turnCount := state.Context.TurnCount
	requiresInput := state.RequiresUserInput
	e.mu.Unlock()

	if status == model.StatusExited {
		return false
	}

	if turnCount > s.maxTurns {
		logx.Warn().Str("session_id", sessionID).Int("turn_count", turnCount).
			Msg("turn ceiling exceeded, forcing session exit")
		s.TransitionStatus(ctx, sessionID, model.StatusExited)
		return false
	}

	if requiresInput {
		return true
	}
	if status == model.StatusProcessingOrder || status == model.StatusAwaitingContinuation {
		return true
	}
	return false
}

// ActiveSessions lists ids of sessions that have not exited.
func (s *Store) ActiveSessions() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var active []string
	for id, e := range s.sessions {
		e.mu.Lock()
		if e.state.Context.Status != model.StatusExited {
			active = append(active, id)
		}
		e.mu.Unlock()
	}
	return active
}

// Summary is a read-only projection of a session's conversational progress.
type Summary struct {
	SessionID    string
	Status       model.ConversationStatus
	TurnCount    int
	LastAgent    string
	HasOrder     bool
	TurnLogCount int
	StartedAt    time.Time
	LastActivity time.Time
}

// Summarize returns the conversation summary for a session.
func (s *Store) Summarize(ctx context.Context, sessionID string) (Summary, bool) {
	e, ok := s.lookup(sessionID)
	if !ok {
		return Summary{}, false
	}

	e.mu.Lock()
	summary := Summary{
		SessionID: sessionID,
		Status:    e.state.Context.Status,
		TurnCount: e.state.Context.TurnCount,
		LastAgent: e.state.Context.LastAgent,
		HasOrder:  e.state.Order != nil,
	}
	e.mu.Unlock()

	turns, err := s.turns.LoadTurns(ctx, sessionID)
	if err != nil {
		logx.Warn().Err(err).Str("session_id", sessionID).Msg("failed to load transcript for summary")
	} else if len(turns) > 0 {
		summary.TurnLogCount = len(turns)
		summary.StartedAt = turns[0].Timestamp
		summary.LastActivity = turns[len(turns)-1].Timestamp
	}
	return summary, true
}

// Cleanup removes all session and transcript data. Idempotent.
func (s *Store) Cleanup(ctx context.Context, sessionID string) bool {
	s.mu.Lock()
	_, existed := s.sessions[sessionID]
	delete(s.sessions, sessionID)
	s.mu.Unlock()

	if err := s.turns.ClearTurns(ctx, sessionID); err != nil {
		logx.Warn().Err(err).Str("session_id", sessionID).Msg("failed to clear transcript")
	}
	return existed
}
