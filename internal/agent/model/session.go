package model

import (
	"time"
)

// ConversationStatus tracks where a session is in its lifecycle.
type ConversationStatus string

const (
	StatusInitial              ConversationStatus = "initial"
	StatusProcessingOrder      ConversationStatus = "processing_order"
	StatusAwaitingContinuation ConversationStatus = "awaiting_continuation"
	StatusCompleted            ConversationStatus = "completed"
	StatusExited               ConversationStatus = "exited"
)

// Workflow step names. NextAction on the session state always holds one of
// these; they double as the graph node keys.
const (
	ActionTriage       = "triage"
	ActionSearch       = "search"
	ActionContinuation = "continuation"
	ActionEnd          = "end"
)

// Turn is one append-only entry of a session's transcript.
type Turn struct {
	Speaker   string    `json:"speaker"`
	Content   string    `json:"content"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// ConversationContext is the per-session mutable conversational record, owned
// exclusively by its session.
type ConversationContext struct {
	TurnCount int
	Status    ConversationStatus
	LastAgent string
	History   []Turn
}

// NewConversationContext returns a fresh context in the initial status.
func NewConversationContext() *ConversationContext {
	return &ConversationContext{
		Status:  StatusInitial,
		History: []Turn{},
	}
}

// AddTurn appends a turn and bumps the monotonic counter. TurnCount always
// matches len(History).
func (c *ConversationContext) AddTurn(content, agent string) {
	c.TurnCount++
	c.LastAgent = agent
	c.History = append(c.History, Turn{
		Speaker:   agent,
		Content:   content,
		Status:    string(c.Status),
		Timestamp: time.Now(),
	})
}

// SessionState is the aggregate passed between workflow steps. It is owned by
// the session store keyed by SessionID; nodes receive it by exclusive
// ownership for the duration of a turn.
type SessionState struct {
	UserInput string
	Context   *ConversationContext

	// Routing flags set by triage.
	WantsItem   bool
	RequestText string
	FoundItem   string
	ExitReason  string

	// Order assembly.
	Order    *Order
	Matches  []Product
	Selected *Product

	// Recoverable error tracking, cleared at the start of each productive step.
	ValidationErrors []string
	LastError        string
	RetryCount       int

	// AssistantReply is the user-facing message produced by the last
	// continuation step, for the front end to display.
	AssistantReply string

	SessionID         string
	NextAction        string
	RequiresUserInput bool
}

// NewSessionState creates the initial state for a new conversation.
func NewSessionState(userInput, sessionID string) *SessionState {
	return &SessionState{
		UserInput:  userInput,
		Context:    NewConversationContext(),
		SessionID:  sessionID,
		NextAction: ActionTriage,
	}
}

// TransitionToSearch marks the session as wanting an item and routes to the
// search step.
func (s *SessionState) TransitionToSearch(request string) {
	s.WantsItem = true
	s.RequestText = request
	s.Context.Status = StatusProcessingOrder
	s.NextAction = ActionSearch
}

// TransitionToContinuation routes to the continuation step and pauses the
// session for user input. StatusAwaitingContinuation always implies
// RequiresUserInput.
func (s *SessionState) TransitionToContinuation() {
	s.Context.Status = StatusAwaitingContinuation
	s.NextAction = ActionContinuation
	s.RequiresUserInput = true
}

// TransitionToExit terminates the session with a reason.
func (s *SessionState) TransitionToExit(reason string) {
	s.WantsItem = false
	s.ExitReason = reason
	s.Context.Status = StatusExited
	s.NextAction = ActionEnd
	s.RequiresUserInput = false
}

// AddError records a recoverable error and bumps the retry counter.
func (s *SessionState) AddError(msg string) {
	s.ValidationErrors = append(s.ValidationErrors, msg)
	s.LastError = msg
	s.RetryCount++
}

// ClearErrors resets error tracking at the start of a productive step.
func (s *SessionState) ClearErrors() {
	s.ValidationErrors = nil
	s.LastError = ""
	s.RetryCount = 0
}

// ResetForNewOrder clears per-item fields ahead of another search pass while
// preserving the conversation context and the accumulated order.
func (s *SessionState) ResetForNewOrder() {
	s.RequestText = ""
	s.FoundItem = ""
	s.Matches = nil
	s.Selected = nil
	s.NextAction = ActionTriage
	s.RequiresUserInput = true
	s.ClearErrors()
}
