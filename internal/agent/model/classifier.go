package model

import (
	"context"
)

// Labels the triage step accepts from the classifier. LabelNone is the
// fallback for ambiguity, timeout or error.
const (
	LabelSearch = "search"
	LabelExit   = "exit"
	LabelNone   = "none"
)

// Classifier is the external text-understanding boundary. Implementations are
// blocking calls bounded by a fixed timeout; on timeout or error they return
// LabelNone rather than failing the turn.
type Classifier interface {
	// Classify maps free text onto one of the allowed labels.
	Classify(ctx context.Context, text string, allowedLabels []string, hints map[string]string) (string, error)

	// Generate produces a free-form reply for the given prompt context.
	Generate(ctx context.Context, promptContext string) (string, error)
}
