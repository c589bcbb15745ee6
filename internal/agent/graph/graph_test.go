package graph

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sliceline-core/server/internal/agent/catalog"
	"github.com/sliceline-core/server/internal/agent/model"
	"github.com/sliceline-core/server/internal/agent/order"
	errx "github.com/sliceline-core/server/internal/core/error"
)

// stubClassifier answers with a fixed label, or errors.
type stubClassifier struct {
	label string
	err   error

	classified []string
}

func (s *stubClassifier) Classify(ctx context.Context, text string, allowedLabels []string, hints map[string]string) (string, error) {
	s.classified = append(s.classified, text)
	if s.err != nil {
		return model.LabelNone, s.err
	}
	return s.label, nil
}

func (s *stubClassifier) Generate(ctx context.Context, promptContext string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return "Anything else I can get you?", nil
}

func newTestRunner(t *testing.T, classifier model.Classifier) Runner {
	t.Helper()
	cat := catalog.NewService()
	runner, err := BuildWorkflow(context.Background(), &Config{
		Catalog:     cat,
		Recommender: catalog.NewRecommender(cat),
		Orders:      order.NewService(),
		Classifier:  classifier,
		Search:      model.SearchConfig{MaxResults: 3, ConfidenceThreshold: 0.7, DefaultProduct: "margherita"},
	})
	require.NoError(t, err)
	return runner
}

func TestBuildWorkflowValidation(t *testing.T) {
	_, err := BuildWorkflow(context.Background(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, errx.ErrGraphConfig)

	_, err = BuildWorkflow(context.Background(), &Config{})
	require.Error(t, err)
	assert.ErrorIs(t, err, errx.ErrGraphConfig)
}

func TestRunTurnOrdersProduct(t *testing.T) {
	runner := newTestRunner(t, &stubClassifier{label: model.LabelSearch})

	state := model.NewSessionState("I want to order a pepperoni pizza", "s1")
	out, err := runner.RunTurn(context.Background(), state)
	require.NoError(t, err)

	assert.True(t, out.WantsItem)
	require.NotNil(t, out.Order)
	require.Len(t, out.Order.Lines, 1)
	assert.Equal(t, "pepperoni", out.Order.Lines[0].Product.Name)
	assert.InDelta(t, 14.99, out.Order.TotalAmount, 0.001)

	assert.Equal(t, model.StatusAwaitingContinuation, out.Context.Status)
	assert.True(t, out.RequiresUserInput)
	assert.NotEmpty(t, out.AssistantReply)
	assert.Contains(t, out.FoundItem, "Pepperoni")
}

func TestRunTurnDeclines(t *testing.T) {
	runner := newTestRunner(t, &stubClassifier{label: model.LabelSearch})

	state := model.NewSessionState("No thanks, I don't want anything", "s1")
	out, err := runner.RunTurn(context.Background(), state)
	require.NoError(t, err)

	assert.False(t, out.WantsItem)
	assert.Nil(t, out.Order)
	assert.Equal(t, model.StatusExited, out.Context.Status)
	assert.Equal(t, "user declined to order", out.ExitReason)
	assert.False(t, out.RequiresUserInput)
}

func TestRunTurnContinuationLoop(t *testing.T) {
	runner := newTestRunner(t, &stubClassifier{label: model.LabelSearch})
	ctx := context.Background()

	state := model.NewSessionState("I want a margherita pizza", "s1")
	out, err := runner.RunTurn(ctx, state)
	require.NoError(t, err)
	require.NotNil(t, out.Order)
	require.Len(t, out.Order.Lines, 1)
	require.Equal(t, model.StatusAwaitingContinuation, out.Context.Status)

	// second turn: the user asks for another item
	out.UserInput = "yes, another pizza: pepperoni"
	out.RequiresUserInput = false

	out, err = runner.RunTurn(ctx, out)
	require.NoError(t, err)
	require.Len(t, out.Order.Lines, 2)
	assert.Equal(t, "margherita", out.Order.Lines[0].Product.Name)
	assert.Equal(t, "pepperoni", out.Order.Lines[1].Product.Name)
	assert.InDelta(t, 12.99+14.99, out.Order.TotalAmount, 0.001)
	assert.Equal(t, model.StatusAwaitingContinuation, out.Context.Status)

	// third turn: the user is done
	out.UserInput = "that's all, thanks"
	out.RequiresUserInput = false

	out, err = runner.RunTurn(ctx, out)
	require.NoError(t, err)
	assert.Equal(t, model.StatusExited, out.Context.Status)
	assert.Equal(t, "user finished ordering", out.ExitReason)
	// the accumulated order survives the exit
	require.NotNil(t, out.Order)
	assert.Len(t, out.Order.Lines, 2)
}

func TestRunTurnAmbiguousInputClassified(t *testing.T) {
	stub := &stubClassifier{label: model.LabelSearch}
	runner := newTestRunner(t, stub)

	state := model.NewSessionState("something for dinner maybe", "s1")
	out, err := runner.RunTurn(context.Background(), state)
	require.NoError(t, err)

	require.Len(t, stub.classified, 1)
	assert.Equal(t, "something for dinner maybe", stub.classified[0])

	// no catalog match: the default product is offered at low confidence
	require.NotNil(t, out.Order)
	require.Len(t, out.Order.Lines, 1)
	assert.Equal(t, "margherita", out.Order.Lines[0].Product.Name)
	assert.Equal(t, model.StatusAwaitingContinuation, out.Context.Status)
}

func TestRunTurnClassifierExitLabel(t *testing.T) {
	runner := newTestRunner(t, &stubClassifier{label: model.LabelExit})

	state := model.NewSessionState("hmm maybe some other time", "s1")
	out, err := runner.RunTurn(context.Background(), state)
	require.NoError(t, err)

	assert.Equal(t, model.StatusExited, out.Context.Status)
	assert.Nil(t, out.Order)
}

func TestRunTurnClassifierFailureDegradesToExit(t *testing.T) {
	runner := newTestRunner(t, &stubClassifier{err: errors.New("upstream timeout")})

	state := model.NewSessionState("hmm maybe some other time", "s1")
	out, err := runner.RunTurn(context.Background(), state)
	require.NoError(t, err)

	assert.Equal(t, model.StatusExited, out.Context.Status)
}

func TestRunTurnWithoutClassifier(t *testing.T) {
	runner := newTestRunner(t, nil)

	// ambiguous input with no classifier available defaults to the search path
	state := model.NewSessionState("something for dinner maybe", "s1")
	out, err := runner.RunTurn(context.Background(), state)
	require.NoError(t, err)

	assert.True(t, out.WantsItem)
	assert.Equal(t, model.StatusAwaitingContinuation, out.Context.Status)
}
