package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductKeyAndName(t *testing.T) {
	p := Product{Name: "meat lovers"}
	assert.Equal(t, "meat_lovers", p.Key())
	assert.Equal(t, "meat lovers", p.NormalizedName())

	p = Product{Name: "Meat_Lovers"}
	assert.Equal(t, "meat_lovers", p.Key())
	assert.Equal(t, "meat lovers", p.NormalizedName())
}

func TestProductEqual(t *testing.T) {
	a := Product{Name: "pepperoni", Ingredients: []string{"tomato", "pepperoni"}, Price: 14.99, Size: DefaultSize}
	b := Product{Name: "pepperoni", Ingredients: []string{"tomato", "pepperoni"}, Price: 14.99, Size: DefaultSize}
	assert.True(t, a.Equal(b))

	b.Price = 15.99
	assert.False(t, a.Equal(b))

	b = a
	b.Ingredients = []string{"pepperoni", "tomato"}
	assert.False(t, a.Equal(b), "ingredient order is part of identity")
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Veggie Supreme", TitleCase("veggie supreme"))
	assert.Equal(t, "Pepperoni", TitleCase("pepperoni"))
	assert.Equal(t, "", TitleCase(""))
}

func TestOrderTotalInvariant(t *testing.T) {
	o := NewOrder()
	require.Equal(t, OrderPending, o.Status)
	assert.Zero(t, o.TotalAmount)

	o.AddLine(OrderLine{Product: Product{Name: "pepperoni", Price: 14.99}, Quantity: 2})
	assert.InDelta(t, 29.98, o.TotalAmount, 0.001)

	o.Lines[0].Quantity = 1
	o.RecalcTotal()
	assert.InDelta(t, 14.99, o.TotalAmount, 0.001)
}

func TestOrderStatusTerminal(t *testing.T) {
	assert.True(t, OrderCompleted.Terminal())
	assert.True(t, OrderCancelled.Terminal())
	assert.False(t, OrderPending.Terminal())
	assert.False(t, OrderProcessing.Terminal())
}

func TestConversationContextTurnInvariant(t *testing.T) {
	c := NewConversationContext()
	assert.Equal(t, StatusInitial, c.Status)

	c.AddTurn("hello", "user")
	c.AddTurn("routing", "triage")

	assert.Equal(t, 2, c.TurnCount)
	assert.Len(t, c.History, 2)
	assert.Equal(t, "triage", c.LastAgent)
	assert.Equal(t, "hello", c.History[0].Content)
}

func TestSessionStateTransitions(t *testing.T) {
	s := NewSessionState("I want a pizza", "s1")
	assert.Equal(t, ActionTriage, s.NextAction)

	s.TransitionToSearch("I want a pizza")
	assert.True(t, s.WantsItem)
	assert.Equal(t, StatusProcessingOrder, s.Context.Status)
	assert.Equal(t, ActionSearch, s.NextAction)

	s.TransitionToContinuation()
	assert.Equal(t, StatusAwaitingContinuation, s.Context.Status)
	assert.True(t, s.RequiresUserInput, "awaiting continuation always pauses for input")

	s.TransitionToExit("done")
	assert.False(t, s.WantsItem)
	assert.Equal(t, "done", s.ExitReason)
	assert.Equal(t, StatusExited, s.Context.Status)
	assert.False(t, s.RequiresUserInput)
}

func TestSessionStateErrorTracking(t *testing.T) {
	s := NewSessionState("hello", "s1")

	s.AddError("first")
	s.AddError("second")
	assert.Equal(t, []string{"first", "second"}, s.ValidationErrors)
	assert.Equal(t, "second", s.LastError)
	assert.Equal(t, 2, s.RetryCount)

	s.ClearErrors()
	assert.Empty(t, s.ValidationErrors)
	assert.Empty(t, s.LastError)
	assert.Zero(t, s.RetryCount)
}

func TestResetForNewOrderPreservesOrder(t *testing.T) {
	s := NewSessionState("pepperoni", "s1")
	s.Context.AddTurn("pepperoni", "user")
	s.TransitionToSearch("pepperoni")
	s.Order = NewOrder()
	s.Order.AddLine(OrderLine{Product: Product{Name: "pepperoni", Price: 14.99}, Quantity: 1})
	s.Selected = &Product{Name: "pepperoni"}
	s.FoundItem = "Pepperoni"
	s.AddError("transient")

	s.ResetForNewOrder()

	assert.Empty(t, s.RequestText)
	assert.Empty(t, s.FoundItem)
	assert.Nil(t, s.Selected)
	assert.Nil(t, s.Matches)
	assert.Empty(t, s.ValidationErrors)
	require.NotNil(t, s.Order)
	assert.Len(t, s.Order.Lines, 1)
	assert.Equal(t, 1, s.Context.TurnCount, "conversation history survives the reset")
}
