package order

import (
	"fmt"
	"strings"

	"github.com/sliceline-core/server/internal/agent/model"
)

const (
	valueThreshold        = 20.0
	discountLineCount     = 2
	discountRate          = 0.1
	freeDeliveryThreshold = 30.0
)

var meatIngredients = []string{"pepperoni", "sausage", "bacon", "ham"}
var veggieIngredients = []string{"peppers", "mushrooms", "onions"}

// Savings flags discount and delivery opportunities for an order.
type Savings struct {
	PotentialSavings float64  `json:"potential_savings"`
	Suggestions      []string `json:"suggestions"`
}

// SuggestAddOns produces side-effect-free upsell hints based on the order's
// current content.
func SuggestAddOns(o *model.Order) []string {
	var suggestions []string
	if o == nil || len(o.Lines) == 0 {
		return suggestions
	}

	hasMeat := false
	hasVeggie := false
	for _, line := range o.Lines {
		name := strings.ToLower(line.Product.Name)
		if strings.Contains(name, "meat") || containsAny(line.Product.Ingredients, meatIngredients) {
			hasMeat = true
		}
		if strings.Contains(name, "veggie") || containsAny(line.Product.Ingredients, veggieIngredients) {
			hasVeggie = true
		}
	}

	if hasMeat && !hasVeggie {
		suggestions = append(suggestions, "Add a veggie pizza for balance")
	}
	if len(o.Lines) == 1 {
		suggestions = append(suggestions, "Consider adding a side or drink")
	}
	if o.TotalAmount < valueThreshold {
		suggestions = append(suggestions, "Add another pizza for better value")
	}

	return suggestions
}

// SavingsOpportunities computes potential deals for the order.
func SavingsOpportunities(o *model.Order) Savings {
	s := Savings{}
	if o == nil {
		return s
	}

	if len(o.Lines) >= discountLineCount {
		s.Suggestions = append(s.Suggestions, fmt.Sprintf("%d+ pizzas qualify for %d%% discount", discountLineCount, int(discountRate*100)))
		s.PotentialSavings = o.TotalAmount * discountRate
	}
	if o.TotalAmount >= freeDeliveryThreshold {
		s.Suggestions = append(s.Suggestions, fmt.Sprintf("Orders over $%.0f get free delivery", freeDeliveryThreshold))
	}

	return s
}

func containsAny(haystack, needles []string) bool {
	for _, h := range haystack {
		for _, n := range needles {
			if h == n {
				return true
			}
		}
	}
	return false
}
