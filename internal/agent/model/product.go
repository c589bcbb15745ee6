package model

import (
	"fmt"
	"strings"
)

// DefaultSize is applied when a catalog entry does not specify a size.
const DefaultSize = "medium"

// Product is an immutable catalog entry. Identity is structural: two products
// with the same name, ingredients, price and size are interchangeable.
type Product struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Ingredients []string `json:"ingredients"`
	Price       float64  `json:"price"`
	Size        string   `json:"size"`
}

// Key returns the normalized catalog key for the product (lowercase, spaces
// replaced with underscores). Used for catalog lookup and score accumulation.
func (p Product) Key() string {
	return strings.ReplaceAll(strings.ToLower(p.Name), " ", "_")
}

// NormalizedName returns the space-normalized lowercase name, the form matched
// against raw user queries.
func (p Product) NormalizedName() string {
	return strings.ReplaceAll(strings.ToLower(p.Name), "_", " ")
}

// Equal reports structural equality.
func (p Product) Equal(other Product) bool {
	if p.Name != other.Name || p.Price != other.Price || p.Size != other.Size {
		return false
	}
	if len(p.Ingredients) != len(other.Ingredients) {
		return false
	}
	for i := range p.Ingredients {
		if p.Ingredients[i] != other.Ingredients[i] {
			return false
		}
	}
	return true
}

func (p Product) String() string {
	return fmt.Sprintf("%s (%s): %s - $%.2f", TitleCase(p.Name), p.Size, p.Description, p.Price)
}

// TitleCase uppercases the first letter of every space-separated word.
func TitleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
