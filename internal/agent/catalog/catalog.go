// Package catalog holds the fixed product catalog and the multi-strategy
// search over it. The catalog is built once at construction and is read-only
// thereafter, safe for unsynchronized concurrent reads.
package catalog

import (
	"strings"

	"github.com/sliceline-core/server/internal/agent/model"
)

// Service owns the catalog and a precomputed ingredient index.
type Service struct {
	products     []model.Product          // insertion order, ranking tie-breaker
	byKey        map[string]model.Product // normalized name -> product
	byIngredient map[string][]string      // ingredient tag -> product keys
}

// NewService builds the catalog with the fixed product set.
func NewService() *Service {
	s := &Service{
		byKey:        make(map[string]model.Product),
		byIngredient: make(map[string][]string),
	}
	for _, p := range defaultProducts() {
		s.add(p)
	}
	return s
}

func (s *Service) add(p model.Product) {
	if p.Size == "" {
		p.Size = model.DefaultSize
	}
	s.products = append(s.products, p)
	s.byKey[p.Key()] = p
	for _, ing := range p.Ingredients {
		s.byIngredient[ing] = append(s.byIngredient[ing], p.Key())
	}
}

// All returns every catalog entry in insertion order.
func (s *Service) All() []model.Product {
	out := make([]model.Product, len(s.products))
	copy(out, s.products)
	return out
}

// ByName fetches one product by its normalized name key (lowercase, spaces
// replaced with underscores).
func (s *Service) ByName(name string) (model.Product, bool) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
	p, ok := s.byKey[key]
	return p, ok
}

func defaultProducts() []model.Product {
	return []model.Product{
		{
			Name:        "margherita",
			Description: "Classic Margherita with fresh basil",
			Ingredients: []string{"tomato", "mozzarella", "basil", "olive oil"},
			Price:       12.99,
		},
		{
			Name:        "pepperoni",
			Description: "Classic Pepperoni with spicy pepperoni slices",
			Ingredients: []string{"tomato", "mozzarella", "pepperoni"},
			Price:       14.99,
		},
		{
			Name:        "hawaiian",
			Description: "Hawaiian with ham and pineapple",
			Ingredients: []string{"tomato", "mozzarella", "ham", "pineapple"},
			Price:       15.99,
		},
		{
			Name:        "veggie supreme",
			Description: "Veggie Supreme with fresh vegetables",
			Ingredients: []string{"tomato", "mozzarella", "peppers", "mushrooms", "onions", "olives"},
			Price:       13.99,
		},
		{
			Name:        "meat lovers",
			Description: "Meat Lovers with multiple meat toppings",
			Ingredients: []string{"tomato", "mozzarella", "pepperoni", "sausage", "bacon", "ham"},
			Price:       17.99,
		},
		{
			Name:        "bbq chicken",
			Description: "BBQ Chicken with tangy BBQ sauce",
			Ingredients: []string{"bbq sauce", "mozzarella", "chicken", "onions", "cilantro"},
			Price:       16.99,
		},
	}
}
