package catalog

import (
	"sort"

	"github.com/sliceline-core/server/internal/agent/model"
)

// popularNames is the fixed, historically ranked popularity list.
var popularNames = []string{"pepperoni", "margherita", "meat_lovers"}

// Recommender suggests products based on catalog similarity and popularity.
type Recommender struct {
	catalog *Service
}

// NewRecommender wires a recommender over the given catalog.
func NewRecommender(catalog *Service) *Recommender {
	return &Recommender{catalog: catalog}
}

// Similar returns up to count catalog products ranked by ingredient Jaccard
// similarity to the given product, excluding the product itself.
func (r *Recommender) Similar(product model.Product, count int) []model.Product {
	type scored struct {
		product    model.Product
		similarity float64
	}

	var candidates []scored
	for _, candidate := range r.catalog.All() {
		if candidate.Name == product.Name {
			continue
		}
		candidates = append(candidates, scored{
			product:    candidate,
			similarity: jaccard(product.Ingredients, candidate.Ingredients),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].similarity > candidates[j].similarity
	})

	if count > len(candidates) {
		count = len(candidates)
	}
	out := make([]model.Product, 0, count)
	for _, c := range candidates[:count] {
		out = append(out, c.product)
	}
	return out
}

// Popular resolves the fixed popularity list through the catalog, truncated to
// count.
func (r *Recommender) Popular(count int) []model.Product {
	var out []model.Product
	for _, name := range popularNames {
		if len(out) >= count {
			break
		}
		if p, ok := r.catalog.ByName(name); ok {
			out = append(out, p)
		}
	}
	return out
}

// jaccard computes intersection over union of two ingredient lists.
func jaccard(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}

	setA := make(map[string]struct{}, len(a))
	for _, v := range a {
		setA[v] = struct{}{}
	}
	setB := make(map[string]struct{}, len(b))
	for _, v := range b {
		setB[v] = struct{}{}
	}

	intersection := 0
	union := len(setA)
	for v := range setB {
		if _, ok := setA[v]; ok {
			intersection++
		} else {
			union++
		}
	}

	if union == 0 {
		return 0.0
	}
	return float64(intersection) / float64(union)
}
