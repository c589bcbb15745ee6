package catalog

import (
	"sort"
	"strings"

	"github.com/sliceline-core/server/internal/agent/model"
	logx "github.com/sliceline-core/server/pkg/logger"
)

const (
	directMatchScore     = 1.0
	ingredientMatchScore = 0.7
	fuzzyMatchScore      = 0.5

	defaultMaxResults = 5
	minTermLength     = 3
)

// stopwords dropped during term extraction: articles, politeness words and the
// generic ordering vocabulary that carries no product signal.
var stopwords = map[string]struct{}{
	"i": {}, "want": {}, "like": {}, "get": {}, "order": {}, "pizza": {},
	"please": {}, "can": {}, "have": {}, "a": {}, "an": {}, "the": {},
}

// Result carries the ranked matches for a query, best first.
type Result struct {
	Matches     []model.Product
	Confidence  float64
	SearchTerms []string
}

// Search runs term extraction and the three scoring strategies over the
// catalog, returning up to maxResults products ranked by accumulated score.
// An empty result with confidence 0 is a legitimate outcome; substituting a
// default product is the caller's responsibility.
func (s *Service) Search(query string, maxResults int) Result {
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	queryLower := strings.ToLower(query)
	terms := extractTerms(queryLower)

	// Scores accumulate per product key across all three strategies.
	scores := make(map[string]float64)
	s.scoreDirectMatches(terms, scores)
	s.scoreIngredientMatches(terms, scores)
	s.scoreFuzzyMatches(terms, scores)

	matches := s.rank(scores)
	if len(matches) > maxResults {
		matches = matches[:maxResults]
	}

	confidence := calculateConfidence(queryLower, matches)

	logx.Debug().
		Str("query", query).
		Strs("terms", terms).
		Int("matches", len(matches)).
		Float64("confidence", confidence).
		Msg("catalog search completed")

	return Result{
		Matches:     matches,
		Confidence:  confidence,
		SearchTerms: terms,
	}
}

// extractTerms lowercases, splits on whitespace and drops stopwords and short
// tokens.
func extractTerms(query string) []string {
	var terms []string
	for _, tok := range strings.Fields(query) {
		tok = strings.TrimSpace(tok)
		if _, skip := stopwords[tok]; skip {
			continue
		}
		if len(tok) < minTermLength {
			continue
		}
		terms = append(terms, tok)
	}
	return terms
}

// scoreDirectMatches awards the full score when a term appears in the
// product's space-normalized name, or the full name appears verbatim in the
// joined term list. Additive across terms, not capped.
func (s *Service) scoreDirectMatches(terms []string, scores map[string]float64) {
	joined := strings.Join(terms, " ")
	for _, term := range terms {
		for _, p := range s.products {
			if strings.Contains(p.NormalizedName(), term) || strings.Contains(joined, p.NormalizedName()) {
				scores[p.Key()] += directMatchScore
			}
		}
	}
}

// scoreIngredientMatches awards a partial score to every product carrying an
// ingredient tag that overlaps a term in either direction. A product
// accumulates once per matching term and ingredient pair.
func (s *Service) scoreIngredientMatches(terms []string, scores map[string]float64) {
	for _, term := range terms {
		for ingredient, keys := range s.byIngredient {
			if strings.Contains(ingredient, term) || strings.Contains(term, ingredient) {
				for _, key := range keys {
					scores[key] += ingredientMatchScore
				}
			}
		}
	}
}

// scoreFuzzyMatches awards a low score for substring hits on name or
// description.
func (s *Service) scoreFuzzyMatches(terms []string, scores map[string]float64) {
	for _, term := range terms {
		if len(term) < minTermLength {
			continue
		}
		for _, p := range s.products {
			if strings.Contains(p.NormalizedName(), term) || strings.Contains(strings.ToLower(p.Description), term) {
				scores[p.Key()] += fuzzyMatchScore
			}
		}
	}
}

// rank sorts scored products descending, ties broken by catalog insertion
// order.
func (s *Service) rank(scores map[string]float64) []model.Product {
	var matched []model.Product
	for _, p := range s.products {
		if scores[p.Key()] > 0 {
			matched = append(matched, p)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return scores[matched[i].Key()] > scores[matched[j].Key()]
	})
	return matched
}

// calculateConfidence derives the heuristic [0,1] confidence for the ranked
// matches against the raw lowercased query.
func calculateConfidence(query string, matches []model.Product) float64 {
	if len(matches) == 0 {
		return 0.0
	}

	confidence := 0.6

	for _, p := range matches {
		if strings.Contains(query, p.NormalizedName()) {
			confidence += 0.3
			break
		}
	}

	if len(matches) > 3 {
		confidence -= 0.2
	}

	if confidence > 1.0 {
		confidence = 1.0
	}
	if confidence < 0.0 {
		confidence = 0.0
	}
	return confidence
}
