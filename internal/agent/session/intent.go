package session

import (
	"regexp"
	"strings"

	"github.com/sliceline-core/server/internal/agent/model"
)

// Keyword sets for continuation-intent detection. End signals always take
// precedence over continuation signals.
var (
	endKeywords      = []string{"no", "done", "finish", "complete", "stop", "thanks"}
	continueKeywords = []string{"another", "more", "yes", "continue", "again", "next", "add", "also"}
	productKeywords  = []string{"pizza", "margherita", "pepperoni", "hawaiian", "veggie", "meat"}
)

var (
	endPatterns      = compileWordPatterns(endKeywords)
	continuePatterns = compileWordPatterns(continueKeywords)
)

func compileWordPatterns(keywords []string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(keywords))
	for _, kw := range keywords {
		patterns = append(patterns, regexp.MustCompile(`\b`+regexp.QuoteMeta(kw)+`\b`))
	}
	return patterns
}

// DetectContinuation reports whether the user wants to keep ordering.
// Word-boundary end keywords (and the literal "that's all") short-circuit to
// false; continuation keywords short-circuit to true; otherwise the decision
// falls back to whether the text mentions a known product.
func DetectContinuation(text string, ctx *model.ConversationContext) bool {
	input := strings.ToLower(text)

	for _, p := range endPatterns {
		if p.MatchString(input) {
			return false
		}
	}
	if strings.Contains(input, "that's all") {
		return false
	}

	for _, p := range continuePatterns {
		if p.MatchString(input) {
			return true
		}
	}

	if ctx != nil && ctx.Status == model.StatusAwaitingContinuation {
		return mentionsProduct(input)
	}

	return mentionsProduct(input)
}

func mentionsProduct(input string) bool {
	for _, kw := range productKeywords {
		if strings.Contains(input, kw) {
			return true
		}
	}
	return false
}
