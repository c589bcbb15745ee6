package classify

import (
	"strings"
)

// maxLabelOutputLen guards against runaway model output; anything longer than
// this cannot be a bare label.
const maxLabelOutputLen = 256

// ParseLabel extracts a label from raw model output. The output is expected to
// be the bare label; minor decoration (whitespace, quotes, trailing
// punctuation) is tolerated. Anything that does not resolve to an allowed
// label becomes "none".
func ParseLabel(content string, allowedLabels []string) string {
	const fallback = "none"

	if len(content) > maxLabelOutputLen {
		return fallback
	}

	candidate := strings.ToLower(strings.TrimSpace(content))
	// keep only the first line
	if idx := strings.IndexByte(candidate, '\n'); idx >= 0 {
		candidate = strings.TrimSpace(candidate[:idx])
	}
	candidate = strings.Trim(candidate, `"'.,:;!`)

	for _, label := range allowedLabels {
		if candidate == strings.ToLower(label) {
			return label
		}
	}
	return fallback
}
