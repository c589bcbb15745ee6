package prompts

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"
)

//go:embed template/classify_prompt.txt
var classifySystemPrompt string

// RenderClassifySystem renders the triage classification system prompt via the
// Eino prompt component. This triggers Prompt callbacks and returns the final
// system prompt string.
func RenderClassifySystem(ctx context.Context, allowedLabels []string, hints map[string]string) (string, error) {
	if len(allowedLabels) == 0 {
		return "", fmt.Errorf("allowed labels are empty")
	}

	tpl := prompt.FromMessages(
		schema.GoTemplate,
		schema.SystemMessage(classifySystemPrompt),
	)
	vars := map[string]any{
		"Labels": strings.Join(allowedLabels, ", "),
		"Hints":  hints,
	}
	msgs, err := tpl.Format(ctx, vars)
	if err != nil {
		return "", fmt.Errorf("classify prompt render: %w", err)
	}
	if len(msgs) == 0 || msgs[0] == nil {
		return "", fmt.Errorf("classify prompt render: empty result")
	}
	return msgs[0].Content, nil
}
