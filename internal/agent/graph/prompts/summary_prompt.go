package prompts

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"

	"github.com/sliceline-core/server/internal/agent/model"
)

//go:embed template/summary_prompt.txt
var summarySystemPrompt string

// RenderSummarySystem renders the continuation reply system prompt and
// triggers prompt callbacks.
func RenderSummarySystem(ctx context.Context, config model.GeneratorPromptConfig) (string, error) {
	tpl := prompt.FromMessages(
		schema.GoTemplate,
		schema.SystemMessage(summarySystemPrompt),
	)
	vars := map[string]any{
		"BusinessType": config.BusinessType,
		"BusinessName": config.BusinessName,
	}
	msgs, err := tpl.Format(ctx, vars)
	if err != nil {
		return "", fmt.Errorf("summary prompt render: %w", err)
	}
	if len(msgs) == 0 || msgs[0] == nil {
		return "", fmt.Errorf("summary prompt render: empty result")
	}
	return msgs[0].Content, nil
}
