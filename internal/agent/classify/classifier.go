package classify

import (
	"context"
	"time"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/sliceline-core/server/internal/agent/graph/prompts"
	"github.com/sliceline-core/server/internal/agent/model"
	errx "github.com/sliceline-core/server/internal/core/error"
	logx "github.com/sliceline-core/server/pkg/logger"
)

// DefaultTimeout bounds every model call when the config leaves it unset.
const DefaultTimeout = 30 * time.Second

// ModelClassifier implements model.Classifier over Eino chat models. Both
// calls are blocking, bounded by the configured timeout; on timeout or error
// Classify returns the fallback label rather than failing the turn.
type ModelClassifier struct {
	classifier einomodel.BaseChatModel
	generator  einomodel.BaseChatModel
	promptCfg  model.GeneratorPromptConfig
	timeout    time.Duration
}

// NewModelClassifier wires a classifier over the given chat models.
func NewModelClassifier(classifier, generator einomodel.BaseChatModel, promptCfg model.GeneratorPromptConfig, timeout time.Duration) *ModelClassifier {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &ModelClassifier{
		classifier: classifier,
		generator:  generator,
		promptCfg:  promptCfg,
		timeout:    timeout,
	}
}

// Classify maps free text onto one of the allowed labels. Unparseable model
// output degrades to model.LabelNone without an error; transport failures and
// timeouts return LabelNone with a classification error for the caller to log.
func (c *ModelClassifier) Classify(ctx context.Context, text string, allowedLabels []string, hints map[string]string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	system, err := prompts.RenderClassifySystem(ctx, allowedLabels, hints)
	if err != nil {
		return model.LabelNone, errx.NewClassification(err)
	}

	out, err := c.classifier.Generate(ctx, []*schema.Message{
		schema.SystemMessage(system),
		schema.UserMessage(text),
	})
	if err != nil {
		logx.Warn().Err(err).Msg("classifier call failed")
		return model.LabelNone, errx.NewClassification(err)
	}
	if out == nil {
		return model.LabelNone, nil
	}

	label := ParseLabel(out.Content, allowedLabels)
	logx.Debug().Str("label", label).Msg("classification completed")
	return label, nil
}

// Generate produces a free-form reply for the given prompt context.
func (c *ModelClassifier) Generate(ctx context.Context, promptContext string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	system, err := prompts.RenderSummarySystem(ctx, c.promptCfg)
	if err != nil {
		return "", errx.NewClassification(err)
	}

	out, err := c.generator.Generate(ctx, []*schema.Message{
		schema.SystemMessage(system),
		schema.UserMessage(promptContext),
	})
	if err != nil {
		logx.Warn().Err(err).Msg("generator call failed")
		return "", errx.NewClassification(err)
	}
	if out == nil {
		return "", nil
	}
	return out.Content, nil
}

var _ model.Classifier = (*ModelClassifier)(nil)
