// Package classify implements the external Classifier/Generator boundary on
// top of Eino chat models.
package classify

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/gemini"
	"google.golang.org/genai"

	"github.com/sliceline-core/server/internal/agent/model"
	logx "github.com/sliceline-core/server/pkg/logger"
)

// ChatModelConfig holds the configuration for chat model creation.
type ChatModelConfig struct {
	APIKey        string
	BaseURL       string
	ClassifierCfg *model.ClassifierModelConfig
	GeneratorCfg  *model.GeneratorModelConfig
}

// ChatModels holds the classifier and generator chat models.
type ChatModels struct {
	Classifier          *gemini.ChatModel
	Generator           *gemini.ChatModel
	ClassifierModelName string
	GeneratorModelName  string
}

// NewChatModels creates both chat models with the given configuration.
func NewChatModels(ctx context.Context, config ChatModelConfig) (*ChatModels, error) {
	clientCfg := &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if config.BaseURL != "" {
		clientCfg.HTTPOptions.BaseURL = config.BaseURL
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		logx.Error().Err(err).Msg("Error creating Gemini client")
		return nil, fmt.Errorf("error creating Gemini client: %w", err)
	}

	classifierModel, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client:      client,
		Model:       config.ClassifierCfg.Model,
		Temperature: &config.ClassifierCfg.Temperature,
		MaxTokens:   &config.ClassifierCfg.MaxTokens,
	})
	if err != nil {
		logx.Error().Err(err).Msg("Error creating classifier model")
		return nil, fmt.Errorf("error creating classifier model: %w", err)
	}

	generatorModel, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client:      client,
		Model:       config.GeneratorCfg.Model,
		Temperature: &config.GeneratorCfg.Temperature,
		MaxTokens:   &config.GeneratorCfg.MaxTokens,
	})
	if err != nil {
		logx.Error().Err(err).Msg("Error creating generator model")
		return nil, fmt.Errorf("error creating generator model: %w", err)
	}

	return &ChatModels{
		Classifier:          classifierModel,
		Generator:           generatorModel,
		ClassifierModelName: config.ClassifierCfg.Model,
		GeneratorModelName:  config.GeneratorCfg.Model,
	}, nil
}
