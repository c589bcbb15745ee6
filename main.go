package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/sliceline-core/server/internal/agent"
	"github.com/sliceline-core/server/internal/agent/catalog"
	"github.com/sliceline-core/server/internal/agent/classify"
	"github.com/sliceline-core/server/internal/agent/graph"
	"github.com/sliceline-core/server/internal/agent/model"
	"github.com/sliceline-core/server/internal/agent/order"
	"github.com/sliceline-core/server/internal/agent/repo"
	"github.com/sliceline-core/server/internal/agent/session"
	"github.com/sliceline-core/server/internal/core"
	logx "github.com/sliceline-core/server/pkg/logger"
	pkgredis "github.com/sliceline-core/server/pkg/redis"
)

// AppConfig defines all configurable parameters for the ordering engine,
// sourced from environment variables (loaded from .env for local runs).
type AppConfig struct {
	Environment string `envconfig:"ENVIRONMENT" default:"development"`

	// Transcript storage. With an empty REDIS_URL transcripts stay in memory.
	RedisURL          string `envconfig:"REDIS_URL"`
	RedisReadTimeout  int    `envconfig:"REDIS_READ_TIMEOUT" default:"3"`
	RedisWriteTimeout int    `envconfig:"REDIS_WRITE_TIMEOUT" default:"3"`
	RedisDialTimeout  int    `envconfig:"REDIS_DIAL_TIMEOUT" default:"5"`

	// LLM provider. With an empty key the engine runs on keyword heuristics only.
	APIKey  string `envconfig:"GEMINI_API_KEY"`
	BaseURL string `envconfig:"GEMINI_BASE_URL"`

	// Engine configs
	Classifier   model.ClassifierModelConfig
	Generator    model.GeneratorModelConfig
	Prompt       model.GeneratorPromptConfig
	Conversation model.ConversationConfig
	Search       model.SearchConfig
}

func main() {
	ctx := context.Background()

	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("Failed to process environment config: %v", err)
	}

	logx.Init(logx.LoggerOpts{Environment: core.ParseEnvironment(cfg.Environment)})

	turns := buildTurnRepository(cfg)
	store := session.NewStore(turns, cfg.Conversation)

	classifier := buildClassifier(ctx, cfg)

	cat := catalog.NewService()
	runner, err := graph.BuildWorkflow(ctx, &graph.Config{
		Catalog:     cat,
		Recommender: catalog.NewRecommender(cat),
		Orders:      order.NewService(),
		Classifier:  classifier,
		Search:      cfg.Search,
	})
	if err != nil {
		log.Fatalf("Failed to build workflow: %v", err)
	}

	engine := agent.NewEngine(store, runner)

	runScenarios(ctx, engine)

	fmt.Print("\nWould you like to try the interactive session? (y/n): ")
	reader := bufio.NewReader(os.Stdin)
	if choice, _ := reader.ReadString('\n'); strings.HasPrefix(strings.ToLower(strings.TrimSpace(choice)), "y") {
		interactiveSession(ctx, engine, reader)
	}
}

func buildTurnRepository(cfg AppConfig) model.TurnRepository {
	if cfg.RedisURL == "" {
		return repo.NewMemoryTurnRepository()
	}

	ttl, err := time.ParseDuration(cfg.Conversation.TTL)
	if err != nil {
		log.Fatalf("Invalid CONVERSATION_TTL '%s': %v", cfg.Conversation.TTL, err)
	}

	redisCfg := pkgredis.Config{
		URL:          cfg.RedisURL,
		ReadTimeout:  cfg.RedisReadTimeout,
		WriteTimeout: cfg.RedisWriteTimeout,
		DialTimeout:  cfg.RedisDialTimeout,
	}
	rdb, err := redisCfg.New()
	if err != nil {
		log.Fatalf("Failed to initialise Redis client: %v", err)
	}
	logx.Info().Msg("Connected to Redis, transcripts are durable")
	return repo.NewRedisTurnRepository(rdb, ttl)
}

func buildClassifier(ctx context.Context, cfg AppConfig) model.Classifier {
	if cfg.APIKey == "" {
		logx.Warn().Msg("GEMINI_API_KEY not set, triage runs on keyword heuristics only")
		return nil
	}

	timeout, err := time.ParseDuration(cfg.Classifier.Timeout)
	if err != nil {
		log.Fatalf("Invalid CLASSIFIER_TIMEOUT '%s': %v", cfg.Classifier.Timeout, err)
	}

	cms, err := classify.NewChatModels(ctx, classify.ChatModelConfig{
		APIKey:        cfg.APIKey,
		BaseURL:       cfg.BaseURL,
		ClassifierCfg: &cfg.Classifier,
		GeneratorCfg:  &cfg.Generator,
	})
	if err != nil {
		log.Fatalf("Failed to create chat models: %v", err)
	}

	return classify.NewModelClassifier(cms.Classifier, cms.Generator, cfg.Prompt, timeout)
}

func runScenarios(ctx context.Context, engine *agent.Engine) {
	scenarios := []struct {
		description string
		input       string
	}{
		{
			description: "User wants pepperoni pizza",
			input:       "I want to order a pepperoni pizza",
		},
		{
			description: "User doesn't want anything",
			input:       "No thanks, I don't want anything",
		},
		{
			description: "User wants something with vegetables",
			input:       "I'm hungry and want something with vegetables",
		},
		{
			description: "User asks for meat lovers",
			input:       "Give me a meat lovers pizza",
		},
		{
			description: "Ambiguous request",
			input:       "I'm really hungry right now",
		},
	}

	for i, sc := range scenarios {
		fmt.Printf("\n--- Scenario %d: %s ---\n", i+1, sc.description)
		fmt.Printf("Input: %s\n", sc.input)

		sessionID, state, err := engine.StartSession(ctx, sc.input)
		if err != nil {
			fmt.Printf("Scenario failed: %v\n", err)
			continue
		}

		printTurnResult(state)

		if summary, ok := engine.Summarize(ctx, sessionID); ok {
			fmt.Printf("Final status: %s, turns: %d\n", summary.Status, summary.TurnCount)
		}
		engine.EndSession(ctx, sessionID)
	}
}

func interactiveSession(ctx context.Context, engine *agent.Engine, reader *bufio.Reader) {
	fmt.Println("\nType 'quit' to exit the session")
	fmt.Print("\nWhat would you like to order today? ")

	initial, _ := reader.ReadString('\n')
	initial = strings.TrimSpace(initial)
	if initial == "" || strings.EqualFold(initial, "quit") {
		return
	}

	sessionID, state, err := engine.StartSession(ctx, initial)
	if err != nil {
		fmt.Printf("Session error: %v\n", err)
		return
	}
	defer engine.EndSession(ctx, sessionID)

	printTurnResult(state)

	for engine.ShouldContinue(ctx, sessionID) {
		if state == nil || !state.RequiresUserInput {
			break
		}

		fmt.Print("\nYour response: ")
		next, _ := reader.ReadString('\n')
		next = strings.TrimSpace(next)
		if next == "" || strings.EqualFold(next, "quit") {
			break
		}

		state, err = engine.SubmitInput(ctx, sessionID, next)
		if err != nil {
			fmt.Printf("Session error: %v\n", err)
			break
		}
		printTurnResult(state)
	}

	if summary, ok := engine.Summarize(ctx, sessionID); ok {
		fmt.Printf("\n--- Session Summary ---\n")
		fmt.Printf("Status: %s, turns: %d\n", summary.Status, summary.TurnCount)
		if summary.HasOrder {
			fmt.Println("An order was created during this session")
		}
	}
	fmt.Println("Session ended. Thanks for ordering!")
}

func printTurnResult(state *model.SessionState) {
	if state == nil {
		return
	}
	if state.FoundItem != "" {
		fmt.Printf("Added to order: %s\n", state.FoundItem)
	}
	if state.Order != nil {
		fmt.Printf("Order total: $%.2f (%d item(s))\n", state.Order.TotalAmount, len(state.Order.Lines))
	}
	if state.AssistantReply != "" {
		fmt.Printf("Assistant: %s\n", state.AssistantReply)
	}
	if state.ExitReason != "" {
		fmt.Printf("Exit reason: %s\n", state.ExitReason)
	}
	if state.LastError != "" {
		fmt.Printf("Note: %s\n", state.LastError)
	}
}
