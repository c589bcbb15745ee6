package model

// ================ Config ================
type ConversationConfig struct {
	TTL      string `envconfig:"CONVERSATION_TTL" default:"15m"`
	MaxTurns int    `envconfig:"CONVERSATION_MAX_TURNS" default:"20"`
}

type ClassifierModelConfig struct {
	Model       string  `envconfig:"CLASSIFIER_MODEL" default:"gemini-2.5-flash-lite"`
	MaxTokens   int     `envconfig:"CLASSIFIER_MAX_TOKENS" default:"256"`
	Temperature float32 `envconfig:"CLASSIFIER_TEMPERATURE" default:"0.1"`
	Timeout     string  `envconfig:"CLASSIFIER_TIMEOUT" default:"30s"`
}

type GeneratorModelConfig struct {
	Model       string  `envconfig:"GENERATOR_MODEL" default:"gemini-2.5-flash"`
	MaxTokens   int     `envconfig:"GENERATOR_MAX_TOKENS" default:"1024"`
	Temperature float32 `envconfig:"GENERATOR_TEMPERATURE" default:"0.4"`
}

type GeneratorPromptConfig struct {
	BusinessType string `envconfig:"PROMPT_BUSINESS_TYPE" default:"pizza shop"`
	BusinessName string `envconfig:"PROMPT_BUSINESS_NAME" default:"Sliceline"`
}

type SearchConfig struct {
	MaxResults          int     `envconfig:"SEARCH_MAX_RESULTS" default:"3"`
	ConfidenceThreshold float64 `envconfig:"SEARCH_CONFIDENCE_THRESHOLD" default:"0.7"`
	DefaultProduct      string  `envconfig:"SEARCH_DEFAULT_PRODUCT" default:"margherita"`
}
