package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads configuration from environment variables (and a .env file when
// present) and returns a validated Config. Environment variables use the
// names the original deployment documented (OPENAI_MODEL, OPENAI_API_KEY,
// PORT, ...); every setting has a default except the provider credentials.
func Load() (*Config, error) {
	// .env is optional; real environments set variables directly.
	_ = godotenv.Load()

	v := viper.New()

	v.SetDefault("server.port", 5000)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.static_dir", "static")
	v.SetDefault("llm.provider", "openai")
	v.SetDefault("llm.model", "gpt-4o-mini")
	v.SetDefault("llm.max_attempts", 3)
	v.SetDefault("llm.retry_delay", "2s")
	v.SetDefault("llm.timeout", "120s")
	v.SetDefault("batch.pacing", "1.5s")
	v.SetDefault("batch.workers", 2)
	v.SetDefault("batch.queue_size", 16)

	bindings := map[string]string{
		"server.port":        "PORT",
		"server.log_level":   "LOG_LEVEL",
		"server.static_dir":  "STATIC_DIR",
		"llm.provider":       "LLM_PROVIDER",
		"llm.model":          "OPENAI_MODEL",
		"llm.openai_api_key": "OPENAI_API_KEY",
		"llm.gemini_api_key": "GEMINI_API_KEY",
		"llm.max_attempts":   "LLM_MAX_ATTEMPTS",
		"llm.retry_delay":    "LLM_RETRY_DELAY",
		"llm.timeout":        "LLM_TIMEOUT",
		"batch.pacing":       "BATCH_PACING",
		"batch.workers":      "BATCH_WORKERS",
		"batch.queue_size":   "BATCH_QUEUE_SIZE",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	cfg.LLM.Provider = strings.ToLower(strings.TrimSpace(cfg.LLM.Provider))
	cfg.LLM.OpenAIAPIKey = strings.TrimSpace(cfg.LLM.OpenAIAPIKey)
	cfg.LLM.GeminiAPIKey = strings.TrimSpace(cfg.LLM.GeminiAPIKey)

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}
