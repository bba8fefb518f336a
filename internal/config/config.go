package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server ServerConfig `mapstructure:"server" validate:"required"`
	LLM    LLMConfig    `mapstructure:"llm" validate:"required"`
	Batch  BatchConfig  `mapstructure:"batch" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port      int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel  string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	StaticDir string `mapstructure:"static_dir" validate:"required"`
}

// LLMConfig contains the completion provider settings. The credential is
// checked by the selected provider's constructor during startup wiring, not
// here, so the unselected provider's key may stay unset.
type LLMConfig struct {
	Provider     string        `mapstructure:"provider" validate:"required,oneof=openai gemini"`
	Model        string        `mapstructure:"model" validate:"required"`
	OpenAIAPIKey string        `mapstructure:"openai_api_key"`
	GeminiAPIKey string        `mapstructure:"gemini_api_key"`
	MaxAttempts  int           `mapstructure:"max_attempts" validate:"required,gte=1"`
	RetryDelay   time.Duration `mapstructure:"retry_delay" validate:"gte=0"`
	Timeout      time.Duration `mapstructure:"timeout" validate:"required,gt=0"`
}

// BatchConfig contains settings for batch description runs.
type BatchConfig struct {
	Pacing    time.Duration `mapstructure:"pacing" validate:"gte=0"`
	Workers   int           `mapstructure:"workers" validate:"required,gte=1"`
	QueueSize int           `mapstructure:"queue_size" validate:"required,gte=1"`
}
