package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"     validate:"required"`
	Database   DatabaseConfig   `mapstructure:"database"   validate:"required"`
	Summarizer SummarizerConfig `mapstructure:"summarizer" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port                   int    `mapstructure:"port"                     validate:"required,gt=0,lt=65536"`
	LogLevel               string `mapstructure:"log_level"                validate:"required,oneof=debug info warn error"`
	ShutdownTimeoutSeconds int    `mapstructure:"shutdown_timeout_seconds" validate:"gt=0"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL                    string `mapstructure:"url"                       validate:"required,url"`
	MaxOpenConns           int    `mapstructure:"max_open_conns"            validate:"gt=0"`
	MaxIdleConns           int    `mapstructure:"max_idle_conns"            validate:"gte=0"`
	ConnMaxLifetimeMinutes int    `mapstructure:"conn_max_lifetime_minutes" validate:"gt=0"`
}

// SummarizerConfig contains the settings for the external summarization service.
type SummarizerConfig struct {
	// Provider selects the backend: "gemini" or "openai" (any OpenAI-compatible endpoint).
	Provider  string `mapstructure:"provider"   validate:"required,oneof=gemini openai"`
	APIKey    string `mapstructure:"api_key"    validate:"required"`
	ModelName string `mapstructure:"model_name" validate:"required"`
	// BaseURL overrides the provider's default endpoint.
	BaseURL string `mapstructure:"base_url" validate:"omitempty,url"`
	// TimeoutSeconds bounds a single summarization call. The call is abandoned
	// once it elapses.
	TimeoutSeconds  int `mapstructure:"timeout_seconds"   validate:"gt=0"`
	MaxSummaryChars int `mapstructure:"max_summary_chars" validate:"gte=20"`
	// PromptTemplatePath optionally replaces the built-in prompt template.
	PromptTemplatePath string `mapstructure:"prompt_template_path"`
}
