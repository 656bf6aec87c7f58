package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server      ServerConfig      `mapstructure:"server" validate:"required"`
	Database    DatabaseConfig    `mapstructure:"database" validate:"required"`
	Learner     LearnerConfig     `mapstructure:"learner" validate:"required"`
	Translation TranslationConfig `mapstructure:"translation" validate:"required"`
	LLM         LLMConfig         `mapstructure:"llm" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// LearnerConfig identifies the single learner this deployment serves.
// The system is deliberately single-tenant; the ID exists so the schema and
// stores stay keyed the same way a multi-learner deployment would be.
type LearnerConfig struct {
	ID string `mapstructure:"id" validate:"required,uuid"`
	// NativeLanguage is the language translations are rendered into.
	NativeLanguage string `mapstructure:"native_language" validate:"required"`
}

// TranslationConfig contains settings for the external translation provider.
type TranslationConfig struct {
	Endpoint string `mapstructure:"endpoint" validate:"required,url"`
	APIKey   string `mapstructure:"api_key"`
	// TimeoutSeconds bounds each provider call; on expiry the caller
	// degrades to the unavailable sentinel instead of failing the request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" validate:"required,gt=0"`
}

// LLMConfig contains all passage-generation related settings.
type LLMConfig struct {
	GeminiAPIKey string `mapstructure:"gemini_api_key" validate:"required"`
	ModelName    string `mapstructure:"model_name" validate:"required"`
	// PromptTemplatePath optionally overrides the compiled-in passage
	// prompt template.
	PromptTemplatePath string `mapstructure:"prompt_template_path"`
	MaxRetries         int    `mapstructure:"max_retries" validate:"gte=0"`
	RetryDelaySeconds  int    `mapstructure:"retry_delay_seconds" validate:"gte=0"`
}
