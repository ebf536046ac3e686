package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"    validate:"required"`
	Workspace WorkspaceConfig `mapstructure:"workspace" validate:"required"`
	Task      TaskConfig      `mapstructure:"task"      validate:"required"`
	LLM       LLMConfig       `mapstructure:"llm"       validate:"required"`
	Compiler  CompilerConfig  `mapstructure:"compiler"  validate:"required"`
	Scraper   ScraperConfig   `mapstructure:"scraper"`
}

// ServerConfig contains all HTTP-server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// WorkspaceConfig locates the working directory that holds all document
// artifacts (tex sources, compiled PDFs, link cache, template preference).
// The filesystem is the persistence layer; there is no database.
type WorkspaceConfig struct {
	Dir string `mapstructure:"dir" validate:"required"`
}

// TaskConfig tunes the background task runner.
type TaskConfig struct {
	WorkerCount int `mapstructure:"worker_count" validate:"required,gt=0"`
	QueueSize   int `mapstructure:"queue_size"   validate:"required,gt=0"`
}

// LLMConfig contains all LLM integration related settings.
type LLMConfig struct {
	GeminiAPIKey      string `mapstructure:"gemini_api_key"`
	ModelName         string `mapstructure:"model_name"          validate:"required"`
	MaxRetries        int    `mapstructure:"max_retries"`
	RetryDelaySeconds int    `mapstructure:"retry_delay_seconds"`
}

// CompilerConfig controls the LaTeX-to-PDF compilation shell-out.
type CompilerConfig struct {
	Binary         string `mapstructure:"binary"          validate:"required"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"required,gt=0"`
}

// ScraperConfig points at the external job-board scraping service.
// An empty BaseURL disables job search.
type ScraperConfig struct {
	BaseURL        string `mapstructure:"base_url"        validate:"omitempty,url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}
