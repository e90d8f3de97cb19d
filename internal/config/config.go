package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Log      LogConfig
	Analyzer AnalyzerConfig
	Upload   UploadConfig
	Reaper   ReaperConfig
	CORS     CORSConfig
	Swagger  SwaggerConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port" validate:"required"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout" validate:"gt=0"`
	WriteTimeout time.Duration `mapstructure:"write_timeout" validate:"gt=0"`
	Environment  string        `mapstructure:"environment"`
	// BasePath prefixes every route, for deployments behind a path-routing proxy.
	BasePath string `mapstructure:"base_path"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=trace debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=console json"`
}

// AnalyzerConfig holds settings for the external document-understanding provider.
type AnalyzerConfig struct {
	Provider           string `mapstructure:"provider" validate:"oneof=openai claude gemini"`
	APIKey             string `mapstructure:"api_key" validate:"required"`
	Model              string `mapstructure:"model"`
	BaseURL            string `mapstructure:"base_url"`
	TimeoutSecs        int    `mapstructure:"timeout_secs" validate:"gt=0"`
	CleanupTimeoutSecs int    `mapstructure:"cleanup_timeout_secs" validate:"gt=0"`
	MaxOutputTokens    int    `mapstructure:"max_output_tokens" validate:"gt=0"`
}

// Timeout returns the outbound request timeout.
func (a *AnalyzerConfig) Timeout() time.Duration {
	return time.Duration(a.TimeoutSecs) * time.Second
}

// CleanupTimeout returns the time budget for deleting an uploaded artifact.
func (a *AnalyzerConfig) CleanupTimeout() time.Duration {
	return time.Duration(a.CleanupTimeoutSecs) * time.Second
}

// InFlightWindow is the longest an uploaded artifact can legitimately exist:
// the outbound request timeout plus the cleanup budget.
func (a *AnalyzerConfig) InFlightWindow() time.Duration {
	return a.Timeout() + a.CleanupTimeout()
}

// UploadConfig holds inbound upload limits.
type UploadConfig struct {
	MaxFileSizeMB int64 `mapstructure:"max_file_size_mb" validate:"gt=0"`
}

// MaxBytes returns the upload limit in bytes.
func (u *UploadConfig) MaxBytes() int64 {
	return u.MaxFileSizeMB * 1024 * 1024
}

// ReaperConfig holds settings for the orphaned-artifact sweeper.
type ReaperConfig struct {
	Enabled     bool          `mapstructure:"enabled"`
	Interval    time.Duration `mapstructure:"interval" validate:"required_if=Enabled true"`
	MaxAge      time.Duration `mapstructure:"max_age" validate:"required_if=Enabled true"`
	Concurrency int           `mapstructure:"concurrency" validate:"gte=0"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// SwaggerConfig toggles the API documentation endpoint.
type SwaggerConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// Validate checks the configuration against its struct constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.Reaper.Enabled {
		if c.Reaper.Interval <= 0 {
			return fmt.Errorf("invalid configuration: reaper.interval must be positive, got %s", c.Reaper.Interval)
		}
		// A younger artifact may still belong to a running analysis.
		if window := c.Analyzer.InFlightWindow(); c.Reaper.MaxAge <= window {
			return fmt.Errorf("invalid configuration: reaper.max_age (%s) must exceed analyzer timeout plus cleanup timeout (%s)", c.Reaper.MaxAge, window)
		}
	}
	return nil
}

// Load reads configuration from environment variables with the PENSIONDOC_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("PENSIONDOC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8200")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "180s")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.base_path", "")

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// Analyzer defaults
	v.SetDefault("analyzer.provider", "openai")
	v.SetDefault("analyzer.api_key", "")
	v.SetDefault("analyzer.model", "")
	v.SetDefault("analyzer.base_url", "")
	v.SetDefault("analyzer.timeout_secs", 120)
	v.SetDefault("analyzer.cleanup_timeout_secs", 30)
	v.SetDefault("analyzer.max_output_tokens", 4096)

	// Upload defaults
	v.SetDefault("upload.max_file_size_mb", 20)

	// Reaper defaults
	v.SetDefault("reaper.enabled", true)
	v.SetDefault("reaper.interval", "15m")
	v.SetDefault("reaper.max_age", "1h")
	v.SetDefault("reaper.concurrency", 4)

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	v.SetDefault("swagger.enabled", true)

	// Bind environment variables explicitly for nested keys. Keys with several
	// names accept the legacy unprefixed variables as a fallback.
	envBindings := map[string][]string{
		"server.port":                   {"PENSIONDOC_SERVER_PORT"},
		"server.read_timeout":           {"PENSIONDOC_SERVER_READ_TIMEOUT"},
		"server.write_timeout":          {"PENSIONDOC_SERVER_WRITE_TIMEOUT"},
		"server.environment":            {"PENSIONDOC_SERVER_ENVIRONMENT"},
		"server.base_path":              {"PENSIONDOC_SERVER_BASE_PATH"},
		"log.level":                     {"PENSIONDOC_LOG_LEVEL"},
		"log.format":                    {"PENSIONDOC_LOG_FORMAT"},
		"analyzer.provider":             {"PENSIONDOC_ANALYZER_PROVIDER"},
		"analyzer.api_key":              {"PENSIONDOC_ANALYZER_API_KEY", "OPENAI_API_KEY"},
		"analyzer.model":                {"PENSIONDOC_ANALYZER_MODEL", "OPENAI_MODEL"},
		"analyzer.base_url":             {"PENSIONDOC_ANALYZER_BASE_URL"},
		"analyzer.timeout_secs":         {"PENSIONDOC_ANALYZER_TIMEOUT_SECS"},
		"analyzer.cleanup_timeout_secs": {"PENSIONDOC_ANALYZER_CLEANUP_TIMEOUT_SECS"},
		"analyzer.max_output_tokens":    {"PENSIONDOC_ANALYZER_MAX_OUTPUT_TOKENS"},
		"upload.max_file_size_mb":       {"PENSIONDOC_UPLOAD_MAX_FILE_SIZE_MB"},
		"reaper.enabled":                {"PENSIONDOC_REAPER_ENABLED"},
		"reaper.interval":               {"PENSIONDOC_REAPER_INTERVAL"},
		"reaper.max_age":                {"PENSIONDOC_REAPER_MAX_AGE"},
		"reaper.concurrency":            {"PENSIONDOC_REAPER_CONCURRENCY"},
		"cors.allowed_origins":          {"PENSIONDOC_CORS_ALLOWED_ORIGINS"},
		"swagger.enabled":               {"PENSIONDOC_SWAGGER_ENABLED"},
	}
	for key, envs := range envBindings {
		_ = v.BindEnv(append([]string{key}, envs...)...)
	}

	cfg := &Config{}

	// Container platforms set a PORT env var. Use it if PENSIONDOC_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("PENSIONDOC_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
		BasePath:     strings.TrimSuffix(v.GetString("server.base_path"), "/"),
	}
	cfg.Log = LogConfig{
		Level:  strings.ToLower(v.GetString("log.level")),
		Format: strings.ToLower(v.GetString("log.format")),
	}
	cfg.Analyzer = AnalyzerConfig{
		Provider:           strings.ToLower(v.GetString("analyzer.provider")),
		APIKey:             v.GetString("analyzer.api_key"),
		Model:              v.GetString("analyzer.model"),
		BaseURL:            v.GetString("analyzer.base_url"),
		TimeoutSecs:        v.GetInt("analyzer.timeout_secs"),
		CleanupTimeoutSecs: v.GetInt("analyzer.cleanup_timeout_secs"),
		MaxOutputTokens:    v.GetInt("analyzer.max_output_tokens"),
	}
	cfg.Upload = UploadConfig{
		MaxFileSizeMB: v.GetInt64("upload.max_file_size_mb"),
	}
	cfg.Reaper = ReaperConfig{
		Enabled:     v.GetBool("reaper.enabled"),
		Interval:    v.GetDuration("reaper.interval"),
		MaxAge:      v.GetDuration("reaper.max_age"),
		Concurrency: v.GetInt("reaper.concurrency"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	cfg.Swagger = SwaggerConfig{
		Enabled: v.GetBool("swagger.enabled"),
	}

	return cfg, nil
}
