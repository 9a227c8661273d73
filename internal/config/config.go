// Package config loads service settings from defaults, an optional config
// file, a .env file and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/jonathan/resume-tailor/internal/ingestion"
	"github.com/jonathan/resume-tailor/internal/llm"
	"github.com/jonathan/resume-tailor/internal/tailoring"
)

// Config holds every setting of the service and CLI
type Config struct {
	Environment string `mapstructure:"environment" validate:"oneof=development staging production test"`
	Debug       bool   `mapstructure:"debug"`
	Port        int    `mapstructure:"port" validate:"min=1,max=65535"`

	DatabaseURL string        `mapstructure:"database_url"`
	RedisURL    string        `mapstructure:"redis_url"`
	CacheTTL    time.Duration `mapstructure:"cache_ttl" validate:"gte=0"`

	LLMProvider   string `mapstructure:"llm_provider" validate:"oneof=ollama gemini"`
	OllamaURL     string `mapstructure:"ollama_url" validate:"required_if=LLMProvider ollama,omitempty,url"`
	OllamaModel   string `mapstructure:"ollama_model" validate:"required_if=LLMProvider ollama"`
	OllamaTimeout int    `mapstructure:"ollama_timeout" validate:"gt=0"` // Seconds per model call
	GeminiAPIKey  string `mapstructure:"gemini_api_key" validate:"required_if=LLMProvider gemini"`
	GeminiModel   string `mapstructure:"gemini_model"`

	MaxUploadSize    int64    `mapstructure:"max_upload_size" validate:"gt=0"`
	AllowedFileTypes []string `mapstructure:"allowed_file_types" validate:"min=1"`
	UploadDirectory  string   `mapstructure:"upload_directory"`
	AllowedOrigins   []string `mapstructure:"allowed_origins"`

	MaxResumeLength         int     `mapstructure:"max_resume_length" validate:"gt=0"`
	MaxJobDescriptionLength int     `mapstructure:"max_job_description_length" validate:"gt=0"`
	KeywordDensityTarget    float64 `mapstructure:"keyword_density_target" validate:"gt=0,lt=1"`
	KeywordToleranceFactor  float64 `mapstructure:"keyword_tolerance_factor" validate:"gte=1"`
	KeywordDensitySlack     float64 `mapstructure:"keyword_density_slack" validate:"gte=0,lt=1"`
	MaxKeywords             int     `mapstructure:"max_keywords" validate:"gt=0"`
	MaxRetries              int     `mapstructure:"max_retries" validate:"gte=0"`
	MaxConcurrency          int     `mapstructure:"max_concurrency" validate:"gt=0"`
	RateLimitPerMinute      int     `mapstructure:"rate_limit_per_minute" validate:"gt=0"`

	LogLevel string `mapstructure:"log_level" validate:"oneof=debug info warn error"`
	LogFile  string `mapstructure:"log_file"`
	LogJSON  bool   `mapstructure:"log_json"`
}

// defaults are keyed by the lower-case setting name; the environment
// variable is the upper-case form
var defaults = map[string]any{
	"environment":                "development",
	"debug":                      false,
	"port":                       8000,
	"database_url":               "",
	"redis_url":                  "",
	"cache_ttl":                  "24h",
	"llm_provider":               string(llm.ProviderOllama),
	"ollama_url":                 "http://localhost:11434",
	"ollama_model":               "llama3.1",
	"ollama_timeout":             120,
	"gemini_api_key":             "",
	"gemini_model":               "gemini-2.5-flash",
	"max_upload_size":            ingestion.DefaultMaxUploadSize,
	"allowed_file_types":         ingestion.DefaultAllowedTypes,
	"upload_directory":           "uploads",
	"allowed_origins":            []string{"http://localhost:3000"},
	"max_resume_length":          50000,
	"max_job_description_length": 20000,
	"keyword_density_target":     0.025,
	"keyword_tolerance_factor":   1.5,
	"keyword_density_slack":      0.005,
	"max_keywords":               20,
	"max_retries":                2,
	"max_concurrency":            4,
	"rate_limit_per_minute":      60,
	"log_level":                  "info",
	"log_file":                   "",
	"log_json":                   false,
}

// LoadError reports a configuration that could not be read or is invalid
type LoadError struct {
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("config error: %s: %v", e.Message, e.Cause)
	}
	return "config error: " + e.Message
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// Load reads .env (when present), the optional config file and the
// environment into v and returns the validated result. Environment values
// override the file; the file overrides defaults. envFile may be empty.
func Load(v *viper.Viper, configFile, envFile string) (*Config, error) {
	if err := loadDotEnv(envFile); err != nil {
		return nil, err
	}

	for key, value := range defaults {
		v.SetDefault(key, value)
		if err := v.BindEnv(key, strings.ToUpper(key)); err != nil {
			return nil, &LoadError{Message: "binding " + strings.ToUpper(key), Cause: err}
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, &LoadError{Message: "reading " + configFile, Cause: err}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, &LoadError{Message: "decoding settings", Cause: err}
	}
	cfg.AllowedFileTypes = splitList(cfg.AllowedFileTypes)
	cfg.AllowedOrigins = splitList(cfg.AllowedOrigins)
	if cfg.Debug {
		cfg.LogLevel = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			msgs := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Field(), fe.Tag()))
			}
			return &LoadError{Message: strings.Join(msgs, "; ")}
		}
		return &LoadError{Message: "validation failed", Cause: err}
	}
	return nil
}

// EngineOptions maps the settings onto tailoring options
func (c *Config) EngineOptions() tailoring.Options {
	return tailoring.Options{
		MaxResumeLength:         c.MaxResumeLength,
		MaxJobDescriptionLength: c.MaxJobDescriptionLength,
		MaxKeywords:             c.MaxKeywords,
		TargetDensity:           c.KeywordDensityTarget,
		ToleranceFactor:         c.KeywordToleranceFactor,
		DensitySlack:            c.KeywordDensitySlack,
		MaxRetries:              c.MaxRetries,
		MaxConcurrency:          c.MaxConcurrency,
		InvokeTimeout:           c.InvokeTimeout(),
	}
}

// InvokeTimeout is the per-call model timeout
func (c *Config) InvokeTimeout() time.Duration {
	return time.Duration(c.OllamaTimeout) * time.Second
}

// LLMConfig maps the settings onto the model client configuration
func (c *Config) LLMConfig() *llm.Config {
	cfg := llm.DefaultConfig()
	cfg.Provider = llm.Provider(c.LLMProvider)
	cfg.OllamaURL = c.OllamaURL
	cfg.OllamaModel = c.OllamaModel
	cfg.APIKey = c.GeminiAPIKey
	if c.GeminiModel != "" {
		cfg.GeminiModel = c.GeminiModel
	}
	if t := c.InvokeTimeout(); t > cfg.HTTPTimeout {
		cfg.HTTPTimeout = t
	}
	return cfg
}

func loadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return &LoadError{Message: "loading " + path, Cause: err}
	}
	return nil
}

// splitList accepts both list values and a single comma-separated value
func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
