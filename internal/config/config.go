// Package config loads application settings from an optional YAML file and
// the environment, with environment variables taking precedence. A local
// .env file is honored when present.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Store backends.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreRedis  = "redis"
)

// Config holds every runtime setting of the application.
type Config struct {
	// Generation collaborator.
	OpenAIAPIKey string  `yaml:"openai_api_key"`
	OpenAIModel  string  `yaml:"openai_model"`
	Temperature  float32 `yaml:"temperature"`

	// Search collaborator.
	TavilyAPIKey string `yaml:"tavily_api_key"`
	TavilyDepth  string `yaml:"tavily_depth"`
	MaxResults   int    `yaml:"max_results"`

	// Checkpoint store.
	Store         string `yaml:"store"`
	SessionsPath  string `yaml:"sessions_path"`
	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db"`

	// HTTP adapter.
	ListenAddr string `yaml:"listen_addr"`

	// Logging.
	LogLevel string `yaml:"log_level"`
}

// defaults mirrors the original deployment values.
func defaults() Config {
	return Config{
		OpenAIModel:  "gpt-4o-mini",
		Temperature:  0.7,
		TavilyDepth:  "advanced",
		MaxResults:   3,
		Store:        StoreMemory,
		SessionsPath: ".healthbot/sessions",
		RedisAddr:    "localhost:6379",
		ListenAddr:   ":8080",
		LogLevel:     "info",
	}
}

// Load builds the configuration: defaults, then the YAML file at path (if
// it exists), then environment variables. envFile, when non-empty, is
// loaded into the environment first; a missing .env is not an error.
func Load(path, envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
	}

	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	applyEnv(&cfg)
	return &cfg, nil
}

// applyEnv overlays environment variables onto the config.
func applyEnv(cfg *Config) {
	setString(&cfg.OpenAIAPIKey, "OPENAI_API_KEY")
	setString(&cfg.OpenAIModel, "OPENAI_MODEL")
	setFloat(&cfg.Temperature, "OPENAI_TEMPERATURE")
	setString(&cfg.TavilyAPIKey, "TAVILY_API_KEY")
	setString(&cfg.TavilyDepth, "TAVILY_DEPTH")
	setInt(&cfg.MaxResults, "TAVILY_MAX_RESULTS")
	setString(&cfg.Store, "HEALTHBOT_STORE")
	setString(&cfg.SessionsPath, "HEALTHBOT_SESSIONS_PATH")
	setString(&cfg.RedisAddr, "REDIS_ADDR")
	setString(&cfg.RedisPassword, "REDIS_PASSWORD")
	setInt(&cfg.RedisDB, "REDIS_DB")
	setString(&cfg.ListenAddr, "HEALTHBOT_LISTEN_ADDR")
	setString(&cfg.LogLevel, "LOG_LEVEL")
}

// Validate reports every missing required setting at once so the user can
// fix their environment in one pass.
func (c *Config) Validate() error {
	var problems []error
	if c.OpenAIAPIKey == "" {
		problems = append(problems, errors.New("OPENAI_API_KEY is not configured"))
	}
	if c.TavilyAPIKey == "" {
		problems = append(problems, errors.New("TAVILY_API_KEY is not configured"))
	}
	switch c.Store {
	case StoreMemory, StoreFile, StoreRedis:
	default:
		problems = append(problems, fmt.Errorf("unknown store backend %q (expected %s, %s or %s)",
			c.Store, StoreMemory, StoreFile, StoreRedis))
	}
	return errors.Join(problems...)
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setFloat(dst *float32, key string) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 32); err == nil {
			*dst = float32(f)
		}
	}
}
