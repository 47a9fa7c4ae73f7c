// Package cli implements the interactive console frontend and the shared
// wiring used by the healthbot commands.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	healthbot "github.com/FabioCLima/healthbot-project"
	"github.com/FabioCLima/healthbot-project/internal/config"
	"github.com/FabioCLima/healthbot-project/internal/logging"
	"github.com/FabioCLima/healthbot-project/pkg/adapters/file"
	"github.com/FabioCLima/healthbot-project/pkg/adapters/memory"
	"github.com/FabioCLima/healthbot-project/pkg/adapters/openai"
	"github.com/FabioCLima/healthbot-project/pkg/adapters/redis"
	"github.com/FabioCLima/healthbot-project/pkg/adapters/tavily"
	"github.com/FabioCLima/healthbot-project/pkg/domain"
	"github.com/FabioCLima/healthbot-project/pkg/ports"
	"github.com/FabioCLima/healthbot-project/pkg/session"
)

// RunOptions carries the settings shared by the CLI commands.
type RunOptions struct {
	ConfigPath string
	EnvFile    string
	Debug      bool

	SessionID string
	Store     string
	Topic     string
}

// createLogger configures the application logger.
// In debug mode it writes to stderr, keeping stdout for the conversation.
func createLogger(debug bool, level string) *slog.Logger {
	if debug {
		return logging.New(slog.LevelDebug)
	}
	switch strings.ToLower(level) {
	case "debug":
		return logging.New(slog.LevelDebug)
	case "info":
		return logging.New(slog.LevelInfo)
	case "warn":
		return logging.New(slog.LevelWarn)
	case "error":
		return logging.New(slog.LevelError)
	default:
		return logging.NewNop()
	}
}

// printSystemMessage prints a standardized system message to stdout.
func printSystemMessage(format string, args ...any) {
	fmt.Printf(">>> %s\n", fmt.Sprintf(format, args...))
}

// loadConfig resolves the configuration for a command, applying the
// --store override on top of file and environment settings.
func loadConfig(opts RunOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath, opts.EnvFile)
	if err != nil {
		return nil, err
	}
	if opts.Store != "" {
		cfg.Store = opts.Store
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// BuildStore resolves the configuration and returns the checkpoint store.
// Collaborator API keys are not required, so management commands work
// without them.
func BuildStore(opts RunOptions, storeOverride string) (ports.StateStore, error) {
	cfg, err := config.Load(opts.ConfigPath, opts.EnvFile)
	if err != nil {
		return nil, err
	}
	if storeOverride != "" {
		cfg.Store = storeOverride
	}
	return buildStore(cfg)
}

// buildStore selects the checkpoint backend from the configuration.
func buildStore(cfg *config.Config) (ports.StateStore, error) {
	switch cfg.Store {
	case config.StoreMemory:
		return memory.NewStore(), nil
	case config.StoreFile:
		return file.NewStore(cfg.SessionsPath), nil
	case config.StoreRedis:
		return redis.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store)
	}
}

// buildCollaborators constructs the external collaborators from config.
func buildCollaborators(cfg *config.Config) (ports.SearchProvider, ports.Generator) {
	search := tavily.New(cfg.TavilyAPIKey, cfg.TavilyDepth,
		tavily.WithMaxResults(cfg.MaxResults),
	)
	generator := openai.New(cfg.OpenAIAPIKey,
		openai.WithModel(cfg.OpenAIModel),
		openai.WithTemperature(cfg.Temperature),
	)
	return search, generator
}

// buildEngine wires the search and generation collaborators into an engine.
func buildEngine(cfg *config.Config, logger *slog.Logger, debug bool) *healthbot.Engine {
	search, generator := buildCollaborators(cfg)

	engineOpts := []healthbot.Option{healthbot.WithLogger(logger)}
	if debug {
		engineOpts = append(engineOpts, healthbot.WithLifecycleHooks(createDebugHooks(logger)))
	}
	return healthbot.New(search, generator, engineOpts...)
}

// newSessionManager builds the lock-aware persistence wrapper for a store.
func newSessionManager(store ports.StateStore, logger *slog.Logger) *session.Manager {
	return session.NewManager(store, session.WithLogger(logger))
}

func createDebugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStepEnter: func(ctx context.Context, e *domain.StepEvent) {
			logger.Debug("Enter Step", "step", e.Step)
		},
		OnStepLeave: func(ctx context.Context, e *domain.StepEvent) {
			logger.Debug("Leave Step", "step", e.Step)
		},
		OnCollaboratorCall: func(ctx context.Context, e *domain.CollaboratorEvent) {
			logger.Debug("Collaborator Call", "name", e.Name, "step", e.Step)
		},
		OnCollaboratorReturn: func(ctx context.Context, e *domain.CollaboratorEvent) {
			if e.IsError {
				logger.Debug("Collaborator Return (Error)", "name", e.Name, "step", e.Step)
			} else {
				logger.Debug("Collaborator Return (Success)", "name", e.Name, "duration", e.Duration)
			}
		},
	}
}
