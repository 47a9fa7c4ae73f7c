package healthbot

import (
	"context"
	"log/slog"

	"github.com/FabioCLima/healthbot-project/internal/logging"
	"github.com/FabioCLima/healthbot-project/pkg/domain"
	"github.com/FabioCLima/healthbot-project/pkg/graph"
	"github.com/FabioCLima/healthbot-project/pkg/ports"
)

// Version is the released version of the healthbot module.
const Version = "1.0.0"

// Engine is the high-level entry point for the healthbot library. It wires
// the search and generation collaborators into the workflow executor and
// provides a simplified API for hosts (CLI, HTTP).
type Engine struct {
	executor *graph.Executor
	logger   *slog.Logger
	hooks    domain.LifecycleHooks
	entry    domain.StepID
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithEntryStep configures the initial step (default: ask_topic).
func WithEntryStep(step domain.StepID) Option {
	return func(e *Engine) {
		e.entry = step
	}
}

// New initializes a healthbot Engine with the given collaborators.
// Collaborators are injected explicitly: there are no ambient clients, so
// every step stays independently testable.
func New(search ports.SearchProvider, generator ports.Generator, opts ...Option) *Engine {
	eng := &Engine{
		logger: logging.NewNop(),
		entry:  domain.StepAskTopic,
	}
	for _, opt := range opts {
		opt(eng)
	}

	steps := graph.NewSteps(search, generator, eng.logger)
	eng.executor = graph.NewExecutor(steps,
		graph.WithLogger(eng.logger),
		graph.WithLifecycleHooks(eng.hooks),
		graph.WithEntryStep(eng.entry),
	)
	return eng
}

// Start creates a fresh session and advances it to the first pause point.
func (e *Engine) Start(ctx context.Context) (*graph.Session, error) {
	return e.executor.Start(ctx)
}

// Attach re-hydrates a session from a persisted state.
func (e *Engine) Attach(state *domain.State) (*graph.Session, error) {
	return e.executor.Attach(state)
}
