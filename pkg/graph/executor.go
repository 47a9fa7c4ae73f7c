package graph

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/FabioCLima/healthbot-project/internal/logging"
	"github.com/FabioCLima/healthbot-project/pkg/domain"
)

// externalSteps names the collaborator behind each external-call step, used
// for lifecycle events and metrics.
var externalSteps = map[domain.StepID]string{
	domain.StepSearchTavily: "search",
	domain.StepSummarize:    "generate",
	domain.StepCreateQuiz:   "generate",
	domain.StepGradeAnswer:  "generate",
}

// Executor owns the directed graph of steps and edges and drives a session
// from the entry step to the terminal marker, pausing at the designated
// pause points. It holds no per-session state: any number of sessions can
// run concurrently on the same executor.
type Executor struct {
	steps    *Steps
	registry map[domain.StepID]StepFunc
	entry    domain.StepID
	logger   *slog.Logger
	hooks    domain.LifecycleHooks
}

// Option configures the Executor.
type Option func(*Executor)

// WithLogger sets a structured logger for the executor.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Executor) {
		e.logger = logger
	}
}

// WithLifecycleHooks registers observability callbacks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Executor) {
		e.hooks = hooks
	}
}

// WithEntryStep overrides the entry step (default: ask_topic).
func WithEntryStep(step domain.StepID) Option {
	return func(e *Executor) {
		e.entry = step
	}
}

// NewExecutor wires the step functions into the edge tables.
func NewExecutor(steps *Steps, opts ...Option) *Executor {
	e := &Executor{
		steps:  steps,
		entry:  domain.StepAskTopic,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.registry = map[domain.StepID]StepFunc{
		domain.StepAskTopic:        steps.AskTopic,
		domain.StepReceiveTopic:    steps.ReceiveTopic,
		domain.StepSearchTavily:    steps.SearchTopic,
		domain.StepHandleNoResults: steps.HandleNoResults,
		domain.StepSummarize:       steps.Summarize,
		domain.StepPresentSummary:  steps.PresentSummary,
		domain.StepCreateQuiz:      steps.CreateQuiz,
		domain.StepPresentQuiz:     steps.PresentQuiz,
		domain.StepReceiveAnswer:   steps.ReceiveAnswer,
		domain.StepGradeAnswer:     steps.GradeAnswer,
		domain.StepPresentGrade:    steps.PresentGrade,
		domain.StepAskContinue:     steps.AskContinue,
		domain.StepReceiveContinue: steps.ReceiveContinue,
	}
	return e
}

// Start creates a fresh session with a collision-resistant run ID and
// advances it to the first pause point.
func (e *Executor) Start(ctx context.Context) (*Session, error) {
	state := domain.NewState(uuid.NewString(), e.entry)
	session := &Session{exec: e, state: state}

	e.logger.Info("session started", "run_id", state.RunID)

	if err := session.Advance(ctx); err != nil {
		return session, err
	}
	return session, nil
}

// Attach re-hydrates a session from a persisted state, validating that it
// can be consistently resumed. An inconsistent state is a caller contract
// violation and is reported as domain.ErrInvalidResume.
func (e *Executor) Attach(state *domain.State) (*Session, error) {
	if state == nil {
		return nil, fmt.Errorf("%w: nil state", domain.ErrInvalidResume)
	}
	if state.RunID == "" {
		return nil, fmt.Errorf("%w: missing run id", domain.ErrInvalidResume)
	}
	if _, known := e.registry[state.CurrentStep]; !known && state.CurrentStep != domain.StepEnd {
		return nil, fmt.Errorf("%w: unknown step %q", domain.ErrInvalidResume, state.CurrentStep)
	}
	if state.Status == domain.StatusWaitingForInput && !IsPausePoint(state.CurrentStep) {
		return nil, fmt.Errorf("%w: step %q is not a pause point", domain.ErrInvalidResume, state.CurrentStep)
	}
	if state.Status == domain.StatusWaitingForInput {
		if last := state.LastMessage(); last == nil || last.Role != domain.RoleAssistant {
			return nil, fmt.Errorf("%w: paused state must end with an assistant prompt", domain.ErrInvalidResume)
		}
	}
	return &Session{exec: e, state: state}, nil
}

// advance executes steps along the edges until the session pauses for
// input, terminates, or a step fails. On failure the failed step's update
// is not applied and CurrentStep is unchanged, so a retry is always safe.
func (e *Executor) advance(ctx context.Context, state *domain.State) error {
	for {
		step := state.CurrentStep

		if step == domain.StepEnd {
			state.Status = domain.StatusTerminated
			e.logger.Info("session terminated", "run_id", state.RunID)
			return nil
		}
		if IsPausePoint(step) {
			state.Status = domain.StatusWaitingForInput
			e.logger.Debug("session paused", "run_id", state.RunID, "step", step)
			return nil
		}

		if err := e.runStep(ctx, state, step); err != nil {
			return err
		}
	}
}

// runStep executes one step and applies its update atomically.
func (e *Executor) runStep(ctx context.Context, state *domain.State, step domain.StepID) error {
	fn, ok := e.registry[step]
	if !ok {
		return fmt.Errorf("%w: unknown step %q", domain.ErrInvalidResume, step)
	}

	e.emitStep(ctx, domain.EventStepEnter, state.RunID, step)
	e.emitCollaboratorCall(ctx, state.RunID, step)

	started := time.Now()
	update, err := fn(ctx, state)
	e.emitCollaboratorReturn(ctx, state.RunID, step, time.Since(started), err != nil)

	if err != nil {
		e.logger.Warn("step failed", "run_id", state.RunID, "step", step, "err", err)
		return err
	}

	update.Apply(state)
	e.emitStep(ctx, domain.EventStepLeave, state.RunID, step)

	next, ok := nextStep(step, state)
	if !ok {
		return fmt.Errorf("no transition defined from step %q", step)
	}
	state.CurrentStep = next
	return nil
}

func (e *Executor) emitStep(ctx context.Context, typ domain.EventType, runID string, step domain.StepID) {
	var fn func(context.Context, *domain.StepEvent)
	switch typ {
	case domain.EventStepEnter:
		fn = e.hooks.OnStepEnter
	case domain.EventStepLeave:
		fn = e.hooks.OnStepLeave
	}
	if fn == nil {
		return
	}
	fn(ctx, &domain.StepEvent{
		Timestamp: time.Now(),
		Type:      typ,
		RunID:     runID,
		Step:      step,
	})
}

func (e *Executor) emitCollaboratorCall(ctx context.Context, runID string, step domain.StepID) {
	name, external := externalSteps[step]
	if !external || e.hooks.OnCollaboratorCall == nil {
		return
	}
	e.hooks.OnCollaboratorCall(ctx, &domain.CollaboratorEvent{
		Timestamp: time.Now(),
		Type:      domain.EventCollaboratorCall,
		RunID:     runID,
		Step:      step,
		Name:      name,
	})
}

func (e *Executor) emitCollaboratorReturn(ctx context.Context, runID string, step domain.StepID, elapsed time.Duration, isErr bool) {
	name, external := externalSteps[step]
	if !external || e.hooks.OnCollaboratorReturn == nil {
		return
	}
	e.hooks.OnCollaboratorReturn(ctx, &domain.CollaboratorEvent{
		Timestamp: time.Now(),
		Type:      domain.EventCollaboratorReturn,
		RunID:     runID,
		Step:      step,
		Name:      name,
		Duration:  elapsed,
		IsError:   isErr,
	})
}
