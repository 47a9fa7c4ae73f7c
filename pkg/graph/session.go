package graph

import (
	"context"
	"fmt"

	"github.com/FabioCLima/healthbot-project/pkg/domain"
)

// Session is the suspended-session handle returned by Executor.Start and
// Executor.Attach. All progression happens through method calls on the
// handle; there is no background execution between invocations. A Session
// is owned by a single caller and is not safe for concurrent use. Distinct
// sessions are fully independent.
type Session struct {
	exec  *Executor
	state *domain.State
}

// State exposes the underlying conversation state. Callers must treat it as
// read-only; use Snapshot for a mutable copy.
func (s *Session) State() *domain.State {
	return s.state
}

// Snapshot returns a deep copy of the current state, suitable for
// persistence or inspection.
func (s *Session) Snapshot() *domain.State {
	return s.state.Clone()
}

// RunID returns the session identifier.
func (s *Session) RunID() string {
	return s.state.RunID
}

// Paused reports whether the session is waiting for user input.
func (s *Session) Paused() bool {
	return s.state.Status == domain.StatusWaitingForInput
}

// Terminated reports whether the session reached the terminal state.
func (s *Session) Terminated() bool {
	return s.state.Status == domain.StatusTerminated
}

// MessagesSince returns the transcript entries appended after index n.
// Callers use it to display only what is new after an Advance or Resume.
func (s *Session) MessagesSince(n int) []domain.Message {
	if n < 0 || n > len(s.state.Messages) {
		return nil
	}
	return s.state.Messages[n:]
}

// Resume supplies a new user-authored message to a paused session and
// drives execution forward until the next pause point, termination, or a
// step failure. Resuming a session that is not paused is a contract
// violation.
func (s *Session) Resume(ctx context.Context, input string) error {
	switch s.state.Status {
	case domain.StatusWaitingForInput:
		// proceed
	case domain.StatusTerminated:
		return fmt.Errorf("%w: session %s is terminated", domain.ErrNotWaitingForInput, s.state.RunID)
	default:
		return fmt.Errorf("%w: session %s is %s", domain.ErrNotWaitingForInput, s.state.RunID, s.state.Status)
	}

	step := s.state.CurrentStep
	if !IsPausePoint(step) {
		return fmt.Errorf("%w: step %q is not a pause point", domain.ErrInvalidResume, step)
	}

	s.state.Messages = append(s.state.Messages, domain.Message{Role: domain.RoleUser, Content: input})
	s.state.Status = domain.StatusActive

	if err := s.exec.runStep(ctx, s.state, step); err != nil {
		// The receive step rejected the input shape; restore the paused
		// state so the caller can try again.
		s.state.Messages = s.state.Messages[:len(s.state.Messages)-1]
		s.state.Status = domain.StatusWaitingForInput
		return err
	}

	return s.exec.advance(ctx, s.state)
}

// Advance drives a non-paused session forward. It is how a caller retries
// after an external-call step failed: the failed step left no partial
// update, so re-running it is safe. Advancing a terminated session is
// reported, not silently ignored.
func (s *Session) Advance(ctx context.Context) error {
	if s.state.Status == domain.StatusTerminated {
		return fmt.Errorf("%w: session %s is terminated", domain.ErrNotWaitingForInput, s.state.RunID)
	}
	if s.state.Status == domain.StatusWaitingForInput {
		return fmt.Errorf("%w: session %s needs input, call Resume", domain.ErrNotWaitingForInput, s.state.RunID)
	}
	return s.exec.advance(ctx, s.state)
}
