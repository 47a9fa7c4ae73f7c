package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventStepEnter          EventType = "step_enter"
	EventStepLeave          EventType = "step_leave"
	EventCollaboratorCall   EventType = "collaborator_call"
	EventCollaboratorReturn EventType = "collaborator_return"
)

// StepEvent represents entry into or exit from a workflow step.
type StepEvent struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	RunID     string    `json:"run_id"`
	Step      StepID    `json:"step"`
}

// CollaboratorEvent represents a call to an external collaborator
// (search or generation) made from within a step.
type CollaboratorEvent struct {
	Timestamp time.Time     `json:"timestamp"`
	Type      EventType     `json:"type"`
	RunID     string        `json:"run_id"`
	Step      StepID        `json:"step"`
	Name      string        `json:"name"` // e.g. "search", "generate"
	Duration  time.Duration `json:"duration,omitempty"`
	IsError   bool          `json:"is_error,omitempty"`
}

// LifecycleHooks defines callbacks for executor observability.
type LifecycleHooks struct {
	OnStepEnter          func(context.Context, *StepEvent)
	OnStepLeave          func(context.Context, *StepEvent)
	OnCollaboratorCall   func(context.Context, *CollaboratorEvent)
	OnCollaboratorReturn func(context.Context, *CollaboratorEvent)
}
