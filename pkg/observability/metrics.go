// Package observability exposes Prometheus metrics for the workflow,
// wired in through domain.LifecycleHooks so the executor core stays free
// of any metrics dependency.
package observability

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/FabioCLima/healthbot-project/pkg/domain"
)

// Metrics holds the Prometheus collectors for session activity.
type Metrics struct {
	SessionsStarted     prometheus.Counter
	StepsTotal          *prometheus.CounterVec
	CollaboratorErrors  *prometheus.CounterVec
	CollaboratorSeconds *prometheus.HistogramVec
}

// NewMetrics creates and registers the collectors on the given registerer.
// Pass prometheus.DefaultRegisterer for the process-wide registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		SessionsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "healthbot_sessions_started_total",
			Help: "Total number of conversation sessions started",
		}),
		StepsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "healthbot_steps_total",
			Help: "Total number of workflow steps executed",
		}, []string{"step"}),
		CollaboratorErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "healthbot_collaborator_failures_total",
			Help: "Total number of failed external collaborator calls",
		}, []string{"collaborator", "step"}),
		CollaboratorSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: "healthbot_collaborator_duration_seconds",
			Help: "Duration of external collaborator calls",
		}, []string{"collaborator"}),
	}
	reg.MustRegister(m.SessionsStarted, m.StepsTotal, m.CollaboratorErrors, m.CollaboratorSeconds)
	return m
}

// Hooks returns lifecycle hooks that feed the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStepEnter: func(ctx context.Context, ev *domain.StepEvent) {
			m.StepsTotal.WithLabelValues(string(ev.Step)).Inc()
		},
		OnCollaboratorReturn: func(ctx context.Context, ev *domain.CollaboratorEvent) {
			m.CollaboratorSeconds.WithLabelValues(ev.Name).Observe(ev.Duration.Seconds())
			if ev.IsError {
				m.CollaboratorErrors.WithLabelValues(ev.Name, string(ev.Step)).Inc()
			}
		},
	}
}
