// Package http exposes sessions over a REST API, letting external
// frontends drive the pause/resume conversation loop. Each session is
// guarded by the session manager, so concurrent requests for the same
// session serialize while independent sessions proceed in parallel.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	healthbot "github.com/FabioCLima/healthbot-project"
	"github.com/FabioCLima/healthbot-project/internal/logging"
	"github.com/FabioCLima/healthbot-project/pkg/domain"
	"github.com/FabioCLima/healthbot-project/pkg/observability"
	"github.com/FabioCLima/healthbot-project/pkg/session"
)

// Server handles the session REST API.
type Server struct {
	engine   *healthbot.Engine
	sessions *session.Manager
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// SessionResponse is the wire shape for session endpoints. Messages holds
// only the entries produced by the request for POST endpoints, and the
// full transcript for GET.
type SessionResponse struct {
	RunID       string           `json:"run_id"`
	Status      domain.Status    `json:"status"`
	CurrentStep domain.StepID    `json:"current_step"`
	Messages    []domain.Message `json:"messages"`
}

// MessageRequest is the body for posting a user message to a session.
type MessageRequest struct {
	Content string `json:"content"`
}

// NewHandler creates the HTTP handler for the session API. metrics may be
// nil when the host does not expose Prometheus.
func NewHandler(engine *healthbot.Engine, sessions *session.Manager, logger *slog.Logger, metrics *observability.Metrics) http.Handler {
	if logger == nil {
		logger = logging.NewNop()
	}
	s := &Server{engine: engine, sessions: sessions, logger: logger, metrics: metrics}

	r := chi.NewRouter()
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.createSession)
		r.Get("/", s.listSessions)
		r.Route("/{sessionID}", func(r chi.Router) {
			r.Get("/", s.getSession)
			r.Delete("/", s.deleteSession)
			r.Post("/messages", s.postMessage)
		})
	})
	return r
}

// createSession starts a new session and advances it to the first pause
// point. The initial assistant prompt is returned to the caller.
func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.engine.Start(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	if s.metrics != nil {
		s.metrics.SessionsStarted.Inc()
	}

	state := sess.Snapshot()
	if err := s.sessions.Save(r.Context(), state.RunID, state); err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, SessionResponse{
		RunID:       state.RunID,
		Status:      state.Status,
		CurrentStep: state.CurrentStep,
		Messages:    state.Messages,
	})
}

// postMessage resumes a paused session with a user message. The whole
// load/resume/save cycle runs under the session lock.
func (s *Server) postMessage(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var body MessageRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if body.Content == "" {
		http.Error(w, "content is required", http.StatusBadRequest)
		return
	}

	var resp SessionResponse
	err := s.sessions.WithLock(r.Context(), sessionID, func(ctx context.Context) error {
		state, err := s.sessions.Store().Load(ctx, sessionID)
		if err != nil {
			return err
		}
		sess, err := s.engine.Attach(state)
		if err != nil {
			return err
		}

		before := len(state.Messages)
		if err := sess.Resume(ctx, body.Content); err != nil {
			return err
		}

		snapshot := sess.Snapshot()
		if err := s.sessions.Store().Save(ctx, sessionID, snapshot); err != nil {
			return err
		}

		resp = SessionResponse{
			RunID:       snapshot.RunID,
			Status:      snapshot.Status,
			CurrentStep: snapshot.CurrentStep,
			Messages:    sess.MessagesSince(before),
		}
		return nil
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, resp)
}

// getSession returns the full persisted state of a session.
func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	state, err := s.sessions.Load(r.Context(), sessionID)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, SessionResponse{
		RunID:       state.RunID,
		Status:      state.Status,
		CurrentStep: state.CurrentStep,
		Messages:    state.Messages,
	})
}

// listSessions returns the IDs of all persisted sessions.
func (s *Server) listSessions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.sessions.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string][]string{"sessions": ids})
}

// deleteSession discards a persisted session.
func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if err := s.sessions.Delete(r.Context(), sessionID); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "err", err)
	}
}

// writeError maps domain errors onto HTTP status codes.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, domain.ErrNotWaitingForInput), errors.Is(err, domain.ErrInvalidResume):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		s.logger.Error("request failed", "err", err)
		http.Error(w, err.Error(), http.StatusBadGateway)
	}
}
