package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	healthbot "github.com/FabioCLima/healthbot-project"
	httpAdapter "github.com/FabioCLima/healthbot-project/pkg/adapters/http"
	"github.com/FabioCLima/healthbot-project/pkg/adapters/memory"
	"github.com/FabioCLima/healthbot-project/pkg/domain"
	"github.com/FabioCLima/healthbot-project/pkg/observability"
	"github.com/FabioCLima/healthbot-project/pkg/session"
)

type stubSearch struct {
	results []domain.SearchResult
	err     error
}

func (s *stubSearch) Search(ctx context.Context, query string) ([]domain.SearchResult, error) {
	return s.results, s.err
}

type stubGenerator struct {
	responses []string
	err       error
}

func (s *stubGenerator) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	if len(s.responses) == 0 {
		return "", errors.New("no scripted response")
	}
	resp := s.responses[0]
	s.responses = s.responses[1:]
	return resp, nil
}

func newTestServer(t *testing.T, search *stubSearch, gen *stubGenerator) *httptest.Server {
	t.Helper()

	engine := healthbot.New(search, gen)
	sessions := session.NewManager(memory.NewStore())
	metrics := observability.NewMetrics(prometheus.NewRegistry())

	srv := httptest.NewServer(httpAdapter.NewHandler(engine, sessions, nil, metrics))
	t.Cleanup(srv.Close)
	return srv
}

func happyStubs() (*stubSearch, *stubGenerator) {
	search := &stubSearch{results: []domain.SearchResult{
		{Source: "https://med.example", Content: "Insulin regulates blood sugar."},
	}}
	gen := &stubGenerator{responses: []string{
		"A summary about insulin.",
		"Q?\nA) Insulin\nB) Melatonin\nC) Keratin\nD) Pepsin",
		`{"score": 9, "feedback": "Correct.", "citations": ["A summary about insulin."]}`,
	}}
	return search, gen
}

func createSession(t *testing.T, srv *httptest.Server) httpAdapter.SessionResponse {
	t.Helper()
	resp, err := http.Post(srv.URL+"/sessions", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body httpAdapter.SessionResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func postMessage(t *testing.T, srv *httptest.Server, sessionID, content string) (*http.Response, httpAdapter.SessionResponse) {
	t.Helper()
	payload, _ := json.Marshal(httpAdapter.MessageRequest{Content: content})
	resp, err := http.Post(
		fmt.Sprintf("%s/sessions/%s/messages", srv.URL, sessionID),
		"application/json", bytes.NewReader(payload))
	require.NoError(t, err)

	var body httpAdapter.SessionResponse
	if resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	}
	resp.Body.Close()
	return resp, body
}

func TestCreateSession(t *testing.T) {
	search, gen := happyStubs()
	srv := newTestServer(t, search, gen)

	created := createSession(t, srv)
	assert.NotEmpty(t, created.RunID)
	assert.Equal(t, domain.StatusWaitingForInput, created.Status)
	assert.Equal(t, domain.StepReceiveTopic, created.CurrentStep)
	require.NotEmpty(t, created.Messages)
	assert.Equal(t, domain.RoleAssistant, created.Messages[0].Role)
}

func TestConversationOverHTTP(t *testing.T) {
	search, gen := happyStubs()
	srv := newTestServer(t, search, gen)
	created := createSession(t, srv)

	// Topic drives the flow to the quiz pause. Only new messages come back.
	resp, body := postMessage(t, srv, created.RunID, "diabetes")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, domain.StepReceiveAnswer, body.CurrentStep)
	assert.Equal(t, domain.StatusWaitingForInput, body.Status)
	require.NotEmpty(t, body.Messages)
	assert.Equal(t, domain.RoleUser, body.Messages[0].Role)

	resp, body = postMessage(t, srv, created.RunID, "B")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, domain.StepReceiveContinue, body.CurrentStep)

	resp, body = postMessage(t, srv, created.RunID, "no")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, domain.StatusTerminated, body.Status)

	// A terminated session conflicts with further input.
	resp, _ = postMessage(t, srv, created.RunID, "more")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestGetAndListAndDelete(t *testing.T) {
	search, gen := happyStubs()
	srv := newTestServer(t, search, gen)
	created := createSession(t, srv)

	resp, err := http.Get(srv.URL + "/sessions/" + created.RunID)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got httpAdapter.SessionResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, created.RunID, got.RunID)

	listResp, err := http.Get(srv.URL + "/sessions")
	require.NoError(t, err)
	defer listResp.Body.Close()

	var listing map[string][]string
	require.NoError(t, json.NewDecoder(listResp.Body).Decode(&listing))
	assert.Contains(t, listing["sessions"], created.RunID)

	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/sessions/"+created.RunID, nil)
	delResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	delResp.Body.Close()
	assert.Equal(t, http.StatusNoContent, delResp.StatusCode)

	missing, err := http.Get(srv.URL + "/sessions/" + created.RunID)
	require.NoError(t, err)
	missing.Body.Close()
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)
}

func TestPostMessage_Validation(t *testing.T) {
	search, gen := happyStubs()
	srv := newTestServer(t, search, gen)
	created := createSession(t, srv)

	// Empty content is rejected before touching the session.
	resp, _ := postMessage(t, srv, created.RunID, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Unknown sessions are a 404.
	resp, _ = postMessage(t, srv, "no-such-session", "hello")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCollaboratorFailureMapsToBadGateway(t *testing.T) {
	search := &stubSearch{err: errors.New("upstream down")}
	srv := newTestServer(t, search, &stubGenerator{})
	created := createSession(t, srv)

	resp, _ := postMessage(t, srv, created.RunID, "diabetes")
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestHealthAndMetricsEndpoints(t *testing.T) {
	search, gen := happyStubs()
	srv := newTestServer(t, search, gen)

	health, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	health.Body.Close()
	assert.Equal(t, http.StatusOK, health.StatusCode)

	metrics, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	metrics.Body.Close()
	assert.Equal(t, http.StatusOK, metrics.StatusCode)
}
