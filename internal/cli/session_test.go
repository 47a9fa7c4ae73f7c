package cli

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	healthbot "github.com/FabioCLima/healthbot-project"
	"github.com/FabioCLima/healthbot-project/pkg/domain"
)

type scriptedSearch struct {
	results []domain.SearchResult
}

func (s *scriptedSearch) Search(ctx context.Context, query string) ([]domain.SearchResult, error) {
	return s.results, nil
}

type scriptedGenerator struct {
	responses []string
	err       error
}

func (g *scriptedGenerator) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if g.err != nil {
		return "", g.err
	}
	if len(g.responses) == 0 {
		return "", errors.New("scriptedGenerator: no response left")
	}
	resp := g.responses[0]
	g.responses = g.responses[1:]
	return resp, nil
}

// A checkpoint saved after a step failure is StatusActive at the failed
// step. Reopening it must re-run that step instead of waiting for input the
// session cannot accept.
func TestResumeInFlight_RedrivesFailureCheckpoint(t *testing.T) {
	ctx := context.Background()
	search := &scriptedSearch{results: []domain.SearchResult{
		{Source: "https://med.example", Content: "Insulin regulates blood sugar."},
	}}
	gen := &scriptedGenerator{err: errors.New("rate limited")}
	engine := healthbot.New(search, gen)

	sess, err := engine.Start(ctx)
	require.NoError(t, err)

	var stepErr *domain.StepError
	err = sess.Resume(ctx, "diabetes")
	require.ErrorAs(t, err, &stepErr)

	// Persist and reopen, as `run --session` does.
	attached, err := engine.Attach(sess.Snapshot())
	require.NoError(t, err)
	require.False(t, attached.Paused())

	gen.err = nil
	gen.responses = []string{
		"Insulin regulates blood sugar.",
		"What regulates blood sugar?\nA) Insulin\nB) Melatonin\nC) Keratin\nD) Pepsin",
	}

	require.NoError(t, resumeInFlight(ctx, attached))
	assert.True(t, attached.Paused())
	assert.Equal(t, domain.StepReceiveAnswer, attached.State().CurrentStep)
}

func TestResumeInFlight_LeavesPausedSessionAlone(t *testing.T) {
	ctx := context.Background()
	engine := healthbot.New(&scriptedSearch{}, &scriptedGenerator{})

	sess, err := engine.Start(ctx)
	require.NoError(t, err)
	require.True(t, sess.Paused())
	before := len(sess.State().Messages)

	require.NoError(t, resumeInFlight(ctx, sess))
	assert.True(t, sess.Paused())
	assert.Equal(t, domain.StepReceiveTopic, sess.State().CurrentStep)
	assert.Len(t, sess.State().Messages, before)
}
