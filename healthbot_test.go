package healthbot_test

import (
	"context"
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
}

func (s *scriptedGenerator) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	resp := s.responses[0]
	s.responses = s.responses[1:]
	return resp, nil
}

func TestEngine_EndToEnd(t *testing.T) {
	search := &scriptedSearch{results: []domain.SearchResult{
		{Source: "https://med.example", Content: "Asthma narrows the airways."},
	}}
	gen := &scriptedGenerator{responses: []string{
		"Asthma narrows the airways, making breathing difficult.",
		"What does asthma affect?\nA) Airways\nB) Bones\nC) Skin\nD) Vision",
		`{"score": 10, "feedback": "Exactly right.", "citations": ["Asthma narrows the airways."]}`,
	}}

	engine := healthbot.New(search, gen)
	ctx := context.Background()

	sess, err := engine.Start(ctx)
	require.NoError(t, err)
	require.True(t, sess.Paused())

	require.NoError(t, sess.Resume(ctx, "asthma"))
	require.NoError(t, sess.Resume(ctx, "A"))
	require.NoError(t, sess.Resume(ctx, "no"))

	assert.True(t, sess.Terminated())
	require.NotNil(t, sess.State().Grade)
	assert.Equal(t, 10, sess.State().Grade.Score)
}

func TestEngine_AttachRestoresSession(t *testing.T) {
	engine := healthbot.New(&scriptedSearch{}, &scriptedGenerator{})

	ctx := context.Background()
	sess, err := engine.Start(ctx)
	require.NoError(t, err)

	snapshot := sess.Snapshot()

	restored, err := engine.Attach(snapshot)
	require.NoError(t, err)
	assert.Equal(t, sess.RunID(), restored.RunID())
	assert.True(t, restored.Paused())
}
