package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FabioCLima/healthbot-project/pkg/domain"
)

func TestClone_IsDeep(t *testing.T) {
	original := domain.NewState("run-1", domain.StepAskTopic)
	original.Messages = append(original.Messages, domain.Message{Role: domain.RoleUser, Content: "hi"})
	original.SearchResults = []domain.SearchResult{{Source: "s", Content: "c"}}
	original.Grade = &domain.Grade{Score: 8, Feedback: "good", Citations: []string{"x"}}

	clone := original.Clone()
	require.Equal(t, original, clone)

	// Mutating the clone leaves the original untouched.
	clone.Messages[0].Content = "changed"
	clone.SearchResults[0].Source = "changed"
	clone.Grade.Score = 1
	clone.Grade.Citations[0] = "changed"

	assert.Equal(t, "hi", original.Messages[0].Content)
	assert.Equal(t, "s", original.SearchResults[0].Source)
	assert.Equal(t, 8, original.Grade.Score)
	assert.Equal(t, "x", original.Grade.Citations[0])
}

func TestClone_PreservesNilness(t *testing.T) {
	state := &domain.State{RunID: "run-1", CurrentStep: domain.StepAskTopic}
	clone := state.Clone()

	// Nil slices stay nil so serialized round-trips compare equal.
	assert.Nil(t, clone.Messages)
	assert.Nil(t, clone.SearchResults)
	assert.Nil(t, clone.Grade)
	assert.Equal(t, state, clone)

	var nilState *domain.State
	assert.Nil(t, nilState.Clone())
}

func TestLastMessage(t *testing.T) {
	state := domain.NewState("run-1", domain.StepAskTopic)
	assert.Nil(t, state.LastMessage())

	state.Messages = append(state.Messages,
		domain.Message{Role: domain.RoleAssistant, Content: "first"},
		domain.Message{Role: domain.RoleUser, Content: "second"},
	)
	last := state.LastMessage()
	require.NotNil(t, last)
	assert.Equal(t, "second", last.Content)
	assert.Equal(t, domain.RoleUser, last.Role)
}

func TestUpdateApply_PartialOverwrite(t *testing.T) {
	state := domain.NewState("run-1", domain.StepReceiveTopic)
	state.Topic = "old"
	state.Summary = "kept"

	update := &domain.Update{
		Topic:    domain.String("new"),
		Messages: []domain.Message{{Role: domain.RoleAssistant, Content: "msg"}},
	}
	update.Apply(state)

	// Touched fields change, untouched fields survive, messages append.
	assert.Equal(t, "new", state.Topic)
	assert.Equal(t, "kept", state.Summary)
	require.Len(t, state.Messages, 1)

	// A nil update is a no-op.
	var none *domain.Update
	none.Apply(state)
	assert.Equal(t, "new", state.Topic)
}

func TestUpdateApply_ResetTopic(t *testing.T) {
	state := domain.NewState("run-1", domain.StepReceiveContinue)
	state.Messages = append(state.Messages, domain.Message{Role: domain.RoleUser, Content: "yes"})
	state.Topic = "diabetes"
	state.SearchResults = []domain.SearchResult{{Source: "s", Content: "c"}}
	state.HasResults = true
	state.SourcesCount = 1
	state.Summary = "summary"
	state.QuizQuestion = "q"
	state.QuizAnswer = "B"
	state.Grade = &domain.Grade{Score: 9}

	update := &domain.Update{
		ResetTopic:      true,
		ContinueSession: domain.Bool(true),
	}
	update.Apply(state)

	assert.Empty(t, state.Topic)
	assert.Nil(t, state.SearchResults)
	assert.False(t, state.HasResults)
	assert.Zero(t, state.SourcesCount)
	assert.Empty(t, state.Summary)
	assert.Empty(t, state.QuizQuestion)
	assert.Empty(t, state.QuizAnswer)
	assert.Nil(t, state.Grade)

	// Transcript and session identity are never reset.
	assert.Len(t, state.Messages, 1)
	assert.Equal(t, "run-1", state.RunID)
	assert.True(t, state.ContinueSession)
}

func TestStepError_Unwraps(t *testing.T) {
	err := &domain.StepError{Step: domain.StepGradeAnswer, Err: domain.ErrMalformedOutput}
	assert.ErrorIs(t, err, domain.ErrMalformedOutput)
	assert.Contains(t, err.Error(), "grade_answer")
}
