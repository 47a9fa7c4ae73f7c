package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FabioCLima/healthbot-project/pkg/domain"
)

// RunStateStoreContract runs a suite of tests verifying that a StateStore
// implementation adheres to the interface contract, including the exact
// round-trip required for session resumption.
func RunStateStoreContract(t *testing.T, store StateStore) {
	ctx := context.Background()
	sessionID := "contract-test-session-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		state := domain.NewState(sessionID, domain.StepAskTopic)
		state.Topic = "diabetes"
		state.Summary = "a short summary"
		state.SourcesCount = 3
		state.HasResults = true
		state.SearchResults = []domain.SearchResult{{Source: "https://example.org", Content: "snippet"}}
		state.Messages = append(state.Messages,
			domain.Message{Role: domain.RoleAssistant, Content: "What topic?"},
			domain.Message{Role: domain.RoleUser, Content: "diabetes"},
		)
		state.Grade = &domain.Grade{Score: 8, Feedback: "well done", Citations: []string{"a short summary"}}
		state.CurrentStep = domain.StepReceiveAnswer
		state.Status = domain.StatusWaitingForInput

		err := store.Save(ctx, sessionID, state)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, state, loaded, "loaded state must round-trip exactly")
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Isolation", func(t *testing.T) {
		state := domain.NewState(sessionID, domain.StepAskTopic)
		require.NoError(t, store.Save(ctx, sessionID, state))

		// Mutating the saved or loaded value must not leak into the store.
		state.Topic = "mutated after save"
		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.Empty(t, loaded.Topic)

		loaded.Topic = "mutated after load"
		again, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.Empty(t, again.Topic)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, sessionID, domain.NewState(sessionID, domain.StepAskTopic))
		require.NoError(t, err)

		err = store.Delete(ctx, sessionID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "Load after Delete should return ErrSessionNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := sessionID + "-1"
		id2 := sessionID + "-2"
		_ = store.Save(ctx, id1, domain.NewState(id1, domain.StepAskTopic))
		_ = store.Save(ctx, id2, domain.NewState(id2, domain.StepAskTopic))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		sessions, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, sessions, id1)
		assert.Contains(t, sessions, id2)
	})
}
