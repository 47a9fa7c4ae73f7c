package openai_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FabioCLima/healthbot-project/pkg/adapters/openai"
)

func completionResponse(content string) string {
	return `{
		"id": "chatcmpl-1",
		"object": "chat.completion",
		"choices": [
			{"index": 0, "message": {"role": "assistant", "content": ` + mustJSON(content) + `}}
		]
	}`
}

func mustJSON(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func TestGenerate(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer key-123", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(completionResponse("Diabetes is a chronic condition.")))
	}))
	defer srv.Close()

	client := openai.New("key-123",
		openai.WithBaseURL(srv.URL),
		openai.WithModel("gpt-4o"),
		openai.WithTemperature(0.2),
	)

	out, err := client.Generate(context.Background(), "You are a health educator.", "Summarize diabetes.")
	require.NoError(t, err)
	assert.Equal(t, "Diabetes is a chronic condition.", out)

	assert.Equal(t, "gpt-4o", gotBody["model"])
	assert.InDelta(t, 0.2, gotBody["temperature"], 0.001)

	messages, ok := gotBody["messages"].([]any)
	require.True(t, ok)
	require.Len(t, messages, 2)
	system := messages[0].(map[string]any)
	assert.Equal(t, "system", system["role"])
	assert.Equal(t, "You are a health educator.", system["content"])
	user := messages[1].(map[string]any)
	assert.Equal(t, "user", user["role"])
	assert.Equal(t, "Summarize diabetes.", user["content"])
}

func TestGenerate_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "chatcmpl-1", "object": "chat.completion", "choices": []}`))
	}))
	defer srv.Close()

	client := openai.New("key", openai.WithBaseURL(srv.URL))

	_, err := client.Generate(context.Background(), "system", "user")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}

func TestGenerate_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": {"message": "invalid api key", "type": "invalid_request_error"}}`))
	}))
	defer srv.Close()

	client := openai.New("bad-key", openai.WithBaseURL(srv.URL))

	_, err := client.Generate(context.Background(), "system", "user")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "openai chat completion")
}
