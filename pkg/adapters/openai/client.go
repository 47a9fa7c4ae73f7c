// Package openai implements ports.Generator against the OpenAI chat
// completion API.
package openai

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// Client calls the OpenAI API to turn prompt pairs into text.
type Client struct {
	client      *openai.Client
	model       string
	temperature float32
	baseURL     string
}

// Option configures the Client.
type Option func(*Client)

// WithModel overrides the default model.
func WithModel(model string) Option {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

// WithTemperature overrides the sampling temperature.
func WithTemperature(t float32) Option {
	return func(c *Client) {
		c.temperature = t
	}
}

// WithBaseURL points the client at an OpenAI-compatible endpoint.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// New constructs an OpenAI-backed generator.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		// Moderate creativity suits educational content.
		model:       "gpt-4o-mini",
		temperature: 0.7,
	}
	for _, opt := range opts {
		opt(c)
	}
	cfg := openai.DefaultConfig(apiKey)
	if c.baseURL != "" {
		cfg.BaseURL = c.baseURL
	}
	c.client = openai.NewClientWithConfig(cfg)
	return c
}

// Generate sends the prompt pair to the chat completion API and returns the
// assistant's response. An empty choice list is reported as an error so the
// calling step fails atomically instead of storing an empty result.
func (c *Client) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if c.client == nil {
		return "", errors.New("openai client not initialized")
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		Temperature: c.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
