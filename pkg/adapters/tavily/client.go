// Package tavily implements ports.SearchProvider against the Tavily search
// API, which ranks well for trustworthy medical sources.
package tavily

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/FabioCLima/healthbot-project/pkg/domain"
)

const defaultEndpoint = "https://api.tavily.com/search"

// Client calls the Tavily search API.
type Client struct {
	APIKey string
	// Depth controls Tavily's depth parameter (basic or advanced).
	Depth string
	// MaxResults caps how many results a query returns.
	MaxResults int

	endpoint string
	client   *http.Client
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client (and its timeout).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

// WithEndpoint overrides the API endpoint. Used in tests.
func WithEndpoint(url string) Option {
	return func(c *Client) {
		c.endpoint = url
	}
}

// WithMaxResults caps the number of returned results.
func WithMaxResults(n int) Option {
	return func(c *Client) {
		c.MaxResults = n
	}
}

// New constructs a Tavily search provider.
func New(apiKey, depth string, opts ...Option) *Client {
	if depth == "" {
		depth = "basic"
	}
	c := &Client{
		APIKey:     apiKey,
		Depth:      depth,
		MaxResults: 3,
		endpoint:   defaultEndpoint,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search posts a query to Tavily and maps the response to search results.
func (c *Client) Search(ctx context.Context, query string) ([]domain.SearchResult, error) {
	if strings.TrimSpace(c.APIKey) == "" {
		return nil, errors.New("tavily: API key is missing")
	}

	body := map[string]any{
		"query":       query,
		"api_key":     c.APIKey,
		"depth":       c.Depth,
		"max_results": c.MaxResults,
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	var resp *http.Response
	delay := 1 * time.Second
	for {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err = c.client.Do(req)
		if err != nil {
			return nil, err
		}

		if resp.StatusCode != http.StatusTooManyRequests {
			break
		}
		resp.Body.Close()

		// Back off and retry on 429, doubling the delay each time up to 30s.
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
		if delay < 30*time.Second {
			delay *= 2
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tavily http %d", resp.StatusCode)
	}

	var response struct {
		Results []struct {
			Title   string `json:"title"`
			URL     string `json:"url"`
			Content string `json:"content"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, err
	}

	results := make([]domain.SearchResult, 0, len(response.Results))
	for _, r := range response.Results {
		results = append(results, domain.SearchResult{Source: r.URL, Content: r.Content})
		if len(results) >= c.MaxResults {
			break
		}
	}
	return results, nil
}
