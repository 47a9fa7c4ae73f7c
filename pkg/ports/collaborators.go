package ports

import (
	"context"

	"github.com/FabioCLima/healthbot-project/pkg/domain"
)

// SearchProvider executes a query against an external search service and
// returns ranked snippets. An empty slice with a nil error means the query
// produced no results; that is a recoverable condition, not a failure.
type SearchProvider interface {
	Search(ctx context.Context, query string) ([]domain.SearchResult, error)
}

// Generator turns a prompt pair into free text. Implementations may call a
// hosted language model; failures and malformed output are returned as
// errors so the calling step can fail atomically.
type Generator interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}
