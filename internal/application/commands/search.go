package commands

import (
	"context"
	"fmt"

	"flowboard/internal/application"
	"flowboard/internal/domain"
	"flowboard/internal/ports"
)

// SearchResult contains the matching nodes across all indexed tasks
type SearchResult struct {
	Hits    []domain.NodeHit
	Message string
}

// SearchCommand finds nodes by label via the task index
type SearchCommand struct {
	index ports.TaskIndex
	Query string
}

// NewSearchCommand creates a new SearchCommand
func NewSearchCommand(index ports.TaskIndex, query string) *SearchCommand {
	return &SearchCommand{index: index, Query: query}
}

// Validate checks if the search operation is valid
func (c *SearchCommand) Validate() error {
	return application.ValidateRequired("query", c.Query)
}

// Execute runs the search command
func (c *SearchCommand) Execute(ctx context.Context) (*SearchResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	hits, err := c.index.SearchNodes(c.Query)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	return &SearchResult{
		Hits:    hits,
		Message: fmt.Sprintf("%d matches", len(hits)),
	}, nil
}
