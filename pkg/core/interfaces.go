// Package core defines the core interfaces for the debate service.
package core

import (
	"context"
)

// DebateStore defines the interface for debate persistence.
// List returns debates in creation order.
type DebateStore interface {
	// Create stores a new debate.
	Create(ctx context.Context, debate *Debate) error

	// Get retrieves a debate by ID. Returns a NotFound error for unknown IDs.
	Get(ctx context.Context, id string) (*Debate, error)

	// Update replaces the stored state of an existing debate.
	Update(ctx context.Context, debate *Debate) error

	// Delete removes a debate.
	Delete(ctx context.Context, id string) error

	// List returns all debates in creation order.
	List(ctx context.Context) ([]*Debate, error)

	// Close releases any resources held by the store.
	Close(ctx context.Context) error
}

// LLMConnection defines the interface for LLM provider integrations.
type LLMConnection interface {
	// GenerateContent sends a completion request and returns the response.
	GenerateContent(ctx context.Context, request *ChatRequest) (*ChatResponse, error)

	// Close closes the connection.
	Close(ctx context.Context) error
}
