package llm

import (
	"context"
	"errors"
)

// Client abstracts the text-generation collaborator used for summaries,
// suggestions and question answering.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

var (
	// ErrTimeout signals the collaborator did not answer within its deadline.
	ErrTimeout = errors.New("llm timeout")
	// ErrUnavailable signals no collaborator is configured or it is down.
	ErrUnavailable = errors.New("llm unavailable")
)

// Disabled is the client used when no provider is configured.
type Disabled struct{}

// Complete always fails with ErrUnavailable.
func (Disabled) Complete(ctx context.Context, prompt string) (string, error) {
	_ = ctx
	_ = prompt
	return "", ErrUnavailable
}
