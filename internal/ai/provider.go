package ai

import (
	"context"

	"github.com/internai/internai/internal/model"
)

// Request is one chat completion call.
type Request struct {
	System      string
	Messages    []model.ChatMessage
	Temperature float64
	MaxTokens   int
	// JSON asks the provider to constrain output to a JSON object.
	JSON bool
}

// LLMProvider sends a chat request to an LLM and returns the raw text response.
type LLMProvider interface {
	Complete(ctx context.Context, req Request) (string, error)
}
