package ai

import (
	"context"
	"fmt"

	"github.com/internai/internai/internal/model"
)

// UnconfiguredProvider stands in when no API key is set. Every call fails
// with model.ErrNotConfigured before touching the network.
type UnconfiguredProvider struct{}

// NewUnconfiguredProvider returns an UnconfiguredProvider.
func NewUnconfiguredProvider() *UnconfiguredProvider {
	return &UnconfiguredProvider{}
}

// Complete always returns model.ErrNotConfigured.
func (UnconfiguredProvider) Complete(context.Context, Request) (string, error) {
	return "", fmt.Errorf("%w: set GROQ_API_KEY or ai.api_key", model.ErrNotConfigured)
}
