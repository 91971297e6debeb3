package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/internai/internai/internal/model"
)

// maxHistory bounds how many earlier turns are replayed to the model.
const maxHistory = 20

// Chat answers message in the context of history. History roles "user",
// "assistant" and the client-side "model" are accepted; anything else is dropped.
func (a *Advisor) Chat(ctx context.Context, message string, history []model.ChatMessage) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", fmt.Errorf("%w: message is required", model.ErrInvalidInput)
	}

	if len(history) > maxHistory {
		history = history[len(history)-maxHistory:]
	}
	msgs := make([]model.ChatMessage, 0, len(history)+1)
	for _, h := range history {
		content := strings.TrimSpace(h.Content)
		if content == "" {
			continue
		}
		switch h.Role {
		case "user":
			msgs = append(msgs, model.ChatMessage{Role: "user", Content: content})
		case "model", "assistant":
			msgs = append(msgs, model.ChatMessage{Role: "assistant", Content: content})
		}
	}
	msgs = append(msgs, model.ChatMessage{Role: "user", Content: message})

	reply, err := a.provider.Complete(ctx, Request{
		System:      coachSystemPrompt,
		Messages:    msgs,
		Temperature: chatTemperature,
		MaxTokens:   chatMaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("llm complete: %w", err)
	}
	return strings.TrimSpace(reply), nil
}
