package ai

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"text/template"

	"github.com/internai/internai/internal/model"
)

// Generation settings per call kind.
const (
	structuredTemperature = 0.7
	structuredMaxTokens   = 2048
	chatTemperature       = 0.8
	chatMaxTokens         = 500
)

// Advisor turns profiles and postings into LLM-backed career advice:
// eligibility reports, roadmaps, job description analyses and chat replies.
// Nothing it produces is cached or persisted.
type Advisor struct {
	provider LLMProvider
	logger   *slog.Logger
}

// NewAdvisor creates an Advisor backed by provider.
func NewAdvisor(provider LLMProvider, logger *slog.Logger) *Advisor {
	return &Advisor{
		provider: provider,
		logger:   logger,
	}
}

// completeJSON renders tmpl with data, sends it with the advisor system
// prompt, and decodes the JSON answer into v.
func (a *Advisor) completeJSON(ctx context.Context, tmpl *template.Template, data any, v any) error {
	var promptBuf bytes.Buffer
	if err := tmpl.Execute(&promptBuf, data); err != nil {
		return fmt.Errorf("render prompt: %w", err)
	}

	raw, err := a.provider.Complete(ctx, Request{
		System:      advisorSystemPrompt,
		Messages:    []model.ChatMessage{{Role: "user", Content: promptBuf.String()}},
		Temperature: structuredTemperature,
		MaxTokens:   structuredMaxTokens,
		JSON:        true,
	})
	if err != nil {
		return fmt.Errorf("llm complete: %w", err)
	}

	if err := DecodeJSON(raw, v); err != nil {
		a.logger.Warn("could not decode llm response", "template", tmpl.Name(), "bytes", len(raw), "error", err)
		return fmt.Errorf("decode %s response: %w", tmpl.Name(), err)
	}
	return nil
}

// skillList renders skills for a prompt, or fallback when there are none.
func skillList(skills []string, fallback string) string {
	if len(skills) == 0 {
		return fallback
	}
	return strings.Join(skills, ", ")
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

// clampScore rounds a model-supplied score into [0,100].
func clampScore(f float64) int {
	if math.IsNaN(f) {
		return 0
	}
	return int(math.Round(math.Max(0, math.Min(100, f))))
}
