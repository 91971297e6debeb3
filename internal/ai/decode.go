package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/internai/internai/internal/model"
)

// DecodeJSON unmarshals an LLM response into v. Models sometimes wrap the
// object in prose or markdown fences, so when raw is not valid JSON the text
// between the first '{' and the last '}' is tried instead.
func DecodeJSON(raw string, v any) error {
	trimmed := strings.TrimSpace(raw)
	if !json.Valid([]byte(trimmed)) {
		start := strings.Index(trimmed, "{")
		end := strings.LastIndex(trimmed, "}")
		if start < 0 || end <= start {
			return fmt.Errorf("%w: no JSON object in response", model.ErrMalformedResponse)
		}
		trimmed = trimmed[start : end+1]
	}
	if err := json.Unmarshal([]byte(trimmed), v); err != nil {
		return fmt.Errorf("%w: %v", model.ErrMalformedResponse, err)
	}
	return nil
}
