package httpapi

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/internai/internai/internal/model"
)

// maxBodyBytes bounds request bodies; job descriptions are the largest input.
const maxBodyBytes = 1 << 20

// Request body schemas. Validation runs before decoding so clients get every
// violation at once.
var (
	jobSchema = mustSchema(map[string]any{
		"type":     "object",
		"required": []any{"title", "company"},
		"properties": map[string]any{
			"title":          nonEmptyString,
			"company":        nonEmptyString,
			"location":       map[string]any{"type": "string"},
			"description":    map[string]any{"type": "string"},
			"workMode":       map[string]any{"type": "string"},
			"type":           map[string]any{"type": "string", "enum": []any{model.TypeInternship, model.TypeJob}},
			"compensation":   map[string]any{"type": "string"},
			"requiredSkills": stringArray,
			"link":           map[string]any{"type": "string"},
			"logo":           map[string]any{"type": "string"},
			"applyBy":        map[string]any{"type": "string"},
			"status":         map[string]any{"type": "string", "enum": []any{model.StatusActive, model.StatusInactive}},
		},
	})

	jobPatchSchema = mustSchema(map[string]any{
		"type":          "object",
		"minProperties": 1,
		"properties": map[string]any{
			"title":          nonEmptyString,
			"company":        nonEmptyString,
			"location":       map[string]any{"type": "string"},
			"description":    map[string]any{"type": "string"},
			"workMode":       map[string]any{"type": "string"},
			"compensation":   map[string]any{"type": "string"},
			"requiredSkills": stringArray,
			"link":           map[string]any{"type": "string"},
			"applyBy":        map[string]any{"type": "string"},
			"status":         map[string]any{"type": "string", "enum": []any{model.StatusActive, model.StatusInactive}},
		},
	})

	profileSchema = mustSchema(map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name":   map[string]any{"type": "string"},
			"email":  map[string]any{"type": "string"},
			"skills": stringArray,
			"region": map[string]any{"type": "string"},
		},
	})

	eligibilitySchema = mustSchema(map[string]any{
		"type":     "object",
		"required": []any{"job"},
		"properties": map[string]any{
			"job": map[string]any{
				"type":     "object",
				"required": []any{"title"},
				"properties": map[string]any{
					"title":       nonEmptyString,
					"company":     map[string]any{"type": "string"},
					"location":    map[string]any{"type": "string"},
					"description": map[string]any{"type": "string"},
				},
			},
			"userSkills": stringArray,
		},
	})

	roadmapSchema  = requiredStringSchema("dreamJob")
	analyzeSchema  = requiredStringSchema("jdText")
	questionSchema = requiredStringSchema("role")

	chatSchema = mustSchema(map[string]any{
		"type":     "object",
		"required": []any{"message"},
		"properties": map[string]any{
			"message": nonEmptyString,
			"chatHistory": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":     "object",
					"required": []any{"role", "content"},
					"properties": map[string]any{
						"role":    map[string]any{"type": "string", "enum": []any{"user", "assistant", "model"}},
						"content": map[string]any{"type": "string"},
					},
				},
			},
		},
	})
)

var (
	nonEmptyString = map[string]any{"type": "string", "minLength": 1, "pattern": `\S`}
	stringArray    = map[string]any{"type": "array", "items": map[string]any{"type": "string"}}
)

func requiredStringSchema(field string) *gojsonschema.Schema {
	return mustSchema(map[string]any{
		"type":       "object",
		"required":   []any{field},
		"properties": map[string]any{field: nonEmptyString},
	})
}

func mustSchema(doc map[string]any) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(doc))
	if err != nil {
		panic(fmt.Sprintf("compile request schema: %v", err))
	}
	return s
}

// decodeBody validates the request body against schema and decodes it into v.
// Every failure wraps model.ErrInvalidInput.
func decodeBody(r *http.Request, schema *gojsonschema.Schema, v any) error {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		return fmt.Errorf("%w: read body: %v", model.ErrInvalidInput, err)
	}
	if len(data) > maxBodyBytes {
		return fmt.Errorf("%w: body exceeds %d bytes", model.ErrInvalidInput, maxBodyBytes)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return fmt.Errorf("%w: request body is required", model.ErrInvalidInput)
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("%w: body is not valid JSON: %v", model.ErrInvalidInput, err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return fmt.Errorf("%w: %s", model.ErrInvalidInput, strings.Join(msgs, "; "))
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: decode body: %v", model.ErrInvalidInput, err)
	}
	return nil
}
