package ai

import (
	_ "embed"
	"text/template"
)

//go:embed prompts/eligibility.md
var eligibilityPromptRaw string

//go:embed prompts/roadmap.md
var roadmapPromptRaw string

//go:embed prompts/analyze.md
var analyzePromptRaw string

// Parsed once at package init; reused on every call.
var (
	eligibilityTemplate = template.Must(template.New("eligibility").Parse(eligibilityPromptRaw))
	roadmapTemplate     = template.Must(template.New("roadmap").Parse(roadmapPromptRaw))
	analyzeTemplate     = template.Must(template.New("analyze").Parse(analyzePromptRaw))
)

const (
	advisorSystemPrompt = "You are a career advisor AI that analyzes job requirements and candidate qualifications.\nYou must respond ONLY with valid JSON, no other text."
	coachSystemPrompt   = "You are InternAI, a friendly career coach for students looking for internships and first jobs. Keep answers short, practical and encouraging."
)
