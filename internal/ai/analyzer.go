package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/internai/internai/internal/model"
	"github.com/internai/internai/internal/skill"
)

var defaultAnalyzeSkills = []string{"React", "JavaScript", "Node.js", "Web Technologies"}

// maxJDLength bounds the pasted description sent to the model.
const maxJDLength = 12000

type rawAnalysis struct {
	Title           string   `json:"title"`
	Company         string   `json:"company"`
	Location        string   `json:"location"`
	MatchPercentage float64  `json:"matchPercentage"`
	MatchedSkills   []string `json:"matchedSkills"`
	MissingSkills   []string `json:"missingSkills"`
	Advice          string   `json:"advice"`
}

// AnalyzeJD extracts posting details from a pasted job description and
// scores it against skills.
func (a *Advisor) AnalyzeJD(ctx context.Context, skills []string, jdText string) (*model.JDAnalysis, error) {
	jdText = strings.TrimSpace(jdText)
	if jdText == "" {
		return nil, fmt.Errorf("%w: job description text is required", model.ErrInvalidInput)
	}
	if len(jdText) > maxJDLength {
		jdText = jdText[:maxJDLength]
	}
	skills = skill.Dedupe(skills)
	if len(skills) == 0 {
		skills = defaultAnalyzeSkills
	}

	var raw rawAnalysis
	data := struct{ JDText, Skills string }{jdText, skillList(skills, "")}
	if err := a.completeJSON(ctx, analyzeTemplate, data, &raw); err != nil {
		return nil, err
	}

	pct := clampScore(raw.MatchPercentage)
	matched := skill.Dedupe(raw.MatchedSkills)
	out := &model.JDAnalysis{
		Title:           orDefault(raw.Title, "Not specified"),
		Company:         orDefault(raw.Company, "Not specified"),
		Location:        orDefault(raw.Location, "Not specified"),
		MatchPercentage: pct,
		MatchedSkills:   matched,
		MissingSkills:   skill.Subtract(skill.Dedupe(raw.MissingSkills), matched),
		IsEligible:      pct >= model.EligibilityThreshold,
		Advice:          strings.TrimSpace(raw.Advice),
	}
	a.logger.Info("job description analyzed", "title", out.Title, "match", pct)
	return out, nil
}
