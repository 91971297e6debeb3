package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/internai/internai/internal/catalog"
	"github.com/internai/internai/internal/model"
	"github.com/internai/internai/internal/skill"
)

var defaultRoadmapSkills = []string{"Software Development", "Problem Solving", "Communication"}

// Roadmap asks the LLM for a six-month plan toward dreamJob. The recommended
// resources are always the curated bundle for the role, never the model's.
func (a *Advisor) Roadmap(ctx context.Context, skills []string, dreamJob string) (*model.CareerRoadmap, error) {
	dreamJob = strings.TrimSpace(dreamJob)
	if dreamJob == "" {
		return nil, fmt.Errorf("%w: dream job is required", model.ErrInvalidInput)
	}
	skills = skill.Dedupe(skills)
	if len(skills) == 0 {
		skills = defaultRoadmapSkills
	}

	var out model.CareerRoadmap
	data := struct{ DreamJob, Skills string }{dreamJob, skillList(skills, "")}
	if err := a.completeJSON(ctx, roadmapTemplate, data, &out); err != nil {
		return nil, err
	}

	out.DreamJob = dreamJob
	out.RecommendedResources = catalog.Flatten(catalog.ForRole(dreamJob))
	a.logger.Info("roadmap generated", "dream_job", dreamJob, "phases", len(out.Phases))
	return &out, nil
}
