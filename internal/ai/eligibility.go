package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/internai/internai/internal/catalog"
	"github.com/internai/internai/internal/linkcheck"
	"github.com/internai/internai/internal/model"
	"github.com/internai/internai/internal/skill"
)

// rawReport is the JSON shape the eligibility prompt asks for. The score is a
// float because models occasionally emit 72.5.
type rawReport struct {
	Score              float64              `json:"eligibilityScore"`
	MatchedSkills      []string             `json:"matchedSkills"`
	MissingSkills      []string             `json:"missingSkills"`
	RequiredSkills     []string             `json:"requiredSkills"`
	Summary            string               `json:"summary"`
	InterviewQuestions []model.InterviewTip `json:"interviewQuestions"`
	Roadmap            *model.Roadmap       `json:"roadmap"`
}

type eligibilityPromptData struct {
	Title, Company, Location, Description string
	Skills                                string
	HasSkills                             bool
}

// Evaluate asks the LLM how well skills fit job and returns a normalized report:
// the score is clamped to [0,100], eligibility is derived from the score alone,
// matched and missing skills are disjoint, every roadmap link is sanitized, and
// the curated bundle for the job title is attached to the roadmap.
func (a *Advisor) Evaluate(ctx context.Context, skills []string, job model.JobPosting) (*model.EligibilityReport, error) {
	if strings.TrimSpace(job.Title) == "" {
		return nil, fmt.Errorf("%w: job title is required", model.ErrInvalidInput)
	}
	skills = skill.Dedupe(skills)

	data := eligibilityPromptData{
		Title:       job.Title,
		Company:     orDefault(job.Company, "Not specified"),
		Location:    orDefault(job.Location, "Not specified"),
		Description: orDefault(job.Description, "Not provided"),
		Skills:      skillList(skills, "No skills listed"),
		HasSkills:   len(skills) > 0,
	}

	var raw rawReport
	if err := a.completeJSON(ctx, eligibilityTemplate, data, &raw); err != nil {
		return nil, err
	}

	report := normalizeReport(raw, job.Title)
	a.logger.Info("eligibility evaluated",
		"job", job.Title,
		"company", job.Company,
		"score", report.Score,
		"eligible", report.IsEligible,
		"skills", len(skills),
	)
	return report, nil
}

func normalizeReport(raw rawReport, role string) *model.EligibilityReport {
	score := clampScore(raw.Score)
	matched := skill.Dedupe(raw.MatchedSkills)
	missing := skill.Subtract(skill.Dedupe(raw.MissingSkills), matched)

	roadmap := raw.Roadmap
	if roadmap == nil {
		roadmap = &model.Roadmap{Title: "Path to " + role}
	}
	sanitizeRoadmap(roadmap)
	curated := catalog.ForRole(role)
	roadmap.Curated = &curated

	return &model.EligibilityReport{
		Score:              score,
		IsEligible:         score >= model.EligibilityThreshold,
		MatchedSkills:      matched,
		MissingSkills:      missing,
		RequiredSkills:     skill.Dedupe(raw.RequiredSkills),
		Summary:            strings.TrimSpace(raw.Summary),
		InterviewQuestions: raw.InterviewQuestions,
		Roadmap:            roadmap,
	}
}

// sanitizeRoadmap rewrites every link in r. A phase without a playlist gets
// the curated course for its first skill.
func sanitizeRoadmap(r *model.Roadmap) {
	for i := range r.Phases {
		p := &r.Phases[i]
		switch {
		case p.Playlist != nil:
			pl := linkcheck.Sanitize(*p.Playlist, linkcheck.KindYouTube)
			p.Playlist = &pl
		case len(p.Skills) > 0:
			pl := catalog.PlaylistForSkill(p.Skills[0])
			p.Playlist = &pl
		}
		linkcheck.SanitizeAll(p.Resources, linkcheck.KindResource)
		for j := range p.Certifications {
			c := &p.Certifications[j]
			c.URL = linkcheck.Sanitize(model.Resource{Name: c.Name, URL: c.URL}, linkcheck.KindCertification).URL
		}
	}
}
