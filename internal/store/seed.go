package store

import (
	"context"
	"fmt"
	"time"

	"github.com/internai/internai/internal/model"
)

// SamplePostings are inserted by Seed into an empty store.
var SamplePostings = []model.JobPosting{
	{
		Title:          "Software Engineering Intern",
		Company:        "Google",
		Location:       "Mountain View, CA",
		Description:    "Work on large-scale distributed systems and innovative products.",
		Type:           model.TypeInternship,
		WorkMode:       model.WorkModeOnSite,
		RequiredSkills: []string{"Java", "Python", "Go", "C++", "Distributed Systems"},
	},
	{
		Title:          "Frontend Developer",
		Company:        "Meta",
		Location:       "Menlo Park, CA",
		Description:    "Build the next generation of social experiences using React.",
		Type:           model.TypeJob,
		WorkMode:       model.WorkModeOnSite,
		RequiredSkills: []string{"React", "JavaScript", "CSS", "HTML", "TypeScript"},
	},
	{
		Title:          "Full Stack Developer",
		Company:        "Amazon",
		Location:       "Seattle, WA",
		Description:    "Design and implement customer-facing features on Amazon.com.",
		Type:           model.TypeJob,
		WorkMode:       model.WorkModeOnSite,
		RequiredSkills: []string{"Node.js", "Express", "React", "AWS", "SQL"},
	},
}

// Seed inserts SamplePostings when the store has no jobs and returns how many
// were written. A populated store is left untouched.
func (s *SQLStore) Seed(ctx context.Context) (int, error) {
	empty, err := s.IsEmpty(ctx)
	if err != nil {
		return 0, err
	}
	if !empty {
		return 0, nil
	}

	base := s.now().UTC()
	for i, sample := range SamplePostings {
		job := sample
		job.RequiredSkills = append([]string(nil), sample.RequiredSkills...)
		// Stagger creation times so "latest" ordering is deterministic.
		if err := s.insertJob(ctx, &job, base.Add(time.Duration(i)*time.Second)); err != nil {
			return i, fmt.Errorf("seeding %q: %w", sample.Title, err)
		}
	}
	return len(SamplePostings), nil
}
