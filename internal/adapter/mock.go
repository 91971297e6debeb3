package adapter

import (
	"context"
	"strings"
	"time"

	"github.com/internai/internai/internal/model"
)

const defaultMockLocation = "Bengaluru Urban"

// MockSource serves fixed development postings when no RapidAPI key is set.
type MockSource struct {
	now func() time.Time
}

// NewMockSource creates a MockSource stamped with the current time.
func NewMockSource() *MockSource {
	return &MockSource{now: time.Now}
}

// Search returns the two fixture postings. Location is the requested one, or
// Bengaluru Urban when none was given.
func (m *MockSource) Search(_ context.Context, q model.SearchQuery) ([]model.JobPosting, error) {
	location := strings.TrimSpace(q.Location)
	if location == "" {
		location = defaultMockLocation
	}
	now := m.now().UTC()
	base := model.JobPosting{
		Company:      "KodNest Technologies Pvt Ltd",
		Location:     location,
		Compensation: "₹23,999",
		Link:         "https://kodnest.com",
		Logo:         "https://logo.clearbit.com/kodnest.com",
		SourceAt:     now,
		Type:         model.TypeInternship,
		Source:       model.SourceMock,
		Status:       model.StatusActive,
	}

	python := base
	python.ID = "mock_v2_1"
	python.Title = "Python Full Stack Using AI"
	python.WorkMode = model.WorkModeOnSite
	python.Description = "A 4-month project-driven Python internship where VTU students build one complete system..."
	python.ApplyBy = "2026-05-31"
	python.RequiredSkills = []string{"Python", "Django", "SQL", "React"}

	data := base
	data.ID = "mock_v2_2"
	data.Title = "Data Science Using AI Internship"
	data.WorkMode = model.WorkModeHybrid
	data.Description = "A 4-month beginner-friendly data science internship where VTU students build one insight..."
	data.ApplyBy = "2026-03-31"
	data.RequiredSkills = []string{"Python", "Pandas", "Machine Learning", "SQL"}

	return []model.JobPosting{python, data}, nil
}
