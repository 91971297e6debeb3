// Package filter narrows job postings by region and by stored-search criteria.
package filter

import (
	"github.com/internai/internai/internal/model"
	"github.com/internai/internai/internal/skill"
)

const remoteMarker = "remote"

// RegionFilter keeps postings located in a region or marked remote.
// Matching is a case-insensitive substring test on the location only;
// work mode is not consulted on this path.
type RegionFilter struct {
	region string
}

// NewRegionFilter returns a filter for region. An empty region matches all.
func NewRegionFilter(region string) *RegionFilter {
	return &RegionFilter{region: skill.Normalize(region)}
}

// Match returns true if job's location contains the region or "remote".
func (f *RegionFilter) Match(job model.JobPosting) bool {
	if f.region == "" {
		return true
	}
	return skill.Contains(job.Location, f.region) || skill.Contains(job.Location, remoteMarker)
}

// Apply returns the postings f matches, in input order. With no region the
// input slice is returned unchanged.
func Apply(f *RegionFilter, jobs []model.JobPosting) []model.JobPosting {
	if f == nil || f.region == "" {
		return jobs
	}
	out := make([]model.JobPosting, 0, len(jobs))
	for _, j := range jobs {
		if f.Match(j) {
			out = append(out, j)
		}
	}
	return out
}
