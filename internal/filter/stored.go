package filter

import (
	"fmt"
	"strings"

	"github.com/internai/internai/internal/model"
	"github.com/internai/internai/internal/skill"
)

// StoredQuery selects persisted postings. Empty fields match everything.
type StoredQuery struct {
	Role    string
	Company string
	Skills  []string
	State   string
}

// ParseSkills splits a comma-separated skills parameter, dropping blanks.
func ParseSkills(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	return skill.Dedupe(strings.Split(raw, ","))
}

// Validate rejects a state that is not a known Indian state or union territory.
func (q StoredQuery) Validate() error {
	if q.State != "" && !ValidState(q.State) {
		return fmt.Errorf("%w: invalid state parameter %q", model.ErrInvalidInput, q.State)
	}
	return nil
}

// Match applies every criterion to job:
//   - role and company are case-insensitive substrings of title and company
//   - at least one of Skills is among the posting's required skills
//   - remote postings pass any state; on-site and hybrid ones must be located in it
//   - a blank or unrecognised work mode counts as on-site
//
// Only active postings match.
func (q StoredQuery) Match(job model.JobPosting) bool {
	if job.Status != "" && job.Status != model.StatusActive {
		return false
	}
	if q.Role != "" && !skill.Contains(job.Title, q.Role) {
		return false
	}
	if q.Company != "" && !skill.Contains(job.Company, q.Company) {
		return false
	}
	if len(q.Skills) > 0 && !anySkill(job.RequiredSkills, q.Skills) {
		return false
	}
	if q.State != "" && workMode(job) != model.WorkModeRemote {
		return skill.Contains(job.Location, q.State)
	}
	return true
}

func workMode(job model.JobPosting) model.WorkMode {
	mode, err := model.ParseWorkMode(string(job.WorkMode))
	if err != nil {
		return model.WorkModeOnSite
	}
	return mode
}

func anySkill(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if skill.Normalize(h) == skill.Normalize(w) {
				return true
			}
		}
	}
	return false
}
