package filter

import (
	"errors"
	"testing"

	"github.com/internai/internai/internal/model"
)

func job(title, location string) model.JobPosting {
	return model.JobPosting{Title: title, Location: location}
}

func TestRegionFilter_Match(t *testing.T) {
	tests := []struct {
		name      string
		region    string
		job       model.JobPosting
		wantMatch bool
	}{
		{"location contains region", "Karnataka", job("SDE Intern", "Bengaluru Karnataka IN"), true},
		{"case insensitive", "karnataka", job("SDE Intern", "BENGALURU, KARNATAKA"), true},
		{"remote always passes", "Karnataka", job("SDE Intern", "Remote, India"), true},
		{"other region rejected", "Karnataka", job("SDE Intern", "Pune Maharashtra IN"), false},
		{"work mode is not consulted", "Karnataka", model.JobPosting{Location: "Pune", WorkMode: model.WorkModeRemote}, false},
		{"empty region passes all", "", job("Any Role", "Anywhere"), true},
		{"whitespace region passes all", "   ", job("Any Role", "Anywhere"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewRegionFilter(tt.region).Match(tt.job); got != tt.wantMatch {
				t.Errorf("Match() = %v, want %v", got, tt.wantMatch)
			}
		})
	}
}

func TestApply_NoRegionReturnsInputUnchanged(t *testing.T) {
	jobs := []model.JobPosting{job("A", "Delhi"), job("B", "Remote"), job("C", "Goa")}

	got := Apply(NewRegionFilter(""), jobs)
	if len(got) != len(jobs) || &got[0] != &jobs[0] {
		t.Fatal("expected the same slice back")
	}
	if Apply(nil, jobs) == nil {
		t.Fatal("nil filter should pass input through")
	}
}

func TestApply_KeepsOrder(t *testing.T) {
	jobs := []model.JobPosting{
		job("A", "New Delhi, Delhi"),
		job("B", "Mumbai Maharashtra"),
		job("C", "remote"),
		job("D", "Delhi NCR"),
	}
	got := Apply(NewRegionFilter("Delhi"), jobs)
	var titles string
	for _, j := range got {
		titles += j.Title
	}
	if titles != "ACD" {
		t.Errorf("titles = %q, want ACD", titles)
	}
}

func TestStoredQuery_Match(t *testing.T) {
	base := model.JobPosting{
		Title:          "Frontend Developer",
		Company:        "Meta",
		Location:       "Bengaluru, Karnataka",
		WorkMode:       model.WorkModeOnSite,
		RequiredSkills: []string{"React", "JavaScript", "CSS"},
		Status:         model.StatusActive,
	}
	remote := base
	remote.WorkMode = model.WorkModeRemote
	remote.Location = "Anywhere"
	hybridElsewhere := base
	hybridElsewhere.WorkMode = model.WorkModeHybrid
	hybridElsewhere.Location = "Hyderabad, Telangana"
	inactive := base
	inactive.Status = model.StatusInactive
	unsetMode := base
	unsetMode.WorkMode = ""
	oddMode := base
	oddMode.WorkMode = "flexible"
	lowerRemote := remote
	lowerRemote.WorkMode = "remote"

	tests := []struct {
		name string
		q    StoredQuery
		job  model.JobPosting
		want bool
	}{
		{"empty query", StoredQuery{}, base, true},
		{"role substring", StoredQuery{Role: "frontend"}, base, true},
		{"role miss", StoredQuery{Role: "backend"}, base, false},
		{"company substring", StoredQuery{Company: "me"}, base, true},
		{"any skill", StoredQuery{Skills: []string{"Go", "react"}}, base, true},
		{"no skill", StoredQuery{Skills: []string{"Go", "Rust"}}, base, false},
		{"on-site in state", StoredQuery{State: "Karnataka"}, base, true},
		{"remote passes any state", StoredQuery{State: "Kerala"}, remote, true},
		{"hybrid elsewhere rejected", StoredQuery{State: "Karnataka"}, hybridElsewhere, false},
		{"inactive never matches", StoredQuery{}, inactive, false},
		{"blank mode in state", StoredQuery{State: "Karnataka"}, unsetMode, true},
		{"blank mode elsewhere", StoredQuery{State: "Kerala"}, unsetMode, false},
		{"unknown mode in state", StoredQuery{State: "karnataka"}, oddMode, true},
		{"lowercase remote passes", StoredQuery{State: "Kerala"}, lowerRemote, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.q.Match(tt.job); got != tt.want {
				t.Errorf("Match() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStoredQuery_Validate(t *testing.T) {
	if err := (StoredQuery{State: "Tamil Nadu"}).Validate(); err != nil {
		t.Errorf("valid state rejected: %v", err)
	}
	if err := (StoredQuery{}).Validate(); err != nil {
		t.Errorf("empty state rejected: %v", err)
	}
	err := (StoredQuery{State: "California"}).Validate()
	if !errors.Is(err, model.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestParseSkills(t *testing.T) {
	got := ParseSkills("React, Node.js,,react ")
	if len(got) != 2 || got[0] != "React" || got[1] != "Node.js" {
		t.Errorf("ParseSkills = %v", got)
	}
	if ParseSkills("  ") != nil {
		t.Error("blank input should yield nil")
	}
}

func TestIndianStates(t *testing.T) {
	if len(IndianStates) != 36 {
		t.Errorf("expected 28 states + 8 union territories, got %d", len(IndianStates))
	}
	if !ValidState(" delhi ") {
		t.Error("ValidState should ignore case and whitespace")
	}
}
