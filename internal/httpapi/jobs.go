package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/internai/internai/internal/filter"
	"github.com/internai/internai/internal/model"
	"github.com/internai/internai/internal/skill"
)

// latestLimit is how many postings GET /api/jobs/latest returns.
const latestLimit = 10

// Response headers describing how a live search was answered.
const (
	headerJobsSource = "X-Jobs-Source"
	headerCache      = "X-Cache"
)

// jobInput is the body of POST /api/jobs.
type jobInput struct {
	Title          string   `json:"title"`
	Company        string   `json:"company"`
	Location       string   `json:"location"`
	Description    string   `json:"description"`
	WorkMode       string   `json:"workMode"`
	Type           string   `json:"type"`
	Compensation   string   `json:"compensation"`
	RequiredSkills []string `json:"requiredSkills"`
	Link           string   `json:"link"`
	Logo           string   `json:"logo"`
	ApplyBy        string   `json:"applyBy"`
	Status         string   `json:"status"`
}

// jobPatch is the body of PUT /api/jobs/{id}; absent fields are left alone.
type jobPatch struct {
	Title          *string   `json:"title"`
	Company        *string   `json:"company"`
	Location       *string   `json:"location"`
	Description    *string   `json:"description"`
	WorkMode       *string   `json:"workMode"`
	Compensation   *string   `json:"compensation"`
	RequiredSkills *[]string `json:"requiredSkills"`
	Link           *string   `json:"link"`
	ApplyBy        *string   `json:"applyBy"`
	Status         *string   `json:"status"`
}

func (s *Server) liveJobs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := 1
	if raw := q.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			s.fail(w, r, "Invalid page parameter", fmt.Errorf("%w: page %q", model.ErrInvalidInput, raw))
			return
		}
		page = n
	}

	res, err := s.search.LiveJobs(r.Context(), model.SearchQuery{
		Keyword:  q.Get("keyword"),
		Location: q.Get("location"),
		Page:     page,
	})
	if err != nil {
		s.fail(w, r, "Failed to fetch live jobs", err)
		return
	}

	region := s.regionFor(r.Context(), q.Get("state"))
	jobs := filter.Apply(filter.NewRegionFilter(region), res.Jobs)

	w.Header().Set(headerJobsSource, res.Source)
	if res.Cached {
		w.Header().Set(headerCache, "HIT")
	} else {
		w.Header().Set(headerCache, "MISS")
	}
	jsonOK(w, nonNilJobs(jobs))
}

// regionFor returns the explicit state, else the signed-in caller's profile
// region, else "" (no filtering).
func (s *Server) regionFor(ctx context.Context, state string) string {
	if state = strings.TrimSpace(state); state != "" {
		return state
	}
	id, ok := identityFrom(ctx)
	if !ok {
		return ""
	}
	p, err := s.store.GetProfile(ctx, id.UserID)
	if err != nil {
		return ""
	}
	return p.Region
}

func (s *Server) listJobs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	sq := filter.StoredQuery{
		Role:    strings.TrimSpace(q.Get("role")),
		Company: strings.TrimSpace(q.Get("company")),
		Skills:  filter.ParseSkills(q.Get("skills")),
		State:   strings.TrimSpace(q.Get("state")),
	}
	if err := sq.Validate(); err != nil {
		s.fail(w, r, "Invalid state parameter", err)
		return
	}

	jobs, err := s.store.SearchJobs(r.Context(), sq)
	if err != nil {
		s.fail(w, r, "Server error", err)
		return
	}
	jsonOK(w, nonNilJobs(jobs))
}

func (s *Server) latestJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := s.store.LatestJobs(r.Context(), latestLimit)
	if err != nil {
		s.fail(w, r, "Server error", err)
		return
	}
	jsonOK(w, nonNilJobs(jobs))
}

func (s *Server) getJob(w http.ResponseWriter, r *http.Request) {
	job, err := s.store.GetJob(r.Context(), r.PathValue("id"))
	if err != nil {
		s.fail(w, r, "Job not found", err)
		return
	}
	jsonOK(w, job)
}

func (s *Server) createJob(w http.ResponseWriter, r *http.Request) {
	var in jobInput
	if err := decodeBody(r, jobSchema, &in); err != nil {
		s.fail(w, r, "Invalid job", err)
		return
	}
	mode, err := model.ParseWorkMode(in.WorkMode)
	if err != nil {
		s.fail(w, r, "Invalid job", err)
		return
	}

	id, _ := identityFrom(r.Context())
	job := model.JobPosting{
		Title:          strings.TrimSpace(in.Title),
		Company:        strings.TrimSpace(in.Company),
		Location:       strings.TrimSpace(in.Location),
		Description:    in.Description,
		WorkMode:       mode,
		Type:           in.Type,
		Compensation:   in.Compensation,
		RequiredSkills: skill.Dedupe(in.RequiredSkills),
		Link:           in.Link,
		Logo:           in.Logo,
		ApplyBy:        in.ApplyBy,
		Status:         in.Status,
		PostedBy:       id.UserID,
	}
	if job.Type == "" {
		job.Type = model.TypeInternship
	}

	if err := s.store.CreateJob(r.Context(), &job); err != nil {
		s.fail(w, r, "Server error", err)
		return
	}
	s.logger.Info("job created", "id", job.ID, "company", job.Company, "title", job.Title, "posted_by", job.PostedBy)
	s.announce(job)
	jsonStatus(w, http.StatusCreated, job)
}

// announce hands a new posting to the notifier without blocking the request.
func (s *Server) announce(job model.JobPosting) {
	if s.notifier == nil {
		return
	}
	go func() {
		if err := s.notifier.Notify([]model.JobPosting{job}); err != nil {
			s.logger.Error("announcing job failed", "id", job.ID, "error", err)
		}
	}()
}

func (s *Server) updateJob(w http.ResponseWriter, r *http.Request) {
	var patch jobPatch
	if err := decodeBody(r, jobPatchSchema, &patch); err != nil {
		s.fail(w, r, "Invalid job", err)
		return
	}

	job, err := s.store.GetJob(r.Context(), r.PathValue("id"))
	if err != nil {
		s.fail(w, r, "Job not found", err)
		return
	}
	if err := patch.apply(job); err != nil {
		s.fail(w, r, "Invalid job", err)
		return
	}
	if err := s.store.UpdateJob(r.Context(), *job); err != nil {
		s.fail(w, r, "Server error", err)
		return
	}
	jsonOK(w, job)
}

func (p jobPatch) apply(job *model.JobPosting) error {
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = strings.TrimSpace(*v)
		}
	}
	set(&job.Title, p.Title)
	set(&job.Company, p.Company)
	set(&job.Location, p.Location)
	set(&job.Description, p.Description)
	set(&job.Compensation, p.Compensation)
	set(&job.Link, p.Link)
	set(&job.ApplyBy, p.ApplyBy)
	set(&job.Status, p.Status)
	if p.RequiredSkills != nil {
		job.RequiredSkills = skill.Dedupe(*p.RequiredSkills)
	}
	if p.WorkMode != nil {
		mode, err := model.ParseWorkMode(*p.WorkMode)
		if err != nil {
			return err
		}
		job.WorkMode = mode
	}
	return nil
}

func (s *Server) deleteJob(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteJob(r.Context(), r.PathValue("id")); err != nil {
		s.fail(w, r, "Job not found", err)
		return
	}
	jsonOK(w, map[string]string{"message": "Job deleted successfully"})
}

func nonNilJobs(jobs []model.JobPosting) []model.JobPosting {
	if jobs == nil {
		return []model.JobPosting{}
	}
	return jobs
}
