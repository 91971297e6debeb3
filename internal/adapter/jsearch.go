package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/internai/internai/internal/model"
)

const (
	// DefaultJSearchBaseURL is the RapidAPI endpoint for JSearch.
	DefaultJSearchBaseURL = "https://jsearch.p.rapidapi.com"
	jsearchHost           = "jsearch.p.rapidapi.com"

	defaultSearchLocation = "India"
	descriptionLimit      = 200
)

type jsearchJob struct {
	ID             string   `json:"job_id"`
	Title          string   `json:"job_title"`
	Employer       string   `json:"employer_name"`
	EmployerLogo   string   `json:"employer_logo"`
	City           string   `json:"job_city"`
	State          string   `json:"job_state"`
	Country        string   `json:"job_country"`
	IsRemote       bool     `json:"job_is_remote"`
	MinSalary      *float64 `json:"job_min_salary"`
	MaxSalary      *float64 `json:"job_max_salary"`
	Description    string   `json:"job_description"`
	ApplyLink      string   `json:"job_apply_link"`
	PostedAt       string   `json:"job_posted_at_datetime_utc"`
	ExpiresAt      string   `json:"job_offer_expiration_datetime_utc"`
	EmploymentType string   `json:"job_employment_type"`
}

type jsearchResponse struct {
	Status string       `json:"status"`
	Data   []jsearchJob `json:"data"`
}

// JSearchAdapter queries the JSearch job-search API on RapidAPI.
type JSearchAdapter struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewJSearchAdapter creates an adapter. An empty baseURL uses DefaultJSearchBaseURL.
func NewJSearchAdapter(baseURL, apiKey string, client *http.Client) *JSearchAdapter {
	if baseURL == "" {
		baseURL = DefaultJSearchBaseURL
	}
	return &JSearchAdapter{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  client,
	}
}

// Search fetches one page of postings for q and normalizes them into JobPostings.
func (a *JSearchAdapter) Search(ctx context.Context, q model.SearchQuery) ([]model.JobPosting, error) {
	location := q.Location
	if strings.TrimSpace(location) == "" {
		location = defaultSearchLocation
	}
	page := q.Page
	if page < 1 {
		page = 1
	}

	params := url.Values{}
	params.Set("query", fmt.Sprintf("%s in %s", q.Keyword, location))
	params.Set("page", strconv.Itoa(page))
	params.Set("num_pages", "1")
	endpoint := a.baseURL + "/search?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("jsearch %q: %w", q.Keyword, err)
	}
	req.Header.Set("X-RapidAPI-Key", a.apiKey)
	req.Header.Set("X-RapidAPI-Host", jsearchHost)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("jsearch %q: %w: %w", q.Keyword, model.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &model.HTTPError{
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
			Err:        fmt.Errorf("jsearch %q: %w: %s", q.Keyword, model.ErrUpstream, strings.TrimSpace(string(body))),
		}
	}

	var jr jsearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&jr); err != nil {
		return nil, fmt.Errorf("jsearch %q: %w: %v", q.Keyword, model.ErrMalformedResponse, err)
	}

	jobs := make([]model.JobPosting, 0, len(jr.Data))
	for _, j := range jr.Data {
		jobs = append(jobs, toPosting(j))
	}
	return jobs, nil
}

func toPosting(j jsearchJob) model.JobPosting {
	job := model.JobPosting{
		ID:          j.ID,
		Title:       j.Title,
		Company:     j.Employer,
		Location:    strings.Join(strings.Fields(j.City+" "+j.State+" "+j.Country), " "),
		Description: truncateDescription(extractText(j.Description)),
		WorkMode:    model.WorkModeOnSite,
		Link:        j.ApplyLink,
		Logo:        j.EmployerLogo,
		ApplyBy:     "ASAP",
		Source:      model.SourceLive,
		Status:      model.StatusActive,
		Type:        employmentType(j.EmploymentType),
	}
	if j.IsRemote {
		job.WorkMode = model.WorkModeRemote
	}
	if job.Logo == "" {
		job.Logo = clearbitLogo(j.Employer)
	}
	job.Compensation = compensation(j.MinSalary, j.MaxSalary)
	if t, err := time.Parse(time.RFC3339, j.PostedAt); err == nil {
		job.SourceAt = t
	}
	if t, err := time.Parse(time.RFC3339, j.ExpiresAt); err == nil {
		job.ApplyBy = t.Format(time.DateOnly)
	}
	return job
}

// truncateDescription keeps the first 200 runes and marks the cut with "...".
func truncateDescription(s string) string {
	if s == "" {
		return ""
	}
	if utf8.RuneCountInString(s) > descriptionLimit {
		s = string([]rune(s)[:descriptionLimit])
	}
	return s + "..."
}

// compensation renders the lower salary bound, else the upper one, else "Paid".
func compensation(lo, hi *float64) string {
	for _, v := range []*float64{lo, hi} {
		if v != nil && *v > 0 {
			return "₹" + strconv.FormatFloat(*v, 'f', -1, 64)
		}
	}
	return "Paid"
}

func clearbitLogo(employer string) string {
	name := strings.ToLower(strings.Join(strings.Fields(employer), ""))
	if name == "" {
		return ""
	}
	return "https://logo.clearbit.com/" + name + ".com"
}

func employmentType(t string) string {
	if strings.Contains(strings.ToLower(t), "intern") {
		return model.TypeInternship
	}
	return model.TypeJob
}
