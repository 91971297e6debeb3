package adapter

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/internai/internai/internal/model"
)

func TestJSearch_Success(t *testing.T) {
	payload := `{
		"status": "OK",
		"data": [
			{
				"job_id": "abc123",
				"job_title": "Software Engineering Intern",
				"employer_name": "Acme Labs",
				"employer_logo": null,
				"job_city": "Bengaluru",
				"job_state": "Karnataka",
				"job_country": "IN",
				"job_is_remote": false,
				"job_min_salary": 25000,
				"job_max_salary": 40000,
				"job_description": "<p>Build &amp; ship</p>   features.",
				"job_apply_link": "https://acme.example/apply",
				"job_posted_at_datetime_utc": "2026-02-10T09:00:00.000Z",
				"job_offer_expiration_datetime_utc": "2026-03-31T00:00:00.000Z",
				"job_employment_type": "INTERN"
			},
			{
				"job_id": "def456",
				"job_title": "Backend Developer",
				"employer_name": "Remote First",
				"employer_logo": "https://cdn.example/logo.png",
				"job_city": null,
				"job_state": null,
				"job_country": "IN",
				"job_is_remote": true,
				"job_description": "",
				"job_apply_link": "https://remote.example/apply",
				"job_employment_type": "FULLTIME"
			}
		]
	}`

	var gotQuery, gotKey, gotHost, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("query") + "|" + r.URL.Query().Get("page") + "|" + r.URL.Query().Get("num_pages")
		gotKey = r.Header.Get("X-RapidAPI-Key")
		gotHost = r.Header.Get("X-RapidAPI-Host")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(payload))
	}))
	defer srv.Close()

	a := NewJSearchAdapter(srv.URL, "rapid-key", srv.Client())
	jobs, err := a.Search(context.Background(), model.SearchQuery{Keyword: "intern", Location: "Karnataka", Page: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPath != "/search" {
		t.Errorf("path = %q", gotPath)
	}
	if gotQuery != "intern in Karnataka|2|1" {
		t.Errorf("query params = %q", gotQuery)
	}
	if gotKey != "rapid-key" || gotHost != "jsearch.p.rapidapi.com" {
		t.Errorf("headers = %q / %q", gotKey, gotHost)
	}
	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(jobs))
	}

	j := jobs[0]
	if j.ID != "abc123" || j.Company != "Acme Labs" {
		t.Errorf("id/company = %s/%s", j.ID, j.Company)
	}
	if j.Location != "Bengaluru Karnataka IN" {
		t.Errorf("location = %q", j.Location)
	}
	if j.WorkMode != model.WorkModeOnSite {
		t.Errorf("workMode = %q", j.WorkMode)
	}
	if j.Compensation != "₹25000" {
		t.Errorf("compensation = %q", j.Compensation)
	}
	if j.Description != "Build & ship features...." {
		t.Errorf("description = %q", j.Description)
	}
	if j.Logo != "https://logo.clearbit.com/acmelabs.com" {
		t.Errorf("logo = %q", j.Logo)
	}
	if j.ApplyBy != "2026-03-31" {
		t.Errorf("applyBy = %q", j.ApplyBy)
	}
	if j.Type != model.TypeInternship || j.Source != model.SourceLive {
		t.Errorf("type/source = %s/%s", j.Type, j.Source)
	}
	if !j.SourceAt.Equal(time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)) {
		t.Errorf("sourceAt = %v", j.SourceAt)
	}

	r := jobs[1]
	if r.Location != "IN" || r.WorkMode != model.WorkModeRemote {
		t.Errorf("remote job location/mode = %q/%q", r.Location, r.WorkMode)
	}
	if r.Compensation != "Paid" || r.ApplyBy != "ASAP" || r.Description != "" {
		t.Errorf("remote job defaults = %q/%q/%q", r.Compensation, r.ApplyBy, r.Description)
	}
	if r.Logo != "https://cdn.example/logo.png" || r.Type != model.TypeJob {
		t.Errorf("remote job logo/type = %q/%q", r.Logo, r.Type)
	}
}

func TestJSearch_DefaultsLocationAndPage(t *testing.T) {
	var gotQuery, gotPage string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("query")
		gotPage = r.URL.Query().Get("page")
		w.Write([]byte(`{"data": []}`))
	}))
	defer srv.Close()

	a := NewJSearchAdapter(srv.URL, "k", srv.Client())
	jobs, err := a.Search(context.Background(), model.SearchQuery{Keyword: "internship"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(jobs) != 0 {
		t.Errorf("expected 0 jobs, got %d", len(jobs))
	}
	if gotQuery != "internship in India" || gotPage != "1" {
		t.Errorf("query/page = %q/%q", gotQuery, gotPage)
	}
}

func TestJSearch_TruncatesDescription(t *testing.T) {
	long := strings.Repeat("é", 250)
	got := truncateDescription(long)
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("expected ellipsis, got %q", got)
	}
	if n := len([]rune(strings.TrimSuffix(got, "..."))); n != 200 {
		t.Errorf("kept %d runes, want 200", n)
	}
	if truncateDescription("short") != "short..." {
		t.Errorf("short description = %q", truncateDescription("short"))
	}
}

func TestJSearch_RateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "30")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	a := NewJSearchAdapter(srv.URL, "k", srv.Client())
	_, err := a.Search(context.Background(), model.SearchQuery{Keyword: "intern"})

	var httpErr *model.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected HTTPError, got %v", err)
	}
	if httpErr.StatusCode != http.StatusTooManyRequests {
		t.Errorf("status = %d", httpErr.StatusCode)
	}
	if httpErr.RetryAfter != 30*time.Second {
		t.Errorf("RetryAfter = %v, want 30s", httpErr.RetryAfter)
	}
	if !errors.Is(err, model.ErrUpstream) {
		t.Error("expected error to wrap ErrUpstream")
	}
}

func TestJSearch_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("bad gateway"))
	}))
	defer srv.Close()

	a := NewJSearchAdapter(srv.URL, "k", srv.Client())
	_, err := a.Search(context.Background(), model.SearchQuery{Keyword: "intern"})
	if !errors.Is(err, model.ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
	if !strings.Contains(err.Error(), "bad gateway") {
		t.Errorf("error should carry body, got %v", err)
	}
}

func TestJSearch_MalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	}))
	defer srv.Close()

	a := NewJSearchAdapter(srv.URL, "k", srv.Client())
	_, err := a.Search(context.Background(), model.SearchQuery{Keyword: "intern"})
	if !errors.Is(err, model.ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
}

func TestJSearch_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": []}`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a := NewJSearchAdapter(srv.URL, "k", srv.Client())
	_, err := a.Search(ctx, model.SearchQuery{Keyword: "intern"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestParseRetryAfter(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"", 0},
		{"120", 120 * time.Second},
		{" 5 ", 5 * time.Second},
		{"-1", 0},
		{"Wed, 21 Oct 2026 07:28:00 GMT", 0},
	}
	for _, tt := range tests {
		if got := parseRetryAfter(tt.in); got != tt.want {
			t.Errorf("parseRetryAfter(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestExtractText(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain text", "plain text"},
		{"<p>Hello</p><p>World</p>", "Hello World"},
		{"&lt;b&gt;bold&lt;/b&gt; text", "bold text"},
		{"  lots \n\n of   space ", "lots of space"},
	}
	for _, tt := range tests {
		if got := extractText(tt.in); got != tt.want {
			t.Errorf("extractText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMockSource(t *testing.T) {
	m := NewMockSource()

	jobs, err := m.Search(context.Background(), model.SearchQuery{Keyword: "internship"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(jobs))
	}
	if jobs[0].Title != "Python Full Stack Using AI" || jobs[0].WorkMode != model.WorkModeOnSite {
		t.Errorf("first job = %q/%q", jobs[0].Title, jobs[0].WorkMode)
	}
	if jobs[1].Title != "Data Science Using AI Internship" || jobs[1].WorkMode != model.WorkModeHybrid {
		t.Errorf("second job = %q/%q", jobs[1].Title, jobs[1].WorkMode)
	}
	for _, j := range jobs {
		if j.Location != "Bengaluru Urban" {
			t.Errorf("default location = %q", j.Location)
		}
		if j.Source != model.SourceMock || j.Compensation != "₹23,999" {
			t.Errorf("source/compensation = %s/%s", j.Source, j.Compensation)
		}
	}

	jobs, _ = m.Search(context.Background(), model.SearchQuery{Location: "Pune"})
	if jobs[0].Location != "Pune" || jobs[1].Location != "Pune" {
		t.Errorf("requested location not echoed: %q/%q", jobs[0].Location, jobs[1].Location)
	}
}
