// Package httpapi serves the InternAI REST API.
//
// Routes:
//
//	GET    /api/jobs/live                  → live search (cache, upstream, local fallback), region filtered
//	GET    /api/jobs                       → stored postings by role, company, skills, state
//	GET    /api/jobs/latest                → ten most recent stored postings
//	GET    /api/jobs/{id}                  → one stored posting
//	POST   /api/jobs                       → create posting (admin)
//	PUT    /api/jobs/{id}                  → update posting (admin)
//	DELETE /api/jobs/{id}                  → delete posting (admin)
//	GET    /api/profile, PUT /api/profile  → caller's skills and region
//	POST   /api/ai/eligibility|roadmap|analyze|interview-questions|chat
//	GET    /api/resources                  → curated bundle for a role
//	GET    /health, GET /metrics
package httpapi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/internai/internai/internal/ai"
	"github.com/internai/internai/internal/model"
	"github.com/internai/internai/internal/search"
	"github.com/internai/internai/internal/store"
)

// Server holds the dependencies shared by every handler.
type Server struct {
	search   *search.Service
	store    store.Store
	advisor  *ai.Advisor
	notifier model.Notifier
	auth     *Authenticator
	logger   *slog.Logger
}

// NewServer returns a configured Server.
func NewServer(
	svc *search.Service,
	st store.Store,
	advisor *ai.Advisor,
	notifier model.Notifier,
	auth *Authenticator,
	logger *slog.Logger,
) *Server {
	return &Server{
		search:   svc,
		store:    st,
		advisor:  advisor,
		notifier: notifier,
		auth:     auth,
		logger:   logger,
	}
}

// RegisterRoutes mounts all API routes on mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/jobs/live", s.optionalAuth(s.liveJobs))
	mux.HandleFunc("GET /api/jobs", s.listJobs)
	mux.HandleFunc("GET /api/jobs/latest", s.latestJobs)
	mux.HandleFunc("GET /api/jobs/{id}", s.getJob)
	mux.HandleFunc("POST /api/jobs", s.requireAdmin(s.createJob))
	mux.HandleFunc("PUT /api/jobs/{id}", s.requireAdmin(s.updateJob))
	mux.HandleFunc("DELETE /api/jobs/{id}", s.requireAdmin(s.deleteJob))

	mux.HandleFunc("GET /api/profile", s.requireAuth(s.getProfile))
	mux.HandleFunc("PUT /api/profile", s.requireAuth(s.putProfile))

	mux.HandleFunc("POST /api/ai/eligibility", s.requireAuth(s.eligibility))
	mux.HandleFunc("POST /api/ai/roadmap", s.requireAuth(s.roadmap))
	mux.HandleFunc("POST /api/ai/analyze", s.requireAuth(s.analyze))
	mux.HandleFunc("POST /api/ai/interview-questions", s.requireAuth(s.interviewQuestions))
	mux.HandleFunc("POST /api/ai/chat", s.requireAuth(s.chat))

	mux.HandleFunc("GET /api/resources", s.resources)

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		jsonOK(w, map[string]string{"status": "ok"})
	})
	mux.Handle("GET /metrics", promhttp.Handler())
}

// Handler returns the routed API wrapped in request logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.RegisterRoutes(mux)
	return s.logRequests(mux)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Debug("request served",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start).String(),
		)
	})
}
