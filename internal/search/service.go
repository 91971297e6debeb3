// Package search answers live job queries: cache first, then the upstream
// job API, then the local job store when the upstream fails.
package search

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/internai/internai/internal/cache"
	"github.com/internai/internai/internal/filter"
	"github.com/internai/internai/internal/metrics"
	"github.com/internai/internai/internal/model"
)

// DefaultKeyword is searched when the caller gives none.
const DefaultKeyword = "internship"

// upstreamTimeout bounds a shared upstream call, retries included. The call is
// detached from its callers' contexts; each caller stops waiting on its own.
const upstreamTimeout = 45 * time.Second

// LocalSearcher is the part of the job store used as a fallback.
type LocalSearcher interface {
	SearchJobs(ctx context.Context, q filter.StoredQuery) ([]model.JobPosting, error)
}

// Result is one answered live query.
type Result struct {
	Jobs []model.JobPosting
	// Source is the upstream name, or model.SourceLocal after a fallback.
	Source string
	Cached bool
}

// Service owns the live search pipeline: cache → upstream → local fallback.
type Service struct {
	upstream model.JobSearcher
	source   string
	cache    cache.Cache
	local    LocalSearcher
	group    singleflight.Group
	timeout  time.Duration
	logger   *slog.Logger
}

// NewService creates a Service. source names the upstream in results and
// metrics (e.g. "live" or "mock"). A nil local disables the fallback.
func NewService(
	upstream model.JobSearcher,
	source string,
	c cache.Cache,
	local LocalSearcher,
	logger *slog.Logger,
) *Service {
	return &Service{
		upstream: upstream,
		source:   source,
		cache:    c,
		local:    local,
		timeout:  upstreamTimeout,
		logger:   logger,
	}
}

// Normalize fills in the default keyword and page.
func Normalize(q model.SearchQuery) model.SearchQuery {
	q.Keyword = strings.TrimSpace(q.Keyword)
	q.Location = strings.TrimSpace(q.Location)
	if q.Keyword == "" {
		q.Keyword = DefaultKeyword
	}
	if q.Page < 1 {
		q.Page = 1
	}
	return q
}

// LiveJobs answers q. A cached result is returned as-is. On a miss, concurrent
// callers with the same key share one upstream call and its result is cached.
// If the upstream fails the local store is searched instead; that result is
// not cached. An error is returned only when both fail.
func (s *Service) LiveJobs(ctx context.Context, q model.SearchQuery) (Result, error) {
	q = Normalize(q)
	key := cache.Key(q)

	jobs, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("cache read failed, treating as miss", "key", key, "error", err)
	}
	if ok {
		metrics.CacheRequests.WithLabelValues("hit").Inc()
		return Result{Jobs: jobs, Source: s.source, Cached: true}, nil
	}
	metrics.CacheRequests.WithLabelValues("miss").Inc()

	ch := s.group.DoChan(key, func() (any, error) {
		callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
		defer cancel()

		jobs, err := s.upstream.Search(callCtx, q)
		if err != nil {
			metrics.UpstreamRequests.WithLabelValues(s.source, metrics.OutcomeError).Inc()
			return nil, err
		}
		metrics.UpstreamRequests.WithLabelValues(s.source, metrics.OutcomeOK).Inc()
		if err := s.cache.Set(callCtx, key, jobs); err != nil {
			s.logger.Warn("cache write failed", "key", key, "error", err)
		}
		return jobs, nil
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return Result{}, fmt.Errorf("live search %q: %w", q.Keyword, ctx.Err())
	case res = <-ch:
	}
	if res.Err == nil {
		jobs := res.Val.([]model.JobPosting)
		s.logger.Debug("live search answered upstream", "key", key, "jobs", len(jobs), "shared", res.Shared)
		return Result{Jobs: jobs, Source: s.source}, nil
	}

	// Only this caller's own cancellation skips the fallback.
	if err := ctx.Err(); err != nil {
		return Result{}, fmt.Errorf("live search %q: %w", q.Keyword, err)
	}
	return s.fallback(ctx, q, res.Err)
}

func (s *Service) fallback(ctx context.Context, q model.SearchQuery, upstreamErr error) (Result, error) {
	if s.local == nil {
		return Result{}, fmt.Errorf("live search %q: %w", q.Keyword, upstreamErr)
	}
	s.logger.Warn("upstream search failed, falling back to local store",
		"keyword", q.Keyword,
		"location", q.Location,
		"error", upstreamErr,
	)
	metrics.Fallbacks.Inc()

	jobs, err := s.local.SearchJobs(ctx, localQuery(q))
	if err != nil {
		return Result{}, fmt.Errorf("live search %q: %w (local fallback: %v)", q.Keyword, upstreamErr, err)
	}
	return Result{Jobs: jobs, Source: model.SourceLocal}, nil
}

// localQuery maps a live query onto the store: the keyword becomes a title
// filter unless it is the default, and the location is used as a state only
// when it names one.
func localQuery(q model.SearchQuery) filter.StoredQuery {
	var sq filter.StoredQuery
	if !strings.EqualFold(q.Keyword, DefaultKeyword) {
		sq.Role = q.Keyword
	}
	if filter.ValidState(q.Location) {
		sq.State = q.Location
	}
	return sq
}
