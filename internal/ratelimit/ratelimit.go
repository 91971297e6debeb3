package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/internai/internai/internal/model"
)

// UpstreamLimiter hands out one token-bucket limiter per upstream name, so
// calls to the job API and the LLM never block each other.
type UpstreamLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	every    time.Duration
	burst    int
}

// NewUpstreamLimiter allows burst requests at once per upstream, refilling one
// token every interval.
func NewUpstreamLimiter(every time.Duration, burst int) *UpstreamLimiter {
	if burst < 1 {
		burst = 1
	}
	return &UpstreamLimiter{
		limiters: make(map[string]*rate.Limiter),
		every:    every,
		burst:    burst,
	}
}

func (u *UpstreamLimiter) limiter(upstream string) *rate.Limiter {
	u.mu.Lock()
	defer u.mu.Unlock()
	l, ok := u.limiters[upstream]
	if !ok {
		l = rate.NewLimiter(rate.Every(u.every), u.burst)
		u.limiters[upstream] = l
	}
	return l
}

// Wait blocks until the named upstream may be called.
// Returns an error if the context is cancelled while waiting.
func (u *UpstreamLimiter) Wait(ctx context.Context, upstream string) error {
	if err := u.limiter(upstream).Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter wait for %s: %w", upstream, err)
	}
	return nil
}

// Searcher is a decorator that waits for the upstream's limiter before
// delegating to the wrapped JobSearcher.
type Searcher struct {
	inner    model.JobSearcher
	limiter  *UpstreamLimiter
	upstream string
}

// NewSearcher wraps a JobSearcher with rate limiting. Searchers hitting the
// same upstream should share one UpstreamLimiter.
func NewSearcher(inner model.JobSearcher, limiter *UpstreamLimiter, upstream string) *Searcher {
	return &Searcher{
		inner:    inner,
		limiter:  limiter,
		upstream: upstream,
	}
}

func (s *Searcher) Search(ctx context.Context, q model.SearchQuery) ([]model.JobPosting, error) {
	if err := s.limiter.Wait(ctx, s.upstream); err != nil {
		return nil, err
	}
	return s.inner.Search(ctx, q)
}
