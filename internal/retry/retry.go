package retry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/internai/internai/internal/model"
)

// Searcher is a decorator that retries transient failures with exponential
// backoff and jitter before delegating to the wrapped JobSearcher.
type Searcher struct {
	inner      model.JobSearcher
	maxRetries int
	baseDelay  time.Duration
	logger     *slog.Logger
}

// NewSearcher wraps a JobSearcher with retry logic.
// maxRetries is the number of additional attempts after the first failure.
// baseDelay is the delay before the first retry, doubled on each subsequent retry.
func NewSearcher(inner model.JobSearcher, maxRetries int, baseDelay time.Duration, logger *slog.Logger) *Searcher {
	return &Searcher{
		inner:      inner,
		maxRetries: maxRetries,
		baseDelay:  baseDelay,
		logger:     logger,
	}
}

// Search runs the query, retrying on transient errors.
func (s *Searcher) Search(ctx context.Context, q model.SearchQuery) ([]model.JobPosting, error) {
	jobs, err := s.inner.Search(ctx, q)
	if err == nil {
		return jobs, nil
	}
	if !isRetryable(err) {
		return nil, err
	}

	lastErr := err
	for attempt := 1; attempt <= s.maxRetries; attempt++ {
		delay := s.backoffDelay(attempt, lastErr)

		s.logger.Warn("retrying job search after transient error",
			"keyword", q.Keyword,
			"attempt", attempt,
			"max_retries", s.maxRetries,
			"delay", delay,
			"error", lastErr,
		)

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("retry cancelled: %w", ctx.Err())
		case <-time.After(delay):
		}

		jobs, err = s.inner.Search(ctx, q)
		if err == nil {
			return jobs, nil
		}
		if !isRetryable(err) {
			return nil, err
		}
		lastErr = err
	}

	return nil, lastErr
}

// backoffDelay computes the delay for a given attempt with ±30% jitter.
// A Retry-After duration on the error (HTTP 429) takes precedence.
func (s *Searcher) backoffDelay(attempt int, err error) time.Duration {
	var httpErr *model.HTTPError
	if errors.As(err, &httpErr) && httpErr.RetryAfter > 0 {
		return httpErr.RetryAfter
	}

	delay := s.baseDelay
	for i := 1; i < attempt; i++ {
		delay *= 2
	}

	jitter := float64(delay) * 0.3
	return time.Duration(float64(delay) + (rand.Float64()*2-1)*jitter)
}

// isRetryable reports whether err is a transient failure worth retrying.
func isRetryable(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	// A bad payload or a missing key will not fix itself.
	if errors.Is(err, model.ErrMalformedResponse) || errors.Is(err, model.ErrNotConfigured) {
		return false
	}

	var httpErr *model.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == 429 || httpErr.StatusCode >= 500
	}

	// Network, DNS and similar.
	return true
}
