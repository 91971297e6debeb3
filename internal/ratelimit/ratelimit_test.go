package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/internai/internai/internal/model"
)

func TestWait_SameUpstream_EnforcesInterval(t *testing.T) {
	limiter := NewUpstreamLimiter(100*time.Millisecond, 1)
	ctx := context.Background()

	// First call consumes the burst token immediately.
	if err := limiter.Wait(ctx, "jsearch"); err != nil {
		t.Fatalf("first wait: %v", err)
	}

	start := time.Now()
	if err := limiter.Wait(ctx, "jsearch"); err != nil {
		t.Fatalf("second wait: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 80*time.Millisecond {
		t.Errorf("expected >= 80ms wait, got %v", elapsed)
	}
}

func TestWait_BurstPassesImmediately(t *testing.T) {
	limiter := NewUpstreamLimiter(time.Second, 3)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := limiter.Wait(ctx, "jsearch"); err != nil {
			t.Fatalf("wait %d: %v", i, err)
		}
	}
	if elapsed := time.Since(start); elapsed > 50*time.Millisecond {
		t.Errorf("expected burst of 3 to be near-instant, got %v", elapsed)
	}
}

func TestWait_DifferentUpstreams_NoCrossBlocking(t *testing.T) {
	limiter := NewUpstreamLimiter(200*time.Millisecond, 1)
	ctx := context.Background()

	if err := limiter.Wait(ctx, "jsearch"); err != nil {
		t.Fatalf("jsearch wait: %v", err)
	}

	start := time.Now()
	if err := limiter.Wait(ctx, "groq"); err != nil {
		t.Fatalf("groq wait: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 50*time.Millisecond {
		t.Errorf("expected groq wait to be near-instant, got %v", elapsed)
	}
}

func TestWait_ContextCancellation(t *testing.T) {
	limiter := NewUpstreamLimiter(5*time.Second, 1)

	if err := limiter.Wait(context.Background(), "jsearch"); err != nil {
		t.Fatalf("first wait: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := limiter.Wait(ctx, "jsearch"); err == nil {
		t.Fatal("expected error from cancelled context, got nil")
	}
}

type recordingSearcher struct {
	called bool
}

func (r *recordingSearcher) Search(_ context.Context, _ model.SearchQuery) ([]model.JobPosting, error) {
	r.called = true
	return nil, nil
}

func TestSearcher_WaitsBeforeDelegating(t *testing.T) {
	limiter := NewUpstreamLimiter(100*time.Millisecond, 1)
	inner := &recordingSearcher{}
	s := NewSearcher(inner, limiter, "jsearch")
	ctx := context.Background()

	if _, err := s.Search(ctx, model.SearchQuery{}); err != nil {
		t.Fatalf("first search: %v", err)
	}
	if !inner.called {
		t.Fatal("inner searcher was not called on first search")
	}

	inner.called = false
	start := time.Now()
	if _, err := s.Search(ctx, model.SearchQuery{}); err != nil {
		t.Fatalf("second search: %v", err)
	}
	if !inner.called {
		t.Fatal("inner searcher was not called on second search")
	}
	if elapsed := time.Since(start); elapsed < 80*time.Millisecond {
		t.Errorf("expected >= 80ms wait on second search, got %v", elapsed)
	}
}
