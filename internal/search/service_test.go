package search

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/internai/internai/internal/cache"
	"github.com/internai/internai/internal/filter"
	"github.com/internai/internai/internal/model"
)

// --- Fakes ---

// countingSearcher returns canned jobs or an error and counts calls. When
// release is non-nil every call blocks until it is closed.
type countingSearcher struct {
	calls   atomic.Int32
	jobs    []model.JobPosting
	err     error
	release chan struct{}
	lastQ   model.SearchQuery
	mu      sync.Mutex
}

func (c *countingSearcher) Search(ctx context.Context, q model.SearchQuery) ([]model.JobPosting, error) {
	c.calls.Add(1)
	c.mu.Lock()
	c.lastQ = q
	c.mu.Unlock()
	if c.release != nil {
		select {
		case <-c.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return c.jobs, c.err
}

type fakeLocal struct {
	jobs  []model.JobPosting
	err   error
	calls int
	lastQ filter.StoredQuery
}

func (f *fakeLocal) SearchJobs(_ context.Context, q filter.StoredQuery) ([]model.JobPosting, error) {
	f.calls++
	f.lastQ = q
	return f.jobs, f.err
}

// failingCache always errors, to prove cache faults degrade to misses.
type failingCache struct{}

func (failingCache) Get(context.Context, string) ([]model.JobPosting, bool, error) {
	return nil, false, errors.New("redis down")
}
func (failingCache) Set(context.Context, string, []model.JobPosting) error {
	return errors.New("redis down")
}

// --- Helpers ---

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func liveJobs(ids ...string) []model.JobPosting {
	jobs := make([]model.JobPosting, len(ids))
	for i, id := range ids {
		jobs[i] = model.JobPosting{ID: id, Title: "Intern " + id, Source: model.SourceLive}
	}
	return jobs
}

func waitForCalls(t *testing.T, up *countingSearcher, n int32) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for up.calls.Load() < n {
		if time.Now().After(deadline) {
			t.Errorf("upstream calls = %d, waited for %d", up.calls.Load(), n)
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
}

// --- Tests ---

func TestLiveJobs_MissThenHit(t *testing.T) {
	up := &countingSearcher{jobs: liveJobs("a", "b")}
	svc := NewService(up, model.SourceLive, cache.NewMemory(time.Minute), &fakeLocal{}, discardLogger())
	ctx := context.Background()

	first, err := svc.LiveJobs(ctx, model.SearchQuery{Keyword: "Go", Location: "Pune", Page: 1})
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	if first.Cached || first.Source != model.SourceLive || len(first.Jobs) != 2 {
		t.Errorf("first = %+v", first)
	}

	second, err := svc.LiveJobs(ctx, model.SearchQuery{Keyword: " go ", Location: "PUNE", Page: 1})
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if !second.Cached {
		t.Error("expected normalized query to hit the cache")
	}
	if &second.Jobs[0] != &first.Jobs[0] {
		t.Error("cache hit should return the stored slice")
	}
	if n := up.calls.Load(); n != 1 {
		t.Errorf("upstream calls = %d, want 1", n)
	}
}

func TestLiveJobs_DefaultsApplied(t *testing.T) {
	up := &countingSearcher{jobs: liveJobs("a")}
	svc := NewService(up, model.SourceLive, cache.NewMemory(time.Minute), &fakeLocal{}, discardLogger())

	if _, err := svc.LiveJobs(context.Background(), model.SearchQuery{}); err != nil {
		t.Fatalf("LiveJobs: %v", err)
	}
	if up.lastQ.Keyword != "internship" || up.lastQ.Page != 1 {
		t.Errorf("upstream query = %+v", up.lastQ)
	}
}

func TestLiveJobs_DifferentPagesAreDistinct(t *testing.T) {
	up := &countingSearcher{jobs: liveJobs("a")}
	svc := NewService(up, model.SourceLive, cache.NewMemory(time.Minute), &fakeLocal{}, discardLogger())
	ctx := context.Background()

	_, _ = svc.LiveJobs(ctx, model.SearchQuery{Keyword: "go", Page: 1})
	_, _ = svc.LiveJobs(ctx, model.SearchQuery{Keyword: "go", Page: 2})
	if n := up.calls.Load(); n != 2 {
		t.Errorf("upstream calls = %d, want 2", n)
	}
}

func TestLiveJobs_ConcurrentMissesShareOneCall(t *testing.T) {
	up := &countingSearcher{jobs: liveJobs("a"), release: make(chan struct{})}
	svc := NewService(up, model.SourceLive, cache.NewMemory(time.Minute), &fakeLocal{}, discardLogger())
	ctx := context.Background()

	const callers = 5
	var wg sync.WaitGroup
	errs := make(chan error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.LiveJobs(ctx, model.SearchQuery{Keyword: "rust"})
			errs <- err
		}()
	}

	// Let every goroutine reach the singleflight group before releasing.
	deadline := time.Now().Add(2 * time.Second)
	for up.calls.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	time.Sleep(50 * time.Millisecond)
	close(up.release)
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Errorf("caller error: %v", err)
		}
	}
	if n := up.calls.Load(); n != 1 {
		t.Errorf("upstream calls = %d, want 1", n)
	}
}

func TestLiveJobs_UpstreamFailureFallsBackToLocal(t *testing.T) {
	up := &countingSearcher{err: &model.HTTPError{StatusCode: 502, Err: model.ErrUpstream}}
	local := &fakeLocal{jobs: []model.JobPosting{{ID: "db-1", Source: model.SourceLocal}}}
	c := cache.NewMemory(time.Minute)
	svc := NewService(up, model.SourceLive, c, local, discardLogger())

	res, err := svc.LiveJobs(context.Background(), model.SearchQuery{Keyword: "Frontend", Location: "Karnataka"})
	if err != nil {
		t.Fatalf("expected fallback, got %v", err)
	}
	if res.Source != model.SourceLocal || len(res.Jobs) != 1 {
		t.Errorf("result = %+v", res)
	}
	if local.lastQ.Role != "Frontend" || local.lastQ.State != "Karnataka" {
		t.Errorf("local query = %+v", local.lastQ)
	}
	if c.Len() != 0 {
		t.Error("fallback results must not be cached")
	}
}

func TestLiveJobs_FallbackQueryMapping(t *testing.T) {
	up := &countingSearcher{err: model.ErrUpstream}
	local := &fakeLocal{}
	svc := NewService(up, model.SourceLive, cache.NewMemory(time.Minute), local, discardLogger())

	_, _ = svc.LiveJobs(context.Background(), model.SearchQuery{Location: "Bengaluru"})
	if local.lastQ.Role != "" {
		t.Errorf("default keyword should not filter titles, got %q", local.lastQ.Role)
	}
	if local.lastQ.State != "" {
		t.Errorf("a city is not a state, got %q", local.lastQ.State)
	}
}

func TestLiveJobs_BothFail(t *testing.T) {
	up := &countingSearcher{err: model.ErrUpstream}
	local := &fakeLocal{err: errors.New("db locked")}
	svc := NewService(up, model.SourceLive, cache.NewMemory(time.Minute), local, discardLogger())

	_, err := svc.LiveJobs(context.Background(), model.SearchQuery{Keyword: "go"})
	if !errors.Is(err, model.ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
}

func TestLiveJobs_NoFallbackConfigured(t *testing.T) {
	up := &countingSearcher{err: model.ErrUpstream}
	svc := NewService(up, model.SourceLive, cache.NewMemory(time.Minute), nil, discardLogger())

	_, err := svc.LiveJobs(context.Background(), model.SearchQuery{Keyword: "go"})
	if !errors.Is(err, model.ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
}

func TestLiveJobs_CanceledContextSkipsFallback(t *testing.T) {
	up := &countingSearcher{jobs: liveJobs("a"), release: make(chan struct{})}
	defer close(up.release)
	local := &fakeLocal{}
	svc := NewService(up, model.SourceLive, cache.NewMemory(time.Minute), local, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		waitForCalls(t, up, 1)
		cancel()
	}()

	_, err := svc.LiveJobs(ctx, model.SearchQuery{Keyword: "go"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if local.calls != 0 {
		t.Error("fallback should not run for a canceled request")
	}
}

func TestLiveJobs_CanceledCallerDoesNotFailSharedCall(t *testing.T) {
	up := &countingSearcher{jobs: liveJobs("a", "b"), release: make(chan struct{})}
	local := &fakeLocal{}
	svc := NewService(up, model.SourceLive, cache.NewMemory(time.Minute), local, discardLogger())
	q := model.SearchQuery{Keyword: "go"}

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := svc.LiveJobs(firstCtx, q)
		firstErr <- err
	}()
	waitForCalls(t, up, 1)

	type outcome struct {
		res Result
		err error
	}
	second := make(chan outcome, 1)
	go func() {
		res, err := svc.LiveJobs(context.Background(), q)
		second <- outcome{res, err}
	}()
	// Give the second caller time to join the in-flight call.
	time.Sleep(50 * time.Millisecond)

	cancelFirst()
	if err := <-firstErr; !errors.Is(err, context.Canceled) {
		t.Errorf("first caller: expected context.Canceled, got %v", err)
	}
	close(up.release)

	got := <-second
	if got.err != nil {
		t.Fatalf("second caller: %v", got.err)
	}
	if got.res.Source != model.SourceLive || len(got.res.Jobs) != 2 {
		t.Errorf("second result = %+v", got.res)
	}
	if n := up.calls.Load(); n != 1 {
		t.Errorf("upstream calls = %d, want 1", n)
	}
	if local.calls != 0 {
		t.Errorf("local calls = %d, want 0", local.calls)
	}
}

func TestLiveJobs_SharedCallTimeoutFallsBack(t *testing.T) {
	up := &countingSearcher{jobs: liveJobs("a"), release: make(chan struct{})}
	defer close(up.release)
	local := &fakeLocal{jobs: []model.JobPosting{{ID: "db-1", Source: model.SourceLocal}}}
	svc := NewService(up, model.SourceLive, cache.NewMemory(time.Minute), local, discardLogger())
	svc.timeout = 20 * time.Millisecond

	res, err := svc.LiveJobs(context.Background(), model.SearchQuery{Keyword: "go"})
	if err != nil {
		t.Fatalf("expected fallback after upstream timeout, got %v", err)
	}
	if res.Source != model.SourceLocal || local.calls != 1 {
		t.Errorf("result = %+v, local calls = %d", res, local.calls)
	}
}

func TestLiveJobs_ExpiredEntryRefetches(t *testing.T) {
	up := &countingSearcher{jobs: liveJobs("a")}
	svc := NewService(up, model.SourceLive, cache.NewMemory(30*time.Millisecond), &fakeLocal{}, discardLogger())
	ctx := context.Background()
	q := model.SearchQuery{Keyword: "go", Location: "Pune"}

	if _, err := svc.LiveJobs(ctx, q); err != nil {
		t.Fatalf("first call: %v", err)
	}
	hit, err := svc.LiveJobs(ctx, q)
	if err != nil || !hit.Cached {
		t.Fatalf("second call: cached=%v err=%v, want a hit", hit.Cached, err)
	}

	time.Sleep(60 * time.Millisecond)

	res, err := svc.LiveJobs(ctx, q)
	if err != nil {
		t.Fatalf("after expiry: %v", err)
	}
	if res.Cached {
		t.Error("expired entry served from cache")
	}
	if n := up.calls.Load(); n != 2 {
		t.Errorf("upstream calls = %d, want 2", n)
	}
}

func TestLiveJobs_CacheErrorsDegradeToMiss(t *testing.T) {
	up := &countingSearcher{jobs: liveJobs("a")}
	svc := NewService(up, model.SourceMock, failingCache{}, &fakeLocal{}, discardLogger())

	res, err := svc.LiveJobs(context.Background(), model.SearchQuery{Keyword: "go"})
	if err != nil {
		t.Fatalf("LiveJobs: %v", err)
	}
	if res.Cached || res.Source != model.SourceMock || len(res.Jobs) != 1 {
		t.Errorf("result = %+v", res)
	}
}

func TestSequencer(t *testing.T) {
	s := NewSequencer()

	first := s.Next("keyword")
	second := s.Next("keyword")
	other := s.Next("location")

	if s.IsLatest("keyword", first) {
		t.Error("superseded token reported as latest")
	}
	if !s.IsLatest("keyword", second) {
		t.Error("newest token not reported as latest")
	}
	if !s.IsLatest("location", other) {
		t.Error("fields must be sequenced independently")
	}
	if !s.IsLatest("unknown", 0) {
		t.Error("zero token is latest for a field never issued")
	}
}
