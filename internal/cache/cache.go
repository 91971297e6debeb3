// Package cache stores live search results for a fixed time after insertion.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/internai/internai/internal/model"
	"github.com/internai/internai/internal/skill"
)

// DefaultTTL is how long a live search result stays fresh.
const DefaultTTL = 900 * time.Second

// Cache maps a query key to the postings fetched for it. Entries expire a
// fixed TTL after Set; a Get never extends their life.
type Cache interface {
	Get(ctx context.Context, key string) ([]model.JobPosting, bool, error)
	Set(ctx context.Context, key string, jobs []model.JobPosting) error
}

// Key derives the cache key for q. Keyword and location are trimmed and
// lower-cased so "Intern" and "intern " share an entry.
func Key(q model.SearchQuery) string {
	return fmt.Sprintf("jsearch_%s_%s_%d", skill.Normalize(q.Keyword), skill.Normalize(q.Location), q.Page)
}
