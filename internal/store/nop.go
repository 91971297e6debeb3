package store

import (
	"context"
	"fmt"

	"github.com/internai/internai/internal/filter"
	"github.com/internai/internai/internal/model"
)

// NopStore is used in check mode and when no database is configured.
// Reads find nothing and writes succeed without persisting.
type NopStore struct{}

func NewNopStore() *NopStore { return &NopStore{} }

func (NopStore) CreateJob(context.Context, *model.JobPosting) error { return nil }
func (NopStore) UpdateJob(context.Context, model.JobPosting) error  { return nil }
func (NopStore) DeleteJob(context.Context, string) error            { return nil }
func (NopStore) UpsertProfile(context.Context, model.UserProfile) error {
	return nil
}
func (NopStore) Seed(context.Context) (int, error) { return 0, nil }
func (NopStore) Close() error                      { return nil }

func (NopStore) GetJob(_ context.Context, id string) (*model.JobPosting, error) {
	return nil, fmt.Errorf("job %s: %w", id, model.ErrNotFound)
}

func (NopStore) GetProfile(_ context.Context, userID string) (*model.UserProfile, error) {
	return nil, fmt.Errorf("profile %s: %w", userID, model.ErrNotFound)
}

func (NopStore) SearchJobs(_ context.Context, q filter.StoredQuery) ([]model.JobPosting, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	return []model.JobPosting{}, nil
}

func (NopStore) LatestJobs(context.Context, int) ([]model.JobPosting, error) {
	return []model.JobPosting{}, nil
}
