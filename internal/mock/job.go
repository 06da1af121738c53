package mock

import (
	"context"
	"time"

	"github.com/skyfn/skyfn-console/internal/domain"
)

// JobService is the mock implementation of domain.JobService
type JobService struct {
	store *Store
}

var _ domain.JobService = (*JobService)(nil)

// NewJobService creates a mock JobService
func NewJobService(store *Store) *JobService {
	return &JobService{store: store}
}

// Get returns one job or ErrJobNotFound
func (s *JobService) Get(ctx context.Context, jobID string) (*domain.Job, error) {
	s.store.delay(ctx, 300*time.Millisecond)

	s.store.mu.RLock()
	defer s.store.mu.RUnlock()
	for _, j := range s.store.jobs {
		if j.ID == jobID {
			job := j
			return &job, nil
		}
	}
	return nil, domain.ErrJobNotFound
}
