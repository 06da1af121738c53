package client

import (
	"context"

	"github.com/skyfn/skyfn-console/internal/domain"
	"github.com/skyfn/skyfn-console/internal/envelope"
	"github.com/skyfn/skyfn-console/internal/transport"
)

// JobService is the real implementation of domain.JobService
type JobService struct {
	http *transport.Client
}

var _ domain.JobService = (*JobService)(nil)

// NewJobService creates a JobService
func NewJobService(http *transport.Client) *JobService {
	return &JobService{http: http}
}

// Get fetches one job by id
func (s *JobService) Get(ctx context.Context, jobID string) (*domain.Job, error) {
	data, err := s.http.Get(ctx, "/jobs/"+jobID)
	if err != nil {
		return nil, err
	}
	return envelope.DecodeOne[domain.Job](data, "job")
}
