package mock

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/skyfn/skyfn-console/internal/domain"
)

// FunctionService is the mock implementation of domain.FunctionService
type FunctionService struct {
	store *Store
}

var _ domain.FunctionService = (*FunctionService)(nil)

// NewFunctionService creates a mock FunctionService
func NewFunctionService(store *Store) *FunctionService {
	return &FunctionService{store: store}
}

// List returns summaries of all fixture functions
func (s *FunctionService) List(ctx context.Context) ([]domain.Function, error) {
	s.store.delay(ctx, 500*time.Millisecond)

	s.store.mu.RLock()
	defer s.store.mu.RUnlock()
	out := make([]domain.Function, 0, len(s.store.functions))
	for _, f := range s.store.functions {
		out = append(out, f.Summary())
	}
	return out, nil
}

// Get returns the full detail or ErrFunctionNotFound
func (s *FunctionService) Get(ctx context.Context, functionID string) (*domain.FunctionDetail, error) {
	s.store.delay(ctx, 300*time.Millisecond)
	return s.find(functionID)
}

func (s *FunctionService) find(functionID string) (*domain.FunctionDetail, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()
	for _, f := range s.store.functions {
		if f.ID == functionID {
			fn := f
			return &fn, nil
		}
	}
	return nil, domain.ErrFunctionNotFound
}

// Create appends a function with a fresh UUID in pending status
func (s *FunctionService) Create(ctx context.Context, data domain.FunctionCreate) (*domain.FunctionDetail, error) {
	s.store.delay(ctx, 600*time.Millisecond)

	now := time.Now().UTC()
	fn := domain.FunctionDetail{
		Function: domain.Function{
			ID:            uuid.New().String(),
			Name:          data.Name,
			Runtime:       data.Runtime,
			ExecutionType: data.ExecutionType,
			WorkspaceID:   data.WorkspaceID,
			Status:        domain.FunctionStatusPending,
			Endpoint:      data.Endpoint,
			CreatedAt:     now,
			UpdatedAt:     now,
		},
		Code: data.Code,
	}

	s.store.mu.Lock()
	s.store.functions = append(s.store.functions, fn)
	s.store.mu.Unlock()

	return &fn, nil
}

// Update patches a function; nil fields are left unchanged
func (s *FunctionService) Update(ctx context.Context, functionID string, data domain.FunctionUpdate) (*domain.FunctionDetail, error) {
	s.store.delay(ctx, 400*time.Millisecond)

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	for i := range s.store.functions {
		if s.store.functions[i].ID != functionID {
			continue
		}
		f := &s.store.functions[i]
		if data.Name != nil {
			f.Name = *data.Name
		}
		if data.Runtime != nil {
			f.Runtime = *data.Runtime
		}
		if data.Code != nil {
			f.Code = *data.Code
		}
		if data.ExecutionType != nil {
			f.ExecutionType = *data.ExecutionType
		}
		if data.Endpoint != nil {
			f.Endpoint = data.Endpoint
		}
		f.UpdatedAt = time.Now().UTC()
		fn := *f
		return &fn, nil
	}
	return nil, domain.ErrFunctionNotFound
}

// Delete removes a function, effective immediately within the process
func (s *FunctionService) Delete(ctx context.Context, functionID string) error {
	s.store.delay(ctx, 300*time.Millisecond)

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	for i, f := range s.store.functions {
		if f.ID == functionID {
			s.store.functions = append(s.store.functions[:i], s.store.functions[i+1:]...)
			return nil
		}
	}
	return domain.ErrFunctionNotFound
}

// Deploy simulates a deployment: ~2s latency, ~90% success. A SUCCESS
// result carries the public URL; a FAILED result carries the structured
// error. The two are never mixed.
func (s *FunctionService) Deploy(ctx context.Context, functionID string, req *domain.DeployRequest) (*domain.DeployResult, error) {
	s.store.delay(ctx, 2*time.Second)

	if _, err := s.find(functionID); err != nil {
		return nil, err
	}

	if !s.store.chance(s.store.deploySuccessRate) {
		return &domain.DeployResult{
			Status: domain.DeployFailed,
			Error: &domain.DeployError{
				Code:    "DEPLOYMENT_FAILED",
				Message: "Failed to deploy function to cluster",
			},
		}, nil
	}

	s.store.mu.Lock()
	var url string
	for i := range s.store.functions {
		if s.store.functions[i].ID == functionID {
			f := &s.store.functions[i]
			url = fmt.Sprintf("https://%s.default.example.com", strings.ReplaceAll(strings.ToLower(f.Name), " ", "-"))
			f.Status = domain.FunctionStatusDeployed
			f.KnativeURL = &url
			f.UpdatedAt = time.Now().UTC()
			break
		}
	}
	s.store.mu.Unlock()

	return &domain.DeployResult{
		Status:     domain.DeploySuccess,
		KnativeURL: url,
		Message:    "Function deployed successfully",
	}, nil
}

// Invoke simulates an execution and records the resulting job
func (s *FunctionService) Invoke(ctx context.Context, functionID string, payload json.RawMessage) (*domain.ExecutionResult, error) {
	s.store.delay(ctx, 600*time.Millisecond)

	if _, err := s.find(functionID); err != nil {
		return nil, err
	}
	if len(payload) == 0 {
		payload = json.RawMessage("{}")
	}

	now := time.Now().UTC()
	duration := int64(rand.Intn(1900) + 100)
	job := domain.Job{
		ID:          uuid.New().String(),
		FunctionID:  functionID,
		Status:      domain.JobStatusSuccess,
		Input:       payload,
		CreatedAt:   now,
		StartedAt:   timePtr(now),
		CompletedAt: timePtr(now.Add(time.Duration(duration) * time.Millisecond)),
		Duration:    duration,
	}

	result := &domain.ExecutionResult{
		JobID:    job.ID,
		Status:   domain.JobStatusSuccess,
		Duration: duration,
	}
	if s.store.chance(s.store.invokeSuccessRate) {
		output := json.RawMessage(fmt.Sprintf(`{"result":"completed","echo":%s}`, payload))
		job.Output = output
		result.Output = output
	} else {
		job.Status = domain.JobStatusError
		job.Error = "Execution failed"
		result.Status = domain.JobStatusError
		result.Error = job.Error
		result.Output = nil
	}

	s.store.mu.Lock()
	s.store.jobs = append(s.store.jobs, job)
	s.store.mu.Unlock()

	return result, nil
}

// Jobs returns the invocation history of a function
func (s *FunctionService) Jobs(ctx context.Context, functionID string) (*domain.JobList, error) {
	s.store.delay(ctx, 400*time.Millisecond)

	if _, err := s.find(functionID); err != nil {
		return nil, err
	}

	s.store.mu.RLock()
	defer s.store.mu.RUnlock()
	var jobs []domain.Job
	for _, j := range s.store.jobs {
		if j.FunctionID == functionID {
			jobs = append(jobs, j)
		}
	}
	return &domain.JobList{Jobs: jobs, Total: len(jobs)}, nil
}

// Metrics derives the aggregate snapshot from the recorded jobs
func (s *FunctionService) Metrics(ctx context.Context, functionID string) (*domain.FunctionMetrics, error) {
	s.store.delay(ctx, 350*time.Millisecond)

	if _, err := s.find(functionID); err != nil {
		return nil, err
	}

	s.store.mu.RLock()
	defer s.store.mu.RUnlock()
	m := &domain.FunctionMetrics{}
	var totalDuration int64
	for _, j := range s.store.jobs {
		if j.FunctionID != functionID {
			continue
		}
		m.TotalExecutions++
		totalDuration += j.Duration
		switch j.Status {
		case domain.JobStatusSuccess:
			m.SuccessCount++
		case domain.JobStatusError:
			m.ErrorCount++
		}
	}
	if m.TotalExecutions > 0 {
		m.AvgDuration = float64(totalDuration) / float64(m.TotalExecutions)
	}
	return m, nil
}
