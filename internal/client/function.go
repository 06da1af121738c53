package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/skyfn/skyfn-console/internal/domain"
	"github.com/skyfn/skyfn-console/internal/envelope"
	"github.com/skyfn/skyfn-console/internal/transport"
)

// FunctionService is the real implementation of domain.FunctionService
type FunctionService struct {
	http *transport.Client
}

var _ domain.FunctionService = (*FunctionService)(nil)

// NewFunctionService creates a FunctionService
func NewFunctionService(http *transport.Client) *FunctionService {
	return &FunctionService{http: http}
}

// List fetches all function summaries visible to the session
func (s *FunctionService) List(ctx context.Context) ([]domain.Function, error) {
	data, err := s.http.Get(ctx, "/functions/")
	if err != nil {
		return nil, err
	}
	return envelope.DecodeList[domain.Function](data, "functions")
}

// Get fetches the full detail, including the code blob
func (s *FunctionService) Get(ctx context.Context, functionID string) (*domain.FunctionDetail, error) {
	data, err := s.http.Get(ctx, "/functions/"+functionID)
	if err != nil {
		return nil, err
	}
	return envelope.DecodeOne[domain.FunctionDetail](data, "function")
}

// Create creates a function
func (s *FunctionService) Create(ctx context.Context, payload domain.FunctionCreate) (*domain.FunctionDetail, error) {
	data, err := s.http.Post(ctx, "/functions/", payload)
	if err != nil {
		return nil, err
	}
	return envelope.DecodeOne[domain.FunctionDetail](data, "function")
}

// Update patches a function; nil fields in the payload are left unchanged
func (s *FunctionService) Update(ctx context.Context, functionID string, payload domain.FunctionUpdate) (*domain.FunctionDetail, error) {
	data, err := s.http.Put(ctx, "/functions/"+functionID, payload)
	if err != nil {
		return nil, err
	}
	return envelope.DecodeOne[domain.FunctionDetail](data, "function")
}

// Delete removes a function
func (s *FunctionService) Delete(ctx context.Context, functionID string) error {
	_, err := s.http.Delete(ctx, "/functions/"+functionID)
	return err
}

// Deploy triggers a deployment. The action is terminal and non-retriable
// from the adapter's point of view; retry policy belongs to the caller.
func (s *FunctionService) Deploy(ctx context.Context, functionID string, req *domain.DeployRequest) (*domain.DeployResult, error) {
	if req == nil {
		req = &domain.DeployRequest{}
	}
	data, err := s.http.Post(ctx, fmt.Sprintf("/functions/%s/deploy", functionID), req)
	if err != nil {
		return nil, err
	}
	return envelope.DecodeOne[domain.DeployResult](data, "result")
}

// Invoke executes a function with an arbitrary JSON payload
func (s *FunctionService) Invoke(ctx context.Context, functionID string, payload json.RawMessage) (*domain.ExecutionResult, error) {
	if len(payload) == 0 {
		payload = json.RawMessage("{}")
	}
	data, err := s.http.Post(ctx, fmt.Sprintf("/functions/%s/invoke", functionID), payload)
	if err != nil {
		return nil, err
	}
	return envelope.DecodeOne[domain.ExecutionResult](data, "result")
}

// Jobs lists the invocation history of a function
func (s *FunctionService) Jobs(ctx context.Context, functionID string) (*domain.JobList, error) {
	data, err := s.http.Get(ctx, fmt.Sprintf("/functions/%s/jobs", functionID))
	if err != nil {
		return nil, err
	}
	jobs, err := envelope.DecodeList[domain.Job](data, "jobs")
	if err != nil {
		return nil, err
	}
	list := &domain.JobList{Jobs: jobs, Total: len(jobs)}
	// Prefer the server-reported total when the envelope carries one.
	var withTotal struct {
		Total *int `json:"total"`
	}
	if err := json.Unmarshal(data, &withTotal); err == nil && withTotal.Total != nil {
		list.Total = *withTotal.Total
	}
	return list, nil
}

// Metrics fetches the aggregate snapshot for a function
func (s *FunctionService) Metrics(ctx context.Context, functionID string) (*domain.FunctionMetrics, error) {
	data, err := s.http.Get(ctx, fmt.Sprintf("/functions/%s/metrics", functionID))
	if err != nil {
		return nil, err
	}
	return envelope.DecodeOne[domain.FunctionMetrics](data, "metrics")
}
