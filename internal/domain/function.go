package domain

import (
	"context"
	"encoding/json"
	"time"
)

// Runtime identifies the language a function executes under
type Runtime string

const (
	RuntimePython Runtime = "PYTHON"
	RuntimeNodeJS Runtime = "NODEJS"
)

// ExecutionType selects synchronous or asynchronous invocation. The field is
// tracked server-side but optional on the wire: older backend snapshots never
// report it, so it is omitted when empty in both directions.
type ExecutionType string

const (
	ExecutionSync  ExecutionType = "SYNC"
	ExecutionAsync ExecutionType = "ASYNC"
)

// FunctionStatus is deliberately open-ended: the backend's status vocabulary
// has drifted across deployments, so every observed tag is accepted and call
// sites must never assume a closed set.
type FunctionStatus string

const (
	FunctionStatusPending   FunctionStatus = "pending"
	FunctionStatusActive    FunctionStatus = "active"
	FunctionStatusRunning   FunctionStatus = "running"
	FunctionStatusSucceeded FunctionStatus = "succeeded"
	FunctionStatusFailed    FunctionStatus = "failed"
	FunctionStatusDeployed  FunctionStatus = "deployed"
	FunctionStatusError     FunctionStatus = "error"
	FunctionStatusInactive  FunctionStatus = "inactive"
)

// Function is the summary projection of a serverless function: everything
// except the source code blob.
type Function struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Runtime       Runtime        `json:"runtime"`
	ExecutionType ExecutionType  `json:"execution_type,omitempty"`
	WorkspaceID   string         `json:"workspace_id"`
	Status        FunctionStatus `json:"status,omitempty"`
	Endpoint      *string        `json:"endpoint,omitempty"`
	KnativeURL    *string        `json:"knative_url,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// FunctionDetail is the full projection including the code blob. Summary and
// detail share the identifier and every other field.
type FunctionDetail struct {
	Function
	Code string `json:"code"`
}

// Summary strips the code blob
func (d FunctionDetail) Summary() Function {
	return d.Function
}

// FunctionCreate is the creation payload
type FunctionCreate struct {
	Name          string        `json:"name"`
	Runtime       Runtime       `json:"runtime"`
	Code          string        `json:"code"`
	ExecutionType ExecutionType `json:"execution_type,omitempty"`
	WorkspaceID   string        `json:"workspace_id"`
	Endpoint      *string       `json:"endpoint,omitempty"`
}

// FunctionUpdate is the patch payload; nil fields are left unchanged
type FunctionUpdate struct {
	Name          *string        `json:"name,omitempty"`
	Runtime       *Runtime       `json:"runtime,omitempty"`
	Code          *string        `json:"code,omitempty"`
	ExecutionType *ExecutionType `json:"execution_type,omitempty"`
	Endpoint      *string        `json:"endpoint,omitempty"`
}

// FunctionMetrics is a read-only aggregate snapshot for one function
type FunctionMetrics struct {
	TotalExecutions int64   `json:"total_executions"`
	SuccessCount    int64   `json:"success_count"`
	ErrorCount      int64   `json:"error_count"`
	AvgDuration     float64 `json:"avg_duration"`
}

// DeployStatus tags a deploy outcome
type DeployStatus string

const (
	DeploySuccess DeployStatus = "SUCCESS"
	DeployFailed  DeployStatus = "FAILED"
)

// DeployRequest carries optional environment variables for a deployment
type DeployRequest struct {
	Env map[string]string `json:"env,omitempty"`
}

// DeployError is the structured failure carried by a FAILED deploy
type DeployError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// DeployResult is the terminal outcome of a deploy. A SUCCESS result carries
// the public URL; a FAILED result carries Error. The two are never mixed.
type DeployResult struct {
	Status     DeployStatus `json:"status"`
	KnativeURL string       `json:"knative_url,omitempty"`
	Message    string       `json:"message,omitempty"`
	Error      *DeployError `json:"error,omitempty"`
}

// ExecutionResult is the outcome of invoking a function. Output and Error
// are mutually exclusive; Duration is milliseconds.
type ExecutionResult struct {
	JobID    string          `json:"job_id,omitempty"`
	Status   JobStatus       `json:"status"`
	Output   json.RawMessage `json:"output,omitempty"`
	Error    string          `json:"error,omitempty"`
	Duration int64           `json:"duration,omitempty"`
}

// FunctionService defines the function operations both the real and mock
// implementations provide.
type FunctionService interface {
	List(ctx context.Context) ([]Function, error)
	Get(ctx context.Context, functionID string) (*FunctionDetail, error)
	Create(ctx context.Context, data FunctionCreate) (*FunctionDetail, error)
	Update(ctx context.Context, functionID string, data FunctionUpdate) (*FunctionDetail, error)
	Delete(ctx context.Context, functionID string) error
	Deploy(ctx context.Context, functionID string, req *DeployRequest) (*DeployResult, error)
	Invoke(ctx context.Context, functionID string, payload json.RawMessage) (*ExecutionResult, error)
	Jobs(ctx context.Context, functionID string) (*JobList, error)
	Metrics(ctx context.Context, functionID string) (*FunctionMetrics, error)
}
