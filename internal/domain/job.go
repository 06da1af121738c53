package domain

import (
	"context"
	"encoding/json"
	"time"
)

// JobStatus is the lifecycle state of a single invocation. This is a
// separate vocabulary from FunctionStatus.
type JobStatus string

const (
	JobStatusPending JobStatus = "pending"
	JobStatusRunning JobStatus = "running"
	JobStatusSuccess JobStatus = "success"
	JobStatusError   JobStatus = "error"
)

// Terminal reports whether the status is final
func (s JobStatus) Terminal() bool {
	return s == JobStatusSuccess || s == JobStatusError
}

// Job records one invocation of a function. Output and Error are mutually
// exclusive; a job is immutable once terminal. Duration is milliseconds.
type Job struct {
	ID          string          `json:"id"`
	FunctionID  string          `json:"function_id"`
	Status      JobStatus       `json:"status"`
	Input       json.RawMessage `json:"input,omitempty"`
	Output      json.RawMessage `json:"output,omitempty"`
	Error       string          `json:"error,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	StartedAt   *time.Time      `json:"started_at,omitempty"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
	Duration    int64           `json:"duration,omitempty"`
}

// JobList is a page of jobs for one function
type JobList struct {
	Jobs  []Job `json:"jobs"`
	Total int   `json:"total"`
}

// JobService defines the job operations both the real and mock
// implementations provide.
type JobService interface {
	Get(ctx context.Context, jobID string) (*Job, error)
}
