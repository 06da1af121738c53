package domain

import (
	"context"
	"time"
)

// DefaultAuthKeyExpiryHours is the platform default used when an auth key is
// requested without an explicit expiry.
const DefaultAuthKeyExpiryHours = 24

// Workspace groups a user's functions
type Workspace struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	OwnerID   int64     `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WorkspaceCreate is the creation payload
type WorkspaceCreate struct {
	Name string `json:"name"`
}

// WorkspaceUpdate is the rename payload; nil fields are left unchanged
type WorkspaceUpdate struct {
	Name *string `json:"name,omitempty"`
}

// WorkspaceAuthKey is a freshly minted opaque key bound to a workspace.
// Keys are never cached or listed; every request mints a new one.
type WorkspaceAuthKey struct {
	Key         string    `json:"key"`
	WorkspaceID string    `json:"workspace_id"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// WorkspaceMetrics is a read-only aggregate snapshot computed server-side
type WorkspaceMetrics struct {
	TotalFunctions     int64   `json:"total_functions"`
	TotalExecutions    int64   `json:"total_executions"`
	TotalExecutionTime int64   `json:"total_execution_time"`
	SuccessRate        float64 `json:"success_rate"`
}

// WorkspaceService defines the workspace operations both the real and mock
// implementations provide.
type WorkspaceService interface {
	List(ctx context.Context) ([]Workspace, error)
	Get(ctx context.Context, workspaceID string) (*Workspace, error)
	Create(ctx context.Context, data WorkspaceCreate) (*Workspace, error)
	Update(ctx context.Context, workspaceID string, data WorkspaceUpdate) (*Workspace, error)
	Delete(ctx context.Context, workspaceID string) error
	// GenerateAuthKey mints a new key for the workspace. expiresHours <= 0
	// selects DefaultAuthKeyExpiryHours.
	GenerateAuthKey(ctx context.Context, workspaceID string, expiresHours int) (*WorkspaceAuthKey, error)
	Metrics(ctx context.Context, workspaceID string) (*WorkspaceMetrics, error)
	Functions(ctx context.Context, workspaceID string) ([]Function, error)
}
