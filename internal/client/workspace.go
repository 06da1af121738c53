package client

import (
	"context"
	"fmt"

	"github.com/skyfn/skyfn-console/internal/domain"
	"github.com/skyfn/skyfn-console/internal/envelope"
	"github.com/skyfn/skyfn-console/internal/transport"
)

// WorkspaceService is the real implementation of domain.WorkspaceService
type WorkspaceService struct {
	http *transport.Client
}

var _ domain.WorkspaceService = (*WorkspaceService)(nil)

// NewWorkspaceService creates a WorkspaceService
func NewWorkspaceService(http *transport.Client) *WorkspaceService {
	return &WorkspaceService{http: http}
}

// List fetches all workspaces visible to the session
func (s *WorkspaceService) List(ctx context.Context) ([]domain.Workspace, error) {
	data, err := s.http.Get(ctx, "/workspaces/")
	if err != nil {
		return nil, err
	}
	return envelope.DecodeList[domain.Workspace](data, "workspaces")
}

// Get fetches one workspace by id
func (s *WorkspaceService) Get(ctx context.Context, workspaceID string) (*domain.Workspace, error) {
	data, err := s.http.Get(ctx, "/workspaces/"+workspaceID)
	if err != nil {
		return nil, err
	}
	return envelope.DecodeOne[domain.Workspace](data, "workspace")
}

// Create creates a workspace
func (s *WorkspaceService) Create(ctx context.Context, payload domain.WorkspaceCreate) (*domain.Workspace, error) {
	data, err := s.http.Post(ctx, "/workspaces/", payload)
	if err != nil {
		return nil, err
	}
	return envelope.DecodeOne[domain.Workspace](data, "workspace")
}

// Update renames a workspace
func (s *WorkspaceService) Update(ctx context.Context, workspaceID string, payload domain.WorkspaceUpdate) (*domain.Workspace, error) {
	data, err := s.http.Put(ctx, "/workspaces/"+workspaceID, payload)
	if err != nil {
		return nil, err
	}
	return envelope.DecodeOne[domain.Workspace](data, "workspace")
}

// Delete removes a workspace. Deletion is terminal; the server cascades it
// to the workspace's functions.
func (s *WorkspaceService) Delete(ctx context.Context, workspaceID string) error {
	_, err := s.http.Delete(ctx, "/workspaces/"+workspaceID)
	return err
}

// GenerateAuthKey mints a fresh opaque key for the workspace. Keys are not
// cached or deduplicated; every call produces a new one.
func (s *WorkspaceService) GenerateAuthKey(ctx context.Context, workspaceID string, expiresHours int) (*domain.WorkspaceAuthKey, error) {
	if expiresHours <= 0 {
		expiresHours = domain.DefaultAuthKeyExpiryHours
	}
	body := map[string]int{"expires_hours": expiresHours}
	data, err := s.http.Post(ctx, fmt.Sprintf("/workspaces/%s/auth-keys", workspaceID), body)
	if err != nil {
		return nil, err
	}
	return envelope.DecodeOne[domain.WorkspaceAuthKey](data, "auth_key")
}

// Metrics fetches the aggregate snapshot for a workspace
func (s *WorkspaceService) Metrics(ctx context.Context, workspaceID string) (*domain.WorkspaceMetrics, error) {
	data, err := s.http.Get(ctx, fmt.Sprintf("/workspaces/%s/metrics", workspaceID))
	if err != nil {
		return nil, err
	}
	return envelope.DecodeOne[domain.WorkspaceMetrics](data, "metrics")
}

// Functions lists the function summaries owned by a workspace
func (s *WorkspaceService) Functions(ctx context.Context, workspaceID string) ([]domain.Function, error) {
	data, err := s.http.Get(ctx, fmt.Sprintf("/workspaces/%s/functions", workspaceID))
	if err != nil {
		return nil, err
	}
	return envelope.DecodeList[domain.Function](data, "functions")
}
