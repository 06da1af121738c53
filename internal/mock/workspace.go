package mock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/skyfn/skyfn-console/internal/domain"
)

// WorkspaceService is the mock implementation of domain.WorkspaceService
type WorkspaceService struct {
	store *Store
}

var _ domain.WorkspaceService = (*WorkspaceService)(nil)

// NewWorkspaceService creates a mock WorkspaceService
func NewWorkspaceService(store *Store) *WorkspaceService {
	return &WorkspaceService{store: store}
}

// List returns all fixture workspaces
func (s *WorkspaceService) List(ctx context.Context) ([]domain.Workspace, error) {
	s.store.delay(ctx, 400*time.Millisecond)

	s.store.mu.RLock()
	defer s.store.mu.RUnlock()
	out := make([]domain.Workspace, len(s.store.workspaces))
	copy(out, s.store.workspaces)
	return out, nil
}

// Get returns one workspace or ErrWorkspaceNotFound
func (s *WorkspaceService) Get(ctx context.Context, workspaceID string) (*domain.Workspace, error) {
	s.store.delay(ctx, 300*time.Millisecond)

	s.store.mu.RLock()
	defer s.store.mu.RUnlock()
	for _, w := range s.store.workspaces {
		if w.ID == workspaceID {
			ws := w
			return &ws, nil
		}
	}
	return nil, domain.ErrWorkspaceNotFound
}

// Create appends a workspace with a fresh UUID
func (s *WorkspaceService) Create(ctx context.Context, data domain.WorkspaceCreate) (*domain.Workspace, error) {
	s.store.delay(ctx, 500*time.Millisecond)

	now := time.Now().UTC()
	ws := domain.Workspace{
		ID:        uuid.New().String(),
		Name:      data.Name,
		OwnerID:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.store.mu.Lock()
	s.store.workspaces = append(s.store.workspaces, ws)
	s.store.mu.Unlock()

	return &ws, nil
}

// Update renames a workspace
func (s *WorkspaceService) Update(ctx context.Context, workspaceID string, data domain.WorkspaceUpdate) (*domain.Workspace, error) {
	s.store.delay(ctx, 400*time.Millisecond)

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	for i := range s.store.workspaces {
		if s.store.workspaces[i].ID == workspaceID {
			if data.Name != nil {
				s.store.workspaces[i].Name = *data.Name
			}
			s.store.workspaces[i].UpdatedAt = time.Now().UTC()
			ws := s.store.workspaces[i]
			return &ws, nil
		}
	}
	return nil, domain.ErrWorkspaceNotFound
}

// Delete removes a workspace and its functions, effective immediately
// within the process.
func (s *WorkspaceService) Delete(ctx context.Context, workspaceID string) error {
	s.store.delay(ctx, 300*time.Millisecond)

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	for i, w := range s.store.workspaces {
		if w.ID == workspaceID {
			s.store.workspaces = append(s.store.workspaces[:i], s.store.workspaces[i+1:]...)
			kept := s.store.functions[:0]
			for _, f := range s.store.functions {
				if f.WorkspaceID != workspaceID {
					kept = append(kept, f)
				}
			}
			s.store.functions = kept
			return nil
		}
	}
	return domain.ErrWorkspaceNotFound
}

// GenerateAuthKey mints a fresh key; every call produces a new one
func (s *WorkspaceService) GenerateAuthKey(ctx context.Context, workspaceID string, expiresHours int) (*domain.WorkspaceAuthKey, error) {
	s.store.delay(ctx, 300*time.Millisecond)

	if _, err := s.Get(ctx, workspaceID); err != nil {
		return nil, err
	}
	if expiresHours <= 0 {
		expiresHours = domain.DefaultAuthKeyExpiryHours
	}
	return &domain.WorkspaceAuthKey{
		Key:         fmt.Sprintf("ws_key_%s", uuid.New().String()[:13]),
		WorkspaceID: workspaceID,
		ExpiresAt:   time.Now().UTC().Add(time.Duration(expiresHours) * time.Hour),
	}, nil
}

// Metrics derives the aggregate snapshot from the fixture functions and jobs
func (s *WorkspaceService) Metrics(ctx context.Context, workspaceID string) (*domain.WorkspaceMetrics, error) {
	s.store.delay(ctx, 400*time.Millisecond)

	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	found := false
	for _, w := range s.store.workspaces {
		if w.ID == workspaceID {
			found = true
			break
		}
	}
	if !found {
		return nil, domain.ErrWorkspaceNotFound
	}

	owned := make(map[string]bool)
	m := &domain.WorkspaceMetrics{}
	for _, f := range s.store.functions {
		if f.WorkspaceID == workspaceID {
			owned[f.ID] = true
			m.TotalFunctions++
		}
	}
	var success int64
	for _, j := range s.store.jobs {
		if !owned[j.FunctionID] {
			continue
		}
		m.TotalExecutions++
		m.TotalExecutionTime += j.Duration
		if j.Status == domain.JobStatusSuccess {
			success++
		}
	}
	if m.TotalExecutions > 0 {
		m.SuccessRate = float64(success) / float64(m.TotalExecutions)
	}
	return m, nil
}

// Functions returns the summaries owned by a workspace
func (s *WorkspaceService) Functions(ctx context.Context, workspaceID string) ([]domain.Function, error) {
	s.store.delay(ctx, 500*time.Millisecond)

	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	found := false
	for _, w := range s.store.workspaces {
		if w.ID == workspaceID {
			found = true
			break
		}
	}
	if !found {
		return nil, domain.ErrWorkspaceNotFound
	}

	var out []domain.Function
	for _, f := range s.store.functions {
		if f.WorkspaceID == workspaceID {
			out = append(out, f.Summary())
		}
	}
	return out, nil
}
