// Package console holds the consuming-layer patterns the pages of the web
// console use on top of the service bundle.
package console

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/skyfn/skyfn-console/internal/api"
	"github.com/skyfn/skyfn-console/internal/domain"
)

// WorkspaceOverview is the combined view a workspace page renders: the
// workspace's metrics snapshot and its function list.
type WorkspaceOverview struct {
	Workspace *domain.Workspace        `json:"workspace"`
	Metrics   *domain.WorkspaceMetrics `json:"metrics"`
	Functions []domain.Function        `json:"functions"`
}

// FetchWorkspaceOverview is the best-effort parallel fetch: metrics and
// functions are requested concurrently and a failed branch degrades to its
// default (nil metrics / empty function list) instead of failing the whole
// operation. Only a failure to load the workspace itself is fatal.
func FetchWorkspaceOverview(ctx context.Context, services *api.Bundle, workspaceID string) (*WorkspaceOverview, error) {
	ws, err := services.Workspaces.Get(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	overview := &WorkspaceOverview{
		Workspace: ws,
		Functions: []domain.Function{},
	}

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		metrics, err := services.Workspaces.Metrics(ctx, workspaceID)
		if err != nil {
			log.Warn().Err(err).Str("workspace_id", workspaceID).Msg("Metrics fetch failed, continuing without")
			return
		}
		overview.Metrics = metrics
	}()

	go func() {
		defer wg.Done()
		functions, err := services.Workspaces.Functions(ctx, workspaceID)
		if err != nil {
			log.Warn().Err(err).Str("workspace_id", workspaceID).Msg("Function list fetch failed, continuing without")
			return
		}
		if functions != nil {
			overview.Functions = functions
		}
	}()

	wg.Wait()
	return overview, nil
}
