// Package api is the service locator: one factory, called once at process
// start, that assembles an immutable bundle of either mock or real service
// implementations. Callers depend only on the domain service contracts and
// never learn which implementation backs them; there is no runtime toggling.
package api

import (
	"fmt"

	"github.com/skyfn/skyfn-console/internal/client"
	"github.com/skyfn/skyfn-console/internal/domain"
	"github.com/skyfn/skyfn-console/internal/mock"
	"github.com/skyfn/skyfn-console/internal/session"
	"github.com/skyfn/skyfn-console/internal/transport"
)

// Mode selects the backing implementation for the whole bundle
type Mode string

const (
	// ModeAPI backs every service with HTTP calls to the platform
	ModeAPI Mode = "api"
	// ModeMock backs every service with in-process fixtures
	ModeMock Mode = "mock"
)

// ParseMode validates a mode string
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeAPI, ModeMock:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("%w: unknown service mode %q", domain.ErrInvalidInput, s)
	}
}

// Bundle is the fixed, read-only mapping from resource to service
// implementation for the lifetime of the process.
type Bundle struct {
	Users      domain.UserService
	Workspaces domain.WorkspaceService
	Functions  domain.FunctionService
	Jobs       domain.JobService
}

// Config carries everything the factory needs
type Config struct {
	Mode    Mode
	BaseURL string
	Session session.Store

	// TransportOptions apply in ModeAPI only
	TransportOptions []transport.Option
	// MockOptions apply in ModeMock only
	MockOptions []mock.StoreOption
}

// New builds the service bundle for the given mode
func New(cfg Config) *Bundle {
	sess := cfg.Session
	if sess == nil {
		sess = session.NewMemoryStore()
	}

	if cfg.Mode == ModeMock {
		store := mock.NewStore(cfg.MockOptions...)
		return &Bundle{
			Users:      mock.NewUserService(store, sess),
			Workspaces: mock.NewWorkspaceService(store),
			Functions:  mock.NewFunctionService(store),
			Jobs:       mock.NewJobService(store),
		}
	}

	http := transport.New(cfg.BaseURL, sess, cfg.TransportOptions...)
	return &Bundle{
		Users:      client.NewUserService(http, sess),
		Workspaces: client.NewWorkspaceService(http),
		Functions:  client.NewFunctionService(http),
		Jobs:       client.NewJobService(http),
	}
}
