package devserver

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/skyfn/skyfn-console/internal/mock"
)

// Seeded fixture identifiers.
const (
	fixtureWorkspaceID = "550e8400-e29b-41d4-a716-446655440000"
	fixtureFunctionID  = "6f1e8400-0000-41d4-a716-000000000001"
	fixtureJobID       = "a11e8400-0000-41d4-a716-000000000010"
)

type handlerDeps struct {
	users      *UserHandler
	workspaces *WorkspaceHandler
	functions  *FunctionHandler
	jobs       *JobHandler
	registry   *TokenRegistry
	hub        *Hub
}

func newHandlerDeps(t *testing.T, storeOpts ...mock.StoreOption) *handlerDeps {
	t.Helper()
	store := mock.NewStore(append([]mock.StoreOption{mock.WithLatencyScale(0)}, storeOpts...)...)
	registry := NewTokenRegistry()
	hub := NewHub()
	jobs := mock.NewJobService(store)
	return &handlerDeps{
		users:      NewUserHandler(mock.NewUserService(store, nil), registry),
		workspaces: NewWorkspaceHandler(mock.NewWorkspaceService(store)),
		functions:  NewFunctionHandler(mock.NewFunctionService(store), jobs, hub),
		jobs:       NewJobHandler(jobs),
		registry:   registry,
		hub:        hub,
	}
}

func newJSONContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}
