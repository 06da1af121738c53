package client

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/skyfn/skyfn-console/internal/session"
	"github.com/skyfn/skyfn-console/internal/transport"
)

// newTestClient wires a transport against an in-process HTTP server
func newTestClient(t *testing.T, handler http.HandlerFunc) (*transport.Client, *session.MemoryStore) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	sess := session.NewMemoryStore()
	return transport.New(srv.URL, sess), sess
}
