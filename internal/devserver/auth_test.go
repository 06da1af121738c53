package devserver

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runAuth(registry *TokenRegistry, authHeader string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/workspaces/", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := BearerAuth(registry)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	_ = handler(c)
	return rec
}

func TestBearerAuth_MissingToken(t *testing.T) {
	rec := runAuth(NewTokenRegistry(), "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestBearerAuth_MalformedHeader(t *testing.T) {
	rec := runAuth(NewTokenRegistry(), "Basic dXNlcjpwdw==")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestBearerAuth_UnknownToken(t *testing.T) {
	rec := runAuth(NewTokenRegistry(), "Bearer sky_not-minted")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestBearerAuth_MintedToken(t *testing.T) {
	registry := NewTokenRegistry()
	token := registry.Mint("demo")

	rec := runAuth(registry, "Bearer "+token)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestBearerAuth_AcceptsMockConsoleToken(t *testing.T) {
	rec := runAuth(NewTokenRegistry(), "Bearer mock_jwt_token_12345")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestTokenRegistry_MintIsUnique(t *testing.T) {
	registry := NewTokenRegistry()

	a := registry.Mint("demo")
	b := registry.Mint("demo")

	assert.NotEqual(t, a, b)

	username, ok := registry.Lookup(a)
	require.True(t, ok)
	assert.Equal(t, "demo", username)
}

func TestRateLimiter_BurstExhaustion(t *testing.T) {
	rl := NewRateLimiterWithConfig(60, 3)
	defer rl.Stop()

	for i := 0; i < 3; i++ {
		assert.True(t, rl.Allow("tok"), "request %d within burst", i)
	}
	assert.False(t, rl.Allow("tok"), "burst exhausted")

	// Limits are per token.
	assert.True(t, rl.Allow("other"))
}

func TestRateLimit_Middleware429(t *testing.T) {
	rl := NewRateLimiterWithConfig(60, 1)
	defer rl.Stop()

	e := echo.New()
	handler := RateLimit(rl)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	run := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/workspaces/", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer tok")
		rec := httptest.NewRecorder()
		_ = handler(e.NewContext(req, rec))
		return rec
	}

	assert.Equal(t, http.StatusOK, run().Code)

	rec := run()
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	var body errorBody
	decodeBody(t, rec, &body)
	assert.Equal(t, "RATE_LIMITED", body.Code)
}

func TestRateLimit_TokenlessRequestsPass(t *testing.T) {
	rl := NewRateLimiterWithConfig(60, 1)
	defer rl.Stop()

	e := echo.New()
	handler := RateLimit(rl)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodPost, "/users/login", nil)
		rec := httptest.NewRecorder()
		_ = handler(e.NewContext(req, rec))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}
