package devserver

import (
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// TokenRegistry tracks the opaque bearer tokens minted by login. Tokens
// live until the process exits; there is no refresh.
type TokenRegistry struct {
	mu     sync.RWMutex
	tokens map[string]string // token -> username
}

// NewTokenRegistry creates an empty registry
func NewTokenRegistry() *TokenRegistry {
	return &TokenRegistry{tokens: make(map[string]string)}
}

// Mint creates and records a fresh token for a user
func (r *TokenRegistry) Mint(username string) string {
	token := "sky_" + uuid.New().String()
	r.mu.Lock()
	r.tokens[token] = username
	r.mu.Unlock()
	return token
}

// Lookup resolves a token to its username
func (r *TokenRegistry) Lookup(token string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	username, ok := r.tokens[token]
	return username, ok
}

// BearerAuth rejects requests without a minted bearer token. The mock
// console token is accepted too so a client seeded by mock-mode login can
// talk to the dev server.
func BearerAuth(registry *TokenRegistry) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c)
			if token == "" {
				return unauthorized(c, "Missing bearer token")
			}
			if _, ok := registry.Lookup(token); !ok && token != "mock_jwt_token_12345" {
				return unauthorized(c, "Invalid or expired token")
			}
			c.Set("token", token)
			return next(c)
		}
	}
}

func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}
