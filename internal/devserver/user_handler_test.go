package devserver

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyfn/skyfn-console/internal/domain"
)

func TestUserRegister_Created(t *testing.T) {
	deps := newHandlerDeps(t)
	c, rec := newJSONContext(http.MethodPost, "/users/register", `{"username":"alice","password":"pw","name":"Alice"}`)

	require.NoError(t, deps.users.Register(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	var user domain.User
	decodeBody(t, rec, &user)
	assert.Equal(t, "alice", user.Username)
	assert.NotZero(t, user.ID)
}

func TestUserRegister_ValidationDetail(t *testing.T) {
	deps := newHandlerDeps(t)
	c, rec := newJSONContext(http.MethodPost, "/users/register", `{"name":"No Creds"}`)

	require.NoError(t, deps.users.Register(c))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var body errorBody
	decodeBody(t, rec, &body)
	assert.Equal(t, "Validation failed", body.Message)
	require.Len(t, body.Detail, 2)
	assert.Equal(t, "field required", body.Detail[0].Msg)
}

func TestUserLogin_MintsFreshToken(t *testing.T) {
	deps := newHandlerDeps(t)
	c, rec := newJSONContext(http.MethodPost, "/users/login", `{"username":"demo","password":"pw"}`)

	require.NoError(t, deps.users.Login(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	var token domain.Token
	decodeBody(t, rec, &token)
	assert.Equal(t, "bearer", token.TokenType)
	assert.Contains(t, token.AccessToken, "sky_")

	username, ok := deps.registry.Lookup(token.AccessToken)
	assert.True(t, ok)
	assert.Equal(t, "demo", username)
}

func TestUserLogin_InvalidCredentials(t *testing.T) {
	deps := newHandlerDeps(t)
	c, rec := newJSONContext(http.MethodPost, "/users/login", `{"username":"error","password":"pw"}`)

	require.NoError(t, deps.users.Login(c))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	var body errorBody
	decodeBody(t, rec, &body)
	assert.Equal(t, "UNAUTHORIZED", body.Code)
	assert.Equal(t, http.StatusUnauthorized, body.Status)
}

func TestUserMe(t *testing.T) {
	deps := newHandlerDeps(t)
	c, rec := newJSONContext(http.MethodGet, "/users/me", "")

	require.NoError(t, deps.users.Me(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	var user domain.User
	decodeBody(t, rec, &user)
	assert.Equal(t, "demo", user.Username)
}
