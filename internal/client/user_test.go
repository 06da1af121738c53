package client

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyfn/skyfn-console/internal/domain"
)

func TestLogin_StoresToken(t *testing.T) {
	httpc, sess := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/users/login", r.URL.Path)
		w.Write([]byte(`{"access_token":"sky_tok","token_type":"bearer"}`))
	})
	svc := NewUserService(httpc, sess)

	token, err := svc.Login(context.Background(), domain.UserLogin{Username: "demo", Password: "pw"})

	require.NoError(t, err)
	assert.Equal(t, "sky_tok", token.AccessToken)

	stored, ok := sess.Token()
	assert.True(t, ok)
	assert.Equal(t, "sky_tok", stored)
}

func TestLogin_WrappedTokenEnvelope(t *testing.T) {
	httpc, sess := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"token":{"access_token":"sky_tok","token_type":"bearer"}}`))
	})
	svc := NewUserService(httpc, sess)

	token, err := svc.Login(context.Background(), domain.UserLogin{Username: "demo", Password: "pw"})

	require.NoError(t, err)
	assert.Equal(t, "sky_tok", token.AccessToken)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	httpc, sess := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Invalid username or password"}`))
	})
	svc := NewUserService(httpc, sess)

	_, err := svc.Login(context.Background(), domain.UserLogin{Username: "demo", Password: "bad"})

	var apiErr *domain.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "Invalid username or password", apiErr.Message)

	_, ok := sess.Token()
	assert.False(t, ok)
}

func TestRegister(t *testing.T) {
	httpc, sess := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/register", r.URL.Path)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":42,"username":"alice","name":"Alice"}`))
	})
	svc := NewUserService(httpc, sess)

	user, err := svc.Register(context.Background(), domain.UserCreate{Username: "alice", Password: "pw"})

	require.NoError(t, err)
	assert.Equal(t, int64(42), user.ID)
	assert.Equal(t, "alice", user.Username)
}

func TestCurrentUser_WrappedEnvelope(t *testing.T) {
	httpc, sess := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/me", r.URL.Path)
		w.Write([]byte(`{"user":{"id":1,"username":"demo","name":"Demo User"}}`))
	})
	svc := NewUserService(httpc, sess)

	user, err := svc.CurrentUser(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "demo", user.Username)
}

func TestLogout_ClearsSession(t *testing.T) {
	httpc, sess := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})
	require.NoError(t, sess.SetToken("tok"))
	svc := NewUserService(httpc, sess)

	require.NoError(t, svc.Logout())

	_, ok := sess.Token()
	assert.False(t, ok)
}
