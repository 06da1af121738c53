// Package client implements the real domain services over the shared
// transport. Each operation issues one HTTP call and normalizes the
// response envelope into the canonical shape; transport failures propagate
// unchanged. Services hold no mutable state of their own.
package client

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/skyfn/skyfn-console/internal/domain"
	"github.com/skyfn/skyfn-console/internal/envelope"
	"github.com/skyfn/skyfn-console/internal/session"
	"github.com/skyfn/skyfn-console/internal/transport"
)

// UserService is the real implementation of domain.UserService
type UserService struct {
	http    *transport.Client
	session session.Store
}

var _ domain.UserService = (*UserService)(nil)

// NewUserService creates a UserService. The session store is written on a
// successful login and cleared on logout.
func NewUserService(http *transport.Client, sess session.Store) *UserService {
	return &UserService{http: http, session: sess}
}

// Register creates a new account
func (s *UserService) Register(ctx context.Context, user domain.UserCreate) (*domain.User, error) {
	data, err := s.http.Post(ctx, "/users/register", user)
	if err != nil {
		return nil, err
	}
	return envelope.DecodeOne[domain.User](data, "user")
}

// Login exchanges credentials for a bearer token and stores it in the
// session so subsequent requests carry it.
func (s *UserService) Login(ctx context.Context, credentials domain.UserLogin) (*domain.Token, error) {
	data, err := s.http.Post(ctx, "/users/login", credentials)
	if err != nil {
		return nil, err
	}
	token, err := envelope.DecodeOne[domain.Token](data, "token")
	if err != nil {
		return nil, err
	}
	if err := s.session.SetToken(token.AccessToken); err != nil {
		log.Error().Err(err).Msg("Failed to persist session token")
		return nil, err
	}
	return token, nil
}

// CurrentUser fetches the account behind the current session
func (s *UserService) CurrentUser(ctx context.Context) (*domain.User, error) {
	data, err := s.http.Get(ctx, "/users/me")
	if err != nil {
		return nil, err
	}
	return envelope.DecodeOne[domain.User](data, "user")
}

// Logout clears the local session. The token is opaque and expires
// server-side; there is nothing to revoke remotely.
func (s *UserService) Logout() error {
	return s.session.Clear()
}
