package mock

import (
	"context"
	"math/rand"
	"time"

	"github.com/skyfn/skyfn-console/internal/domain"
	"github.com/skyfn/skyfn-console/internal/session"
)

// UserService is the mock implementation of domain.UserService
type UserService struct {
	store   *Store
	session session.Store
}

var _ domain.UserService = (*UserService)(nil)

// NewUserService creates a mock UserService. A successful login writes the
// canned token into the session, matching the real service's behavior.
func NewUserService(store *Store, sess session.Store) *UserService {
	return &UserService{store: store, session: sess}
}

const mockAccessToken = "mock_jwt_token_12345"

// Register creates a new account with a random id
func (s *UserService) Register(ctx context.Context, user domain.UserCreate) (*domain.User, error) {
	s.store.delay(ctx, 500*time.Millisecond)

	now := time.Now().UTC()
	created := domain.User{
		ID:        int64(rand.Intn(100000) + 1000),
		Username:  user.Username,
		Name:      user.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.store.mu.Lock()
	s.store.users = append(s.store.users, created)
	s.store.mu.Unlock()

	return &created, nil
}

// Login returns the canned token. The reserved username "error" is the one
// way to exercise the invalid-credentials path.
func (s *UserService) Login(ctx context.Context, credentials domain.UserLogin) (*domain.Token, error) {
	s.store.delay(ctx, 300*time.Millisecond)

	if credentials.Username == "error" {
		return nil, domain.ErrInvalidCredentials
	}

	token := &domain.Token{AccessToken: mockAccessToken, TokenType: "bearer"}
	if s.session != nil {
		if err := s.session.SetToken(token.AccessToken); err != nil {
			return nil, err
		}
	}
	return token, nil
}

// CurrentUser returns the first fixture user
func (s *UserService) CurrentUser(ctx context.Context) (*domain.User, error) {
	s.store.delay(ctx, 200*time.Millisecond)

	s.store.mu.RLock()
	defer s.store.mu.RUnlock()
	if len(s.store.users) == 0 {
		return nil, domain.ErrUserNotFound
	}
	user := s.store.users[0]
	return &user, nil
}
