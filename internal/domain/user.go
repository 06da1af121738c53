package domain

import (
	"context"
	"time"
)

// User represents a platform account. Usernames are unique and immutable
// after registration.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserCreate is the registration payload
type UserCreate struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// UserLogin is the login payload
type UserLogin struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Token is an opaque bearer credential returned by login
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// UserService defines the user operations both the real and mock
// implementations provide.
type UserService interface {
	Register(ctx context.Context, user UserCreate) (*User, error)
	Login(ctx context.Context, credentials UserLogin) (*Token, error)
	CurrentUser(ctx context.Context) (*User, error)
}
