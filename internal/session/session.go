// Package session holds the single bearer-token credential slot for a
// console session. The slot is an explicit object handed to the transport
// rather than ambient global state: login writes it, logout or a 401
// response clears it, and every outgoing request reads it.
package session

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// TokenFileName is the well-known name the file store keeps the token under.
const TokenFileName = "token"

// Store is the credential slot contract
type Store interface {
	// Token returns the current bearer token, or ok=false when the
	// session is unauthenticated.
	Token() (token string, ok bool)
	SetToken(token string) error
	Clear() error
}

// MemoryStore keeps the token in memory for the lifetime of the process.
// Safe for concurrent use.
type MemoryStore struct {
	mu    sync.RWMutex
	token string
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Token returns the stored token
func (s *MemoryStore) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

// SetToken stores the token
func (s *MemoryStore) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

// Clear empties the slot
func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}

// FileStore persists the token to a single file so CLI invocations share a
// session, mirroring the browser console's persistent token slot. The file
// is created with 0600.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a store backed by dir/TokenFileName
func NewFileStore(dir string) *FileStore {
	return &FileStore{path: filepath.Join(dir, TokenFileName)}
}

// Token reads the token file
func (s *FileStore) Token() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", false
	}
	token := strings.TrimSpace(string(data))
	return token, token != ""
}

// SetToken writes the token file
func (s *FileStore) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path, []byte(token+"\n"), 0o600)
}

// Clear removes the token file. A missing file is not an error.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
