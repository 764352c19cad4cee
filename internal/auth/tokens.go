// Package auth manages the bearer-token session against the remote issuer:
// login, silent refresh, logout, and the HTTP transport that retries a
// request once after a 401 by refreshing the access token.
package auth

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// TokenPair is the access/refresh pair issued by the token endpoint.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// IsZero reports whether no session is stored.
func (p TokenPair) IsZero() bool {
	return p.Access == "" && p.Refresh == ""
}

// Store persists the token pair between runs.
type Store interface {
	Load() (TokenPair, error)
	Save(TokenPair) error
	Clear() error
}

// FileStore keeps the pair as a mode-0600 JSON file.
type FileStore struct {
	path string
}

// NewFileStore returns a store at the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultSessionPath returns the standard session file location under the
// user's home directory.
func DefaultSessionPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".quadro", "session.json"), nil
}

// Load reads the stored pair. A missing file is an empty session, not an
// error.
func (s *FileStore) Load() (TokenPair, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return TokenPair{}, nil
		}
		return TokenPair{}, err
	}
	var pair TokenPair
	if err := json.Unmarshal(data, &pair); err != nil {
		return TokenPair{}, err
	}
	return pair, nil
}

// Save writes the pair, creating the parent directory if needed.
func (s *FileStore) Save(pair TokenPair) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	data, err := json.Marshal(pair)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

// Clear removes the stored pair.
func (s *FileStore) Clear() error {
	err := os.Remove(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// MemoryStore is an in-process Store for tests.
type MemoryStore struct {
	pair TokenPair
}

func (s *MemoryStore) Load() (TokenPair, error) { return s.pair, nil }

func (s *MemoryStore) Save(pair TokenPair) error {
	s.pair = pair
	return nil
}

func (s *MemoryStore) Clear() error {
	s.pair = TokenPair{}
	return nil
}
