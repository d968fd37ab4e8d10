package session

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	pkgerrors "github.com/bookhaven/bookhaven-client/pkg/errors"
)

// Credentials is the persisted session pair: the bearer token and the
// serialized user snapshot, sharing one expiry window. They are always
// written and cleared together.
type Credentials struct {
	Token     string    `json:"token"`
	UserData  string    `json:"userData"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Expired reports whether the persisted window has lapsed.
func (c Credentials) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}

// CredentialStore persists the session outside process memory so it
// survives restarts. The session store is its only writer.
type CredentialStore interface {
	Read() (*Credentials, error)
	Write(creds Credentials) error
	Clear() error
}

// FileStore keeps the credentials in a JSON file with owner-only
// permissions.
type FileStore struct {
	path string
	ttl  time.Duration
}

// NewFileStore builds a file-backed store. An empty path resolves to the
// platform user config dir.
func NewFileStore(path string, ttl time.Duration) (*FileStore, error) {
	if path == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "resolve config dir")
		}
		path = filepath.Join(base, "bookhaven", "session.json")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &FileStore{path: path, ttl: ttl}, nil
}

func (s *FileStore) Read() (*Credentials, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "read session file")
	}
	var creds Credentials
	if err := json.Unmarshal(raw, &creds); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "parse session file")
	}
	return &creds, nil
}

func (s *FileStore) Write(creds Credentials) error {
	if creds.ExpiresAt.IsZero() {
		creds.ExpiresAt = time.Now().Add(s.ttl)
	}
	raw, err := json.Marshal(creds)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode session")
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create session dir")
	}
	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write session file")
	}
	return nil
}

func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "remove session file")
	}
	return nil
}

// MemStore is an in-memory credential store for tests.
type MemStore struct {
	mu    sync.Mutex
	creds *Credentials
	ttl   time.Duration
}

// NewMemStore builds an in-memory store with the given expiry window.
func NewMemStore(ttl time.Duration) *MemStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &MemStore{ttl: ttl}
}

func (s *MemStore) Read() (*Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.creds == nil {
		return nil, nil
	}
	copied := *s.creds
	return &copied, nil
}

func (s *MemStore) Write(creds Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if creds.ExpiresAt.IsZero() {
		creds.ExpiresAt = time.Now().Add(s.ttl)
	}
	s.creds = &creds
	return nil
}

func (s *MemStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = nil
	return nil
}
