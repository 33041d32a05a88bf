package sales

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Session is the signed-in identity. It is built once at the root and passed
// to every component that needs the business or the token.
type Session struct {
	Business string `yaml:"business" json:"business"`
	Token    string `yaml:"token" json:"-"`
	Email    string `yaml:"email" json:"email"`
	Name     string `yaml:"name" json:"name"`
	Role     string `yaml:"role,omitempty" json:"role,omitempty"`
}

// Require fails with ErrMissingSession when business or token is empty.
func (s Session) Require() error {
	if strings.TrimSpace(s.Business) == "" || strings.TrimSpace(s.Token) == "" {
		return ErrMissingSession
	}
	return nil
}

// Current lets a plain Session act as a SessionSource.
func (s Session) Current() Session { return s }

// SessionSource yields the current session on demand.
type SessionSource interface {
	Current() Session
}

// SessionStore persists the session between runs.
type SessionStore interface {
	Load(ctx context.Context) (Session, error)
	Save(ctx context.Context, session Session) error
	Clear(ctx context.Context) error
}

// TokenRefresher exchanges a token for a fresh one.
type TokenRefresher interface {
	RefreshToken(ctx context.Context, token string) (string, error)
}

// RefreshSession renews the stored token. Any failure clears the store and
// returns ErrSessionExpired so callers send the user back to login.
func RefreshSession(ctx context.Context, store SessionStore, refresher TokenRefresher) (Session, error) {
	if store == nil || refresher == nil {
		return Session{}, errors.New("sales: refresh requires store and refresher")
	}
	session, err := store.Load(ctx)
	if err != nil {
		return Session{}, fmt.Errorf("sales: load session: %w", err)
	}
	if strings.TrimSpace(session.Token) == "" {
		_ = store.Clear(ctx)
		return Session{}, ErrSessionExpired
	}
	token, err := refresher.RefreshToken(ctx, session.Token)
	if err != nil || strings.TrimSpace(token) == "" {
		_ = store.Clear(ctx)
		if err == nil {
			return Session{}, ErrSessionExpired
		}
		return Session{}, fmt.Errorf("%w: %w", ErrSessionExpired, err)
	}
	session.Token = token
	if err := store.Save(ctx, session); err != nil {
		return Session{}, fmt.Errorf("sales: save session: %w", err)
	}
	return session, nil
}

// MemorySessionStore keeps the session in process.
type MemorySessionStore struct {
	mu      sync.RWMutex
	session Session
}

// NewMemorySessionStore seeds the store with an initial session.
func NewMemorySessionStore(initial Session) *MemorySessionStore {
	return &MemorySessionStore{session: initial}
}

func (s *MemorySessionStore) Load(context.Context) (Session, error) {
	return s.Current(), nil
}

func (s *MemorySessionStore) Save(_ context.Context, session Session) error {
	s.mu.Lock()
	s.session = session
	s.mu.Unlock()
	return nil
}

func (s *MemorySessionStore) Clear(context.Context) error {
	s.mu.Lock()
	s.session = Session{}
	s.mu.Unlock()
	return nil
}

// Current returns a copy of the stored session.
func (s *MemorySessionStore) Current() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

// FileSessionStore persists the session as YAML on disk with 0600 permissions.
type FileSessionStore struct {
	path string
	mu   sync.Mutex
}

// NewFileSessionStore stores the session at path.
func NewFileSessionStore(path string) *FileSessionStore {
	return &FileSessionStore{path: path}
}

// Path returns the backing file.
func (s *FileSessionStore) Path() string { return s.path }

// Load reads the session; a missing file yields an empty session.
func (s *FileSessionStore) Load(context.Context) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	file, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Session{}, nil
		}
		return Session{}, fmt.Errorf("sales: open session file: %w", err)
	}
	defer file.Close()
	var session Session
	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(&session); err != nil {
		return Session{}, fmt.Errorf("sales: decode session file: %w", err)
	}
	return session, nil
}

// Save writes the session, creating parent directories as needed.
func (s *FileSessionStore) Save(_ context.Context, session Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("sales: create session dir: %w", err)
	}
	data, err := yaml.Marshal(session)
	if err != nil {
		return fmt.Errorf("sales: encode session: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("sales: write session file: %w", err)
	}
	return nil
}

// Clear removes the session file.
func (s *FileSessionStore) Clear(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("sales: remove session file: %w", err)
	}
	return nil
}

// Current loads the session, returning an empty one on error.
func (s *FileSessionStore) Current() Session {
	session, err := s.Load(context.Background())
	if err != nil {
		return Session{}
	}
	return session
}
