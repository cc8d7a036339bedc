// Package session holds the authenticated identity. It is the single
// writer of the durable session file; every other component reads
// through it.
package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/balkashynov/onboard/internal/models"
)

// ErrNotLoggedIn is returned by accessors that require an identity.
var ErrNotLoggedIn = errors.New("not logged in")

const (
	sessionFile = "session.json"
	themeFile   = "theme"
)

// Store keeps the current session in memory, mirrored to one durable
// JSON file. Memory and disk are updated under the same lock so
// readers never observe them diverging.
type Store struct {
	mu      sync.Mutex
	dir     string
	current *models.Session
}

// NewStore creates a store rooted at dir. The directory is created
// lazily on the first write.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// DefaultDir returns the per-user data directory.
func DefaultDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".onboard"), nil
}

// Restore reads the durable session file. A missing or malformed file
// means starting unauthenticated; it is never an error.
func (s *Store) Restore() {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(filepath.Join(s.dir, sessionFile))
	if err != nil {
		s.current = nil
		return
	}

	var sess models.Session
	if err := json.Unmarshal(raw, &sess); err != nil || sess.Token == "" {
		s.current = nil
		return
	}
	s.current = &sess
}

// Set persists the session to disk and then exposes it to readers.
func (s *Store) Set(sess models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return err
	}
	raw, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(s.dir, sessionFile), raw, 0600); err != nil {
		return err
	}
	s.current = &sess
	return nil
}

// Clear removes the session from memory and disk. Idempotent.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = nil
	_ = os.Remove(filepath.Join(s.dir, sessionFile))
}

// Current returns a copy of the active session, or false when
// unauthenticated.
func (s *Store) Current() (models.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return models.Session{}, false
	}
	return *s.current, true
}

// Token returns the bearer credential of the active session.
func (s *Store) Token() (string, error) {
	sess, ok := s.Current()
	if !ok {
		return "", ErrNotLoggedIn
	}
	return sess.Token, nil
}

// Theme returns the persisted UI theme preference, defaulting to
// "dark" when unset.
func (s *Store) Theme() string {
	raw, err := os.ReadFile(filepath.Join(s.dir, themeFile))
	if err != nil {
		return "dark"
	}
	theme := strings.TrimSpace(string(raw))
	if theme == "" {
		return "dark"
	}
	return theme
}

// SetTheme persists the UI theme preference.
func (s *Store) SetTheme(theme string) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.dir, themeFile), []byte(theme+"\n"), 0644)
}
