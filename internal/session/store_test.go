package session

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/balkashynov/onboard/internal/models"
)

func testSession() models.Session {
	return models.Session{
		ID:     3,
		Name:   "Maya Chen",
		Role:   models.RoleEmployee,
		Email:  "maya@onboard.local",
		Avatar: "MC",
		Token:  "tok123",
	}
}

func TestRestoreMissingFile(t *testing.T) {
	s := NewStore(t.TempDir())
	s.Restore()

	if _, ok := s.Current(); ok {
		t.Fatal("expected no session for a missing file")
	}
	if _, err := s.Token(); !errors.Is(err, ErrNotLoggedIn) {
		t.Fatalf("expected ErrNotLoggedIn, got %v", err)
	}
}

func TestRestoreMalformedFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "session.json"), []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}

	s := NewStore(dir)
	s.Restore()
	if _, ok := s.Current(); ok {
		t.Fatal("expected a malformed file to restore as unauthenticated")
	}
}

func TestRestoreEmptyToken(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "session.json"), []byte(`{"id":1,"token":""}`), 0600); err != nil {
		t.Fatal(err)
	}

	s := NewStore(dir)
	s.Restore()
	if _, ok := s.Current(); ok {
		t.Fatal("a session without a token is not a session")
	}
}

func TestSetThenRestoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir)
	if err := s.Set(testSession()); err != nil {
		t.Fatalf("set: %v", err)
	}

	token, err := s.Token()
	if err != nil || token != "tok123" {
		t.Fatalf("token: %q, %v", token, err)
	}

	// A second store over the same directory sees the persisted session.
	s2 := NewStore(dir)
	s2.Restore()
	sess, ok := s2.Current()
	if !ok {
		t.Fatal("expected the persisted session to restore")
	}
	if sess != testSession() {
		t.Fatalf("restored session differs: %+v", sess)
	}
}

func TestClearIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir)
	if err := s.Set(testSession()); err != nil {
		t.Fatalf("set: %v", err)
	}

	s.Clear()
	s.Clear()

	if _, ok := s.Current(); ok {
		t.Fatal("expected no session after Clear")
	}
	if _, err := os.Stat(filepath.Join(dir, "session.json")); !os.IsNotExist(err) {
		t.Fatal("expected the session file to be removed")
	}

	s2 := NewStore(dir)
	s2.Restore()
	if _, ok := s2.Current(); ok {
		t.Fatal("cleared session must not restore")
	}
}

func TestThemeDefaultsToDark(t *testing.T) {
	s := NewStore(t.TempDir())
	if got := s.Theme(); got != "dark" {
		t.Fatalf("expected dark default, got %q", got)
	}
}

func TestThemeRoundTrip(t *testing.T) {
	s := NewStore(t.TempDir())
	if err := s.SetTheme("light"); err != nil {
		t.Fatalf("set theme: %v", err)
	}
	if got := s.Theme(); got != "light" {
		t.Fatalf("expected light, got %q", got)
	}
}
