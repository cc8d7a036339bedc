package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

// fakeCreds is an in-memory Credentials for client tests.
type fakeCreds struct {
	mu      sync.Mutex
	token   string
	cleared bool
}

func (f *fakeCreds) Token() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.token == "" {
		return "", errors.New("not logged in")
	}
	return f.token, nil
}

func (f *fakeCreds) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = ""
	f.cleared = true
}

func (f *fakeCreds) wasCleared() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cleared
}

func TestClientAttachesBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, &fakeCreds{token: "tok123"})
	if _, err := c.Employees.List(context.Background()); err != nil {
		t.Fatalf("list: %v", err)
	}
	if gotAuth != "Bearer tok123" {
		t.Fatalf("expected bearer header, got %q", gotAuth)
	}
}

func TestUnauthorizedClearsSessionAndFiresHook(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"token expired"}`))
	}))
	defer srv.Close()

	creds := &fakeCreds{token: "stale"}
	c := NewClient(srv.URL, creds)
	var hookFired bool
	c.OnUnauthorized(func() { hookFired = true })

	_, err := c.Employees.List(context.Background())
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if !creds.wasCleared() {
		t.Fatal("expected credentials to be cleared")
	}
	if !hookFired {
		t.Fatal("expected the unauthorized hook to fire")
	}
	if !Fatal(err) {
		t.Fatal("unauthorized must be fatal")
	}
}

func TestForbiddenLeavesSessionIntact(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":"hr only"}`))
	}))
	defer srv.Close()

	creds := &fakeCreds{token: "tok"}
	c := NewClient(srv.URL, creds)

	_, err := c.Employees.List(context.Background())
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if creds.wasCleared() {
		t.Fatal("forbidden must not clear the session")
	}
	if Fatal(err) {
		t.Fatal("forbidden is not fatal")
	}
}

func TestLoginFailureIsInvalidCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"invalid credentials"}`))
	}))
	defer srv.Close()

	creds := &fakeCreds{}
	c := NewClient(srv.URL, creds)

	_, err := c.Auth.Login(context.Background(), "maya@onboard.local", "wrong")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if errors.Is(err, ErrUnauthorized) {
		t.Fatalf("a failed login must not classify as an expired session")
	}
	if creds.wasCleared() {
		t.Fatal("failed login must not touch stored credentials")
	}
}

func TestLoginFillsAvatarFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"token":"t1","user":{"id":3,"name":"Maya Chen","role":"employee","email":"maya@onboard.local","avatar":""}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, &fakeCreds{})
	sess, err := c.Auth.Login(context.Background(), "maya@onboard.local", "password123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if sess.Token != "t1" || sess.ID != 3 {
		t.Fatalf("unexpected session: %+v", sess)
	}
	if sess.Avatar != "MC" {
		t.Fatalf("expected initials fallback MC, got %q", sess.Avatar)
	}
}

func TestNotFoundClassification(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"task not found"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, &fakeCreds{token: "tok"})
	_, err := c.Tasks.Complete(context.Background(), 99)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if apiErr.Message != "task not found" {
		t.Fatalf("expected the server message, got %q", apiErr.Message)
	}
}

func TestServerErrorClassification(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, &fakeCreds{token: "tok"})
	_, err := c.Risks.Stats(context.Background())
	if !errors.Is(err, ErrServer) {
		t.Fatalf("expected ErrServer, got %v", err)
	}
}

func TestTimeoutClassification(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, &fakeCreds{token: "tok"})
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := c.Alerts.List(ctx)
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
	if !errors.Is(err, ErrNetwork) {
		t.Fatal("a timeout should also match ErrNetwork")
	}
	if !Retryable(err) {
		t.Fatal("timeouts are retryable")
	}
}

func TestNetworkErrorClassification(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	c := NewClient(srv.URL, &fakeCreds{token: "tok"})
	_, err := c.Alerts.List(context.Background())
	if !errors.Is(err, ErrNetwork) {
		t.Fatalf("expected ErrNetwork, got %v", err)
	}
	if Retryable(err) {
		t.Fatal("plain network failures are not retryable")
	}
}
