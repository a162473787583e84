package testutil

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"sync"
	"testing"
)

var (
	gameModsPath      = regexp.MustCompile(`^/v1/games/\d+/mods$`)
	subscriptionsPath = regexp.MustCompile(`^/v1/mods/\d+/subscriptions$`)
)

// FakeService simulates the content-distribution service's session and
// catalogue endpoints. Zero status fields mean "success" for the endpoint's
// usual code; tests override them to provoke failures.
type FakeService struct {
	Server *httptest.Server

	// RequireAPIKey, when set, rejects any request whose X-Api-Key header
	// differs.
	RequireAPIKey string
	// Hang, when true, blocks every handler until the test finishes;
	// used to exercise runner timeouts.
	Hang bool

	InitStatus      int
	FetchStatus     int
	SubscribeStatus int
	ShutdownStatus  int

	mu       sync.Mutex
	requests []string
	hangCh   chan struct{}
}

// NewFakeService starts the fake and registers its shutdown with the test.
func NewFakeService(t *testing.T) *FakeService {
	t.Helper()
	f := &FakeService{hangCh: make(chan struct{})}
	f.Server = httptest.NewServer(http.HandlerFunc(f.handle))
	t.Cleanup(func() {
		close(f.hangCh)
		f.Server.Close()
	})
	return f
}

// URL returns the fake's base URL for client configuration.
func (f *FakeService) URL() string {
	return f.Server.URL
}

// Requests returns "METHOD path" entries in arrival order.
func (f *FakeService) Requests() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.requests))
	copy(out, f.requests)
	return out
}

func (f *FakeService) handle(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.requests = append(f.requests, r.Method+" "+r.URL.Path)
	f.mu.Unlock()

	if f.Hang {
		<-f.hangCh
		return
	}

	if f.RequireAPIKey != "" && r.Header.Get("X-Api-Key") != f.RequireAPIKey {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/v1/sessions":
		w.WriteHeader(statusOr(f.InitStatus, http.StatusNoContent))
	case r.Method == http.MethodDelete && r.URL.Path == "/v1/sessions/current":
		w.WriteHeader(statusOr(f.ShutdownStatus, http.StatusNoContent))
	case r.Method == http.MethodGet && gameModsPath.MatchString(r.URL.Path):
		w.WriteHeader(statusOr(f.FetchStatus, http.StatusOK))
	case r.Method == http.MethodPost && subscriptionsPath.MatchString(r.URL.Path):
		w.WriteHeader(statusOr(f.SubscribeStatus, http.StatusCreated))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func statusOr(status, fallback int) int {
	if status == 0 {
		return fallback
	}
	return status
}
