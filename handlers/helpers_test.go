package handlers

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"transferadmin/api"
	"transferadmin/auth"
	"transferadmin/repository"
	"transferadmin/views"
)

// fakeBackend answers "METHOD /api/path" routes and counts every hit.
type fakeBackend struct {
	mu     sync.Mutex
	routes map[string]http.HandlerFunc
	hits   map[string]int
	last   map[string]*http.Request
	bodies map[string]string
}

func (b *fakeBackend) handle(method, path string, fn http.HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.routes[method+" "+path] = fn
}

func (b *fakeBackend) reply(method, path string, status int, body string) {
	b.handle(method, path, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	})
}

func (b *fakeBackend) count(method, path string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hits[method+" "+path]
}

func (b *fakeBackend) request(method, path string) (*http.Request, string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	key := method + " " + path
	return b.last[key], b.bodies[key]
}

func (b *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	key := r.Method + " " + r.URL.Path
	body, _ := io.ReadAll(r.Body)

	b.mu.Lock()
	b.hits[key]++
	b.last[key] = r
	b.bodies[key] = string(body)
	fn := b.routes[key]
	b.mu.Unlock()

	if fn == nil {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"success":false,"message":"no route"}`)
		return
	}
	r.Body = io.NopCloser(strings.NewReader(string(body)))
	fn(w, r)
}

type testEnv struct {
	backend *fakeBackend
	pages   *Pages
	manager *auth.Manager
	sid     string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	backend := &fakeBackend{
		routes: make(map[string]http.HandlerFunc),
		hits:   make(map[string]int),
		last:   make(map[string]*http.Request),
		bodies: make(map[string]string),
	}
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	renderer, err := views.New()
	if err != nil {
		t.Fatalf("views.New: %v", err)
	}
	sealer, err := auth.NewSealer("handler-tests")
	if err != nil {
		t.Fatalf("NewSealer: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &testEnv{
		backend: backend,
		pages:   NewPages(api.NewClient(srv.URL, 5*time.Second, logger), renderer, logger),
		manager: auth.NewManager(repository.NewMemorySessionRepo(), sealer, false),
		sid:     uuid.NewString(),
	}
}

func (e *testEnv) signIn(t *testing.T, token string) {
	t.Helper()
	if err := e.manager.For(e.sid).SetToken(context.Background(), token); err != nil {
		t.Fatalf("SetToken: %v", err)
	}
}

func (e *testEnv) token() string {
	tok, err := e.manager.For(e.sid).Token(context.Background())
	if errors.Is(err, auth.ErrNoToken) {
		return ""
	}
	return tok
}

func (e *testEnv) newRequest(method, target string, body io.Reader, vars map[string]string) *http.Request {
	req := httptest.NewRequest(method, target, body)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: e.sid})
	if vars != nil {
		req = mux.SetURLVars(req, vars)
	}
	return req
}

func (e *testEnv) formRequest(method, target, form string, vars map[string]string) *http.Request {
	req := e.newRequest(method, target, strings.NewReader(form), vars)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// serve runs fn behind the session middleware and, when signedIn, RequireAuth.
func (e *testEnv) serve(fn http.HandlerFunc, req *http.Request, signedIn bool) *httptest.ResponseRecorder {
	var h http.Handler = fn
	if signedIn {
		h = e.pages.RequireAuth(h)
	}
	rec := httptest.NewRecorder()
	e.manager.Middleware(h).ServeHTTP(rec, req)
	return rec
}

func assertRedirect(t *testing.T, rec *httptest.ResponseRecorder, location string) {
	t.Helper()
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Location"); got != location {
		t.Fatalf("expected redirect to %s, got %s", location, got)
	}
}
