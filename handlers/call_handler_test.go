package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"transferadmin/calling"
)

func newCallHandler(env *testEnv) *CallHandler {
	return &CallHandler{Pages: env.pages, Hub: calling.NewHub(calling.HubOptions{Countdown: 30, Logger: env.pages.Logger})}
}

func ring(t *testing.T, h *CallHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.Incoming(rec, httptest.NewRequest(http.MethodPost, "/calls/incoming", strings.NewReader(body)))
	return rec
}

func TestIncomingCallRingsAndShowsCurrent(t *testing.T) {
	env := newTestEnv(t)
	env.signIn(t, "tok-1")
	h := newCallHandler(env)
	t.Cleanup(h.Hub.Close)

	rec := ring(t, h, `{"id":"c1","name":"Asha","avatar":"https://cdn.example/a.png"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d %s", rec.Code, rec.Body.String())
	}

	cur := env.serve(h.Current, env.newRequest(http.MethodGet, "/calls/current", nil, nil), true)
	var snap calling.Snapshot
	if err := json.NewDecoder(cur.Body).Decode(&snap); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if snap.Caller.Name != "Asha" || snap.Phase != calling.PhaseRinging || snap.Remaining != 30 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}

	if busy := ring(t, h, `{"id":"c2","name":"Vikram"}`); busy.Code != http.StatusConflict {
		t.Fatalf("second call should be refused while ringing, got %d", busy.Code)
	}
}

func TestIncomingCallRequiresCallerID(t *testing.T) {
	env := newTestEnv(t)
	h := newCallHandler(env)

	if rec := ring(t, h, `{"name":"Asha"}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if rec := ring(t, h, `not json`); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestDeclineCallHidesAndReportsToBackend(t *testing.T) {
	env := newTestEnv(t)
	env.signIn(t, "tok-1")
	env.backend.reply(http.MethodPost, "/api/admin/calls/c1/decline", http.StatusOK, `{"success":true}`)
	h := newCallHandler(env)
	t.Cleanup(h.Hub.Close)

	var snap struct {
		Data calling.Snapshot `json:"data"`
	}
	if err := json.NewDecoder(ring(t, h, `{"id":"c1","name":"Asha"}`).Body).Decode(&snap); err != nil {
		t.Fatalf("decode: %v", err)
	}

	rec := env.serve(h.Decline, env.newRequest(http.MethodPost, "/calls/x/decline", nil, map[string]string{"id": snap.Data.ID}), true)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d %s", rec.Code, rec.Body.String())
	}
	if n := env.backend.count(http.MethodPost, "/api/admin/calls/c1/decline"); n != 1 {
		t.Fatalf("expected one decline report, got %d", n)
	}

	if cur := env.serve(h.Current, env.newRequest(http.MethodGet, "/calls/current", nil, nil), true); cur.Code != http.StatusNoContent {
		t.Fatalf("declined call must be hidden, got %d", cur.Code)
	}

	again := env.serve(h.Accept, env.newRequest(http.MethodPost, "/calls/x/accept", nil, map[string]string{"id": snap.Data.ID}), true)
	if again.Code != http.StatusNotFound {
		t.Fatalf("a declined call cannot be accepted, got %d", again.Code)
	}
}

func TestAcceptCallDoesNotReportDecline(t *testing.T) {
	env := newTestEnv(t)
	env.signIn(t, "tok-1")
	h := newCallHandler(env)
	t.Cleanup(h.Hub.Close)

	var snap struct {
		Data calling.Snapshot `json:"data"`
	}
	if err := json.NewDecoder(ring(t, h, `{"id":"c1","name":"Asha"}`).Body).Decode(&snap); err != nil {
		t.Fatalf("decode: %v", err)
	}

	rec := env.serve(h.Accept, env.newRequest(http.MethodPost, "/calls/x/accept", nil, map[string]string{"id": snap.Data.ID}), true)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if env.backend.count(http.MethodPost, "/api/admin/calls/c1/decline") != 0 {
		t.Fatalf("accepted call must not be reported as declined")
	}
}
