package handlers

import (
	"net/http"
	"strings"
	"testing"
)

func TestSignInStoresTokenAndRedirects(t *testing.T) {
	env := newTestEnv(t)
	env.backend.reply(http.MethodPost, "/api/auth/admin/login", http.StatusOK,
		`{"success":true,"data":{"token":"tok-1","user":{"id":"a1","name":"Ann","isAdmin":true}}}`)
	h := &AuthHandler{Pages: env.pages}

	rec := env.serve(h.SignIn, env.formRequest(http.MethodPost, "/signin", "email=ann%40example.com&password=pw", nil), false)

	assertRedirect(t, rec, "/")
	if env.token() != "tok-1" {
		t.Fatalf("expected token stored, got %q", env.token())
	}
	_, body := env.backend.request(http.MethodPost, "/api/auth/admin/login")
	if !strings.Contains(body, `"email":"ann@example.com"`) {
		t.Fatalf("unexpected login body %s", body)
	}
}

func TestSignInIncompleteLoginPersistsNothing(t *testing.T) {
	for name, data := range map[string]string{
		"no user":  `{"token":"tok-1"}`,
		"no token": `{"user":{"id":"a1"}}`,
		"empty":    `null`,
	} {
		t.Run(name, func(t *testing.T) {
			env := newTestEnv(t)
			env.backend.reply(http.MethodPost, "/api/auth/admin/login", http.StatusOK, `{"success":true,"data":`+data+`}`)
			h := &AuthHandler{Pages: env.pages}

			rec := env.serve(h.SignIn, env.formRequest(http.MethodPost, "/signin", "email=a%40b.c&password=pw", nil), false)

			if rec.Code == http.StatusSeeOther {
				t.Fatalf("incomplete login must not redirect")
			}
			if !strings.Contains(rec.Body.String(), "incomplete") {
				t.Fatalf("expected incomplete-login alert, got %s", rec.Body.String())
			}
			if env.token() != "" {
				t.Fatalf("token must not be stored, got %q", env.token())
			}
		})
	}
}

func TestSignInRequiresFields(t *testing.T) {
	env := newTestEnv(t)
	h := &AuthHandler{Pages: env.pages}

	rec := env.serve(h.SignIn, env.formRequest(http.MethodPost, "/signin", "email=a%40b.c", nil), false)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Please fill in: password") {
		t.Fatalf("expected missing password alert, got %s", rec.Body.String())
	}
	if env.backend.count(http.MethodPost, "/api/auth/admin/login") != 0 {
		t.Fatalf("backend must not be called")
	}
}

func TestSignInShowsServerMessage(t *testing.T) {
	env := newTestEnv(t)
	env.backend.reply(http.MethodPost, "/api/auth/admin/login", http.StatusUnauthorized,
		`{"success":false,"message":"Invalid email or password"}`)
	h := &AuthHandler{Pages: env.pages}

	rec := env.serve(h.SignIn, env.formRequest(http.MethodPost, "/signin", "email=a%40b.c&password=bad", nil), false)

	if !strings.Contains(rec.Body.String(), "Invalid email or password") {
		t.Fatalf("expected server message, got %s", rec.Body.String())
	}
}

func TestSignInPageClearsToken(t *testing.T) {
	env := newTestEnv(t)
	env.signIn(t, "tok-1")
	h := &AuthHandler{Pages: env.pages}

	rec := env.serve(h.SignInPage, env.newRequest(http.MethodGet, "/signin", nil, nil), false)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if env.token() != "" {
		t.Fatalf("expected token cleared")
	}
}

func TestSignOutClearsToken(t *testing.T) {
	env := newTestEnv(t)
	env.signIn(t, "tok-1")
	h := &AuthHandler{Pages: env.pages}

	rec := env.serve(h.SignOut, env.newRequest(http.MethodGet, "/signout", nil, nil), false)

	assertRedirect(t, rec, "/signin")
	if env.token() != "" {
		t.Fatalf("expected token cleared")
	}
}

func TestSignInRejectedWith401ClearsExistingToken(t *testing.T) {
	env := newTestEnv(t)
	env.signIn(t, "live-token")
	env.backend.reply(http.MethodPost, "/api/auth/admin/login", http.StatusUnauthorized,
		`{"success":false,"message":"Invalid email or password"}`)
	h := &AuthHandler{Pages: env.pages}

	rec := env.serve(h.SignIn, env.formRequest(http.MethodPost, "/signin", "email=a%40b.c&password=bad", nil), false)

	if rec.Code == http.StatusSeeOther {
		t.Fatalf("rejected sign-in must not redirect")
	}
	if env.token() != "" {
		t.Fatalf("401 from login must clear the stored token, still have %q", env.token())
	}
}

func TestSignInRejectedWithoutExistingTokenStaysOnForm(t *testing.T) {
	env := newTestEnv(t)
	env.backend.reply(http.MethodPost, "/api/auth/admin/login", http.StatusBadRequest,
		`{"success":false,"message":"account locked"}`)
	h := &AuthHandler{Pages: env.pages}

	rec := env.serve(h.SignIn, env.formRequest(http.MethodPost, "/signin", "email=a%40b.c&password=pw", nil), false)

	if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), "account locked") {
		t.Fatalf("expected alert on sign-in form, got %d %s", rec.Code, rec.Body.String())
	}
}
