package handlers

import (
	"errors"
	"net/http"

	"transferadmin/api"
	"transferadmin/auth"
	"transferadmin/form"
)

type signInForm struct {
	Email string
}

type AuthHandler struct {
	*Pages
}

// SignInPage shows the sign-in form. Opening it discards any stored token.
func (h *AuthHandler) SignInPage(w http.ResponseWriter, r *http.Request) {
	clearToken(h.Pages, r)
	h.render(w, r, http.StatusOK, "signin", Page{Title: "Sign in", Content: signInForm{}})
}

// SignIn stores the token only when the backend returned both token and user.
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	email := r.PostFormValue("email")
	page := Page{Title: "Sign in", Content: signInForm{Email: email}}

	sub := form.New("email", "password").
		Set("email", email).
		Set("password", r.PostFormValue("password"))
	if err := sub.Validate(); err != nil {
		h.fail(w, r, err, "signin", page)
		return
	}

	result, err := h.API.Login(r.Context(), sub.Get("email"), sub.Get("password"))
	if err != nil {
		h.Logger.InfoContext(r.Context(), "sign-in rejected", "email", email, "error", err)
		if errors.Is(err, api.ErrUnauthorized) {
			clearToken(h.Pages, r)
		}
		page.Alert = api.Message(err)
		h.render(w, r, statusFor(err), "signin", page)
		return
	}

	ac := auth.FromContext(r.Context())
	if ac == nil {
		http.Error(w, "no session", http.StatusInternalServerError)
		return
	}
	if err := ac.SetToken(r.Context(), result.Token); err != nil {
		h.Logger.ErrorContext(r.Context(), "failed to store token", "error", err)
		page.Alert = api.Message(err)
		h.render(w, r, http.StatusInternalServerError, "signin", page)
		return
	}

	h.Logger.InfoContext(r.Context(), "admin signed in", "user_id", result.User.ID, "role", result.User.Role)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	clearToken(h.Pages, r)
	http.Redirect(w, r, signInPath, http.StatusSeeOther)
}
