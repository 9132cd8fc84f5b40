package handlers

import (
	"context"
	"errors"
	"net/http"

	"transferadmin/auth"
)

const signInPath = "/signin"

type viewerKey struct{}

func viewer(ctx context.Context) auth.Claims {
	c, _ := ctx.Value(viewerKey{}).(auth.Claims)
	return c
}

// RequireAuth lets the request through only when the session holds a usable
// token, and records its claims for the rest of the request.
func (p *Pages) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ac := auth.FromContext(r.Context())
		if ac == nil {
			http.Redirect(w, r, signInPath, http.StatusSeeOther)
			return
		}

		claims, err := ac.Claims(r.Context())
		if err != nil {
			if !errors.Is(err, auth.ErrNoToken) {
				p.Logger.ErrorContext(r.Context(), "failed to load session token", "error", err)
			}
			http.Redirect(w, r, signInPath, http.StatusSeeOther)
			return
		}

		ctx := context.WithValue(r.Context(), viewerKey{}, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin refuses moderators. It must run inside RequireAuth.
func (p *Pages) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if viewer(r.Context()).IsModerator() {
			p.message(w, r, http.StatusForbidden, "Forbidden", "You do not have access to this page.")
			return
		}
		next.ServeHTTP(w, r)
	})
}
