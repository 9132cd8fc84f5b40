package auth

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"transferadmin/repository"
)

const (
	SessionCookieName = "admin_session"
	sessionMaxAge     = 7 * 24 * 60 * 60
)

type ctxKey struct{}

// Manager hands out a Context per browser session, keyed by an opaque cookie.
type Manager struct {
	Repo   repository.SessionRepository
	Sealer *Sealer
	Secure bool
	Now    func() time.Time
}

func NewManager(repo repository.SessionRepository, sealer *Sealer, secure bool) *Manager {
	return &Manager{Repo: repo, Sealer: sealer, Secure: secure, Now: time.Now}
}

func (m *Manager) For(sessionID string) *Context {
	now := m.Now
	if now == nil {
		now = time.Now
	}
	return &Context{repo: m.Repo, sealer: m.Sealer, sessionID: sessionID, now: now}
}

// Middleware attaches the session's Context to the request, issuing a new
// session cookie when the browser has none.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := ""
		if c, err := r.Cookie(SessionCookieName); err == nil {
			if _, err := uuid.Parse(c.Value); err == nil {
				sessionID = c.Value
			}
		}
		if sessionID == "" {
			sessionID = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookieName,
				Value:    sessionID,
				Path:     "/",
				MaxAge:   sessionMaxAge,
				HttpOnly: true,
				Secure:   m.Secure,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := WithContext(r.Context(), m.For(sessionID))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func WithContext(ctx context.Context, ac *Context) context.Context {
	return context.WithValue(ctx, ctxKey{}, ac)
}

// FromContext returns the session Context attached by Middleware, or nil.
func FromContext(ctx context.Context) *Context {
	ac, _ := ctx.Value(ctxKey{}).(*Context)
	return ac
}
