package routes

import (
	"crypto/subtle"
	"encoding/json"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/gorilla/mux"

	"transferadmin/auth"
	"transferadmin/handlers"
)

// Handlers groups everything SetupRoutes wires.
type Handlers struct {
	Pages        *handlers.Pages
	Auth         *handlers.AuthHandler
	Dashboard    *handlers.DashboardHandler
	Users        *handlers.UserHandler
	Admins       *handlers.AdminHandler
	Blogs        *handlers.BlogHandler
	Templates    *handlers.TemplateHandler
	Translations *handlers.TranslationHandler
	Settings     *handlers.SettingHandler
	Map          *handlers.MapHandler
	Reports      *handlers.ReportHandler
	Calls        *handlers.CallHandler
}

type Options struct {
	// AllowedOrigins may call the calling-kit endpoints from a browser.
	AllowedOrigins []string
	// CallsSecret is compared against CallsSecretHeader on incoming call
	// notifications. An empty secret refuses every notification.
	CallsSecret string
}

const CallsSecretHeader = "X-Calls-Secret"

type responseRecorder struct {
	http.ResponseWriter
	status int
}

func (r *responseRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func withLogging(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.InfoContext(r.Context(), "request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// CORS middleware for the JSON endpoints the calling kit talks to.
func withCORS(allowed []string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && (slices.Contains(allowed, "*") || slices.Contains(allowed, origin)) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, "+CallsSecretHeader)
			w.Header().Add("Vary", "Origin")
		}

		// Handle preflight request
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// requireSecret rejects requests whose CallsSecretHeader does not match secret.
func requireSecret(secret string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		given := r.Header.Get(CallsSecretHeader)
		if secret == "" || subtle.ConstantTimeCompare([]byte(given), []byte(secret)) != 1 {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(handlers.ApiResponse{Message: "Invalid calls secret"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func SetupRoutes(h Handlers, sessions *auth.Manager, opts Options, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	public := func(fn http.HandlerFunc) http.Handler {
		return sessions.Middleware(http.HandlerFunc(handlers.RecoverWrapper(fn)))
	}
	signedIn := func(fn http.HandlerFunc) http.Handler {
		return sessions.Middleware(h.Pages.RequireAuth(http.HandlerFunc(handlers.RecoverWrapper(fn))))
	}
	adminOnly := func(fn http.HandlerFunc) http.Handler {
		return sessions.Middleware(h.Pages.RequireAuth(h.Pages.RequireAdmin(http.HandlerFunc(handlers.RecoverWrapper(fn)))))
	}

	r := mux.NewRouter()

	r.Handle("/healthz", http.HandlerFunc(handlers.Healthz)).Methods(http.MethodGet)

	// Auth routes
	r.Handle("/signin", public(h.Auth.SignInPage)).Methods(http.MethodGet)
	r.Handle("/signin", public(h.Auth.SignIn)).Methods(http.MethodPost)
	r.Handle("/signout", public(h.Auth.SignOut)).Methods(http.MethodGet, http.MethodPost)

	r.Handle("/", signedIn(h.Dashboard.Statistics)).Methods(http.MethodGet)
	r.Handle("/reports/statistics.pdf", signedIn(h.Reports.StatisticsPDF)).Methods(http.MethodGet)

	// User routes
	r.Handle("/users", signedIn(h.Users.List)).Methods(http.MethodGet)
	r.Handle("/users/{id}/toggle", signedIn(h.Users.Toggle)).Methods(http.MethodPost)
	r.Handle("/users/{id}/delete", signedIn(h.Users.Delete)).Methods(http.MethodGet, http.MethodPost)
	r.Handle("/admins", adminOnly(h.Admins.List)).Methods(http.MethodGet)

	// Blog routes
	r.Handle("/blogs", signedIn(h.Blogs.List)).Methods(http.MethodGet)
	r.Handle("/blogs/new", signedIn(h.Blogs.New)).Methods(http.MethodGet)
	r.Handle("/blogs/new", signedIn(h.Blogs.Create)).Methods(http.MethodPost)
	r.Handle("/blogs/{id}/delete", signedIn(h.Blogs.Delete)).Methods(http.MethodGet, http.MethodPost)

	// Admin-only content
	r.Handle("/templates", adminOnly(h.Templates.List)).Methods(http.MethodGet)
	r.Handle("/templates/{id}/delete", adminOnly(h.Templates.Delete)).Methods(http.MethodGet, http.MethodPost)
	r.Handle("/translations", adminOnly(h.Translations.List)).Methods(http.MethodGet)
	r.Handle("/translations/{id}", adminOnly(h.Translations.Edit)).Methods(http.MethodGet)
	r.Handle("/translations/{id}", adminOnly(h.Translations.Update)).Methods(http.MethodPost)
	r.Handle("/translations/{id}/delete", adminOnly(h.Translations.Delete)).Methods(http.MethodGet, http.MethodPost)
	r.Handle("/settings", adminOnly(h.Settings.List)).Methods(http.MethodGet)
	r.Handle("/settings/{key}", adminOnly(h.Settings.Edit)).Methods(http.MethodGet)
	r.Handle("/settings/{key}", adminOnly(h.Settings.Update)).Methods(http.MethodPost)
	r.Handle("/map", signedIn(h.Map.Show)).Methods(http.MethodGet)

	// Calling widget
	r.Handle("/calls/incoming", withCORS(opts.AllowedOrigins, requireSecret(opts.CallsSecret, http.HandlerFunc(handlers.RecoverWrapper(h.Calls.Incoming))))).
		Methods(http.MethodPost, http.MethodOptions)
	r.Handle("/calls/current", signedIn(h.Calls.Current)).Methods(http.MethodGet)
	r.Handle("/calls/{id}/accept", signedIn(h.Calls.Accept)).Methods(http.MethodPost)
	r.Handle("/calls/{id}/decline", signedIn(h.Calls.Decline)).Methods(http.MethodPost)

	return withLogging(logger, r)
}
