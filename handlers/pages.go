package handlers

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"

	"transferadmin/api"
	"transferadmin/auth"
	"transferadmin/form"
	"transferadmin/resource"
	"transferadmin/table"
	"transferadmin/views"
)

type Crumb struct {
	Label string
	Href  string
}

// HeaderAction is a button in the header bar. Form names the id of a form on
// the page it submits; otherwise it links to Href.
type HeaderAction struct {
	Label   string
	Href    string
	Form    string
	Primary bool
}

type NavItem struct {
	Label  string
	Href   string
	Active bool
}

// Page is the data every layout-wrapped template receives.
type Page struct {
	Title   string
	Crumbs  []Crumb
	Actions []HeaderAction
	Nav     []NavItem
	Alert   string
	Notice  string
	Content any
}

// Pages carries what every page handler needs: the backend client, the
// templates and a logger.
type Pages struct {
	API    *api.Client
	Views  *views.Renderer
	Logger *slog.Logger
}

func NewPages(client *api.Client, renderer *views.Renderer, logger *slog.Logger) *Pages {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pages{API: client, Views: renderer, Logger: logger}
}

var (
	fullNav = []NavItem{
		{Label: "Dashboard", Href: "/"},
		{Label: "Users", Href: "/users"},
		{Label: "Admins", Href: "/admins"},
		{Label: "Blogs", Href: "/blogs"},
		{Label: "Templates", Href: "/templates"},
		{Label: "Translations", Href: "/translations"},
		{Label: "Settings", Href: "/settings"},
		{Label: "Map", Href: "/map"},
	}
	moderatorNav = []NavItem{
		{Label: "Dashboard", Href: "/"},
		{Label: "Users", Href: "/users"},
		{Label: "Blogs", Href: "/blogs"},
	}
)

// page starts a Page with the navigation the signed-in viewer may see.
func (p *Pages) page(r *http.Request, title, active string) Page {
	items := fullNav
	if viewer(r.Context()).IsModerator() {
		items = moderatorNav
	}
	nav := make([]NavItem, len(items))
	for i, item := range items {
		item.Active = item.Href == active
		nav[i] = item
	}
	return Page{
		Title:  title,
		Crumbs: []Crumb{{Label: "Home", Href: "/"}, {Label: title}},
		Nav:    nav,
	}
}

func (p *Pages) session(r *http.Request) *api.Session {
	return p.API.As(auth.FromContext(r.Context()))
}

func (p *Pages) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	var buf bytes.Buffer
	if err := p.Views.Render(&buf, name, data); err != nil {
		p.Logger.ErrorContext(r.Context(), "failed to render page", "page", name, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// fail re-renders a page with a blocking alert, or sends the browser to sign
// in again when the backend rejected the token.
func (p *Pages) fail(w http.ResponseWriter, r *http.Request, err error, name string, page Page) {
	if errors.Is(err, api.ErrUnauthorized) {
		p.toSignIn(w, r)
		return
	}
	p.Logger.WarnContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
	page.Alert = api.Message(err)
	p.render(w, r, statusFor(err), name, page)
}

// toSignIn clears the token and redirects to /signin, unless the request is
// already for the sign-in page.
func (p *Pages) toSignIn(w http.ResponseWriter, r *http.Request) {
	clearToken(p, r)
	if r.URL.Path == signInPath {
		p.render(w, r, http.StatusUnauthorized, "signin", Page{Title: "Sign in", Content: signInForm{}})
		return
	}
	http.Redirect(w, r, signInPath, http.StatusSeeOther)
}

func clearToken(p *Pages, r *http.Request) {
	ac := auth.FromContext(r.Context())
	if ac == nil {
		return
	}
	if err := ac.Clear(r.Context()); err != nil {
		p.Logger.ErrorContext(r.Context(), "failed to clear token", "error", err)
	}
}

func (p *Pages) message(w http.ResponseWriter, r *http.Request, status int, title, text string) {
	page := p.page(r, title, "")
	page.Content = text
	p.render(w, r, status, "message", page)
}

func statusFor(err error) int {
	var (
		validation *form.ValidationError
		statusErr  *api.StatusError
	)
	switch {
	case errors.As(err, &validation), errors.Is(err, form.ErrImageTooLarge), errors.Is(err, form.ErrImageType):
		return http.StatusUnprocessableEntity
	case errors.As(err, &statusErr) && statusErr.Status < 500:
		return http.StatusBadRequest
	default:
		return http.StatusBadGateway
	}
}

// collection builds the fetch lifecycle of one list page.
func collection[T any](p *Pages, r *http.Request, fetch resource.Fetcher[T]) *resource.Collection[T] {
	ctx := r.Context()
	return resource.NewCollection(fetch,
		resource.WithMessage[T](api.Message),
		resource.WithObserver(func(s resource.State[T]) {
			p.Logger.DebugContext(ctx, "collection state", "path", r.URL.Path, "status", s.Status().String())
		}),
	)
}

// unauthorized reports whether a settled list failed on a rejected token, in
// which case the response has already been written.
func unauthorized[T any](p *Pages, w http.ResponseWriter, r *http.Request, st resource.State[T]) bool {
	if st.Failed() && errors.Is(st.Err(), api.ErrUnauthorized) {
		p.toSignIn(w, r)
		return true
	}
	return false
}

// ListContent feeds the shared list template.
type ListContent struct {
	Tabs         []Tab
	Filters      []Select
	FilterAction string
	Error        string
	Table        table.Table
}

type Tab struct {
	Label  string
	Href   string
	Active bool
}

type Select struct {
	Name    string
	Label   string
	Options []Option
}

type Option struct {
	Value    string
	Label    string
	Selected bool
}

func newSelect(name, label, current string, options ...Option) Select {
	s := Select{Name: name, Label: label, Options: options}
	for i := range s.Options {
		s.Options[i].Selected = s.Options[i].Value == current
	}
	return s
}
