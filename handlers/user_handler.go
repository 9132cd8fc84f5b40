package handlers

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"transferadmin/models"
	"transferadmin/resource"
	"transferadmin/table"
)

type UserHandler struct {
	*Pages
}

var userHeaders = []string{"Name", "Email", "Phone", "Type", "Status", "Joined", ""}

// List shows users, optionally narrowed by the type and active selects.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.UserFilter{}
	switch t := models.UserType(q.Get("type")); t {
	case models.UserTypeProvider, models.UserTypeReceiver:
		filter.UserType = t
	}
	if active, err := strconv.ParseBool(q.Get("active")); err == nil {
		filter.IsActive = &active
	}

	sess := h.session(r)
	coll := collection(h.Pages, r, func(ctx context.Context) ([]models.User, error) {
		return sess.ListUsers(ctx, filter)
	})
	h.renderList(w, r, coll.Load(r.Context()), q, "")
}

func (h *UserHandler) renderList(w http.ResponseWriter, r *http.Request, st resource.State[models.User], q url.Values, notice string) {
	if unauthorized(h.Pages, w, r, st) {
		return
	}

	page := h.page(r, "Users", "/users")
	page.Notice = notice
	page.Content = ListContent{
		FilterAction: "/users",
		Filters: []Select{
			newSelect("type", "Type", q.Get("type"),
				Option{Value: "", Label: "All"},
				Option{Value: string(models.UserTypeProvider), Label: "Providers"},
				Option{Value: string(models.UserTypeReceiver), Label: "Receivers"},
			),
			newSelect("active", "Status", q.Get("active"),
				Option{Value: "", Label: "All"},
				Option{Value: "true", Label: "Active"},
				Option{Value: "false", Label: "Inactive"},
			),
		},
		Error: st.Message(),
		Table: table.New(st.Data(), userHeaders, userRow, "No users found"),
	}
	h.render(w, r, http.StatusOK, "list", page)
}

func userRow(u models.User) table.Row {
	status, toggleLabel := "Inactive", "Activate"
	if u.IsActive {
		status, toggleLabel = "Active", "Deactivate"
	}
	base := "/users/" + url.PathEscape(u.ID)
	return table.Row{
		userCell(u),
		table.Text(u.Email),
		table.Text(u.PhoneNumber),
		table.Text(string(u.UserType)),
		{Badge: status},
		table.Text(formatDate(u.CreatedAt)),
		{Actions: []table.Action{
			{Label: toggleLabel, Href: base + "/toggle?active=" + strconv.FormatBool(!u.IsActive), Method: "post"},
			{Label: "Delete", Href: base + "/delete", Danger: true},
		}},
	}
}

func userCell(u models.User) table.Cell {
	c := table.Text(u.Name)
	if u.ProfileImage != nil {
		c.Image = *u.ProfileImage
	}
	return c
}

func formatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "-"
	}
	return t.Format("02 Jan 2006")
}

// Toggle sets a user's active flag to the value in the "active" parameter.
func (h *UserHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	active, err := strconv.ParseBool(r.FormValue("active"))
	if err != nil {
		http.Error(w, "active must be true or false", http.StatusBadRequest)
		return
	}

	if err := h.session(r).SetUserActive(r.Context(), id, active); err != nil {
		page := h.page(r, "Users", "/users")
		page.Content = "The user could not be updated."
		h.fail(w, r, err, "message", page)
		return
	}
	h.Logger.InfoContext(r.Context(), "user status changed", "user_id", id, "active", active)
	http.Redirect(w, r, "/users", http.StatusSeeOther)
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	sess := h.session(r)
	deleteWithConfirm(h.Pages, w, r, deleteFlow[models.User]{
		Noun:   "user",
		Back:   "/users",
		Active: "/users",
		Collection: collection(h.Pages, r, func(ctx context.Context) ([]models.User, error) {
			return sess.ListUsers(ctx, models.UserFilter{})
		}),
		Remove: func(ctx context.Context) error {
			return sess.DeleteUser(ctx, id)
		},
		Render: func(w http.ResponseWriter, r *http.Request, st resource.State[models.User], notice string) {
			h.renderList(w, r, st, url.Values{}, notice)
		},
	})
}

type AdminHandler struct {
	*Pages
}

func (h *AdminHandler) List(w http.ResponseWriter, r *http.Request) {
	sess := h.session(r)
	coll := collection(h.Pages, r, sess.ListAdmins)
	st := coll.Load(r.Context())
	if unauthorized(h.Pages, w, r, st) {
		return
	}

	page := h.page(r, "Admins", "/admins")
	page.Content = ListContent{
		Error: st.Message(),
		Table: table.New(st.Data(), []string{"Name", "Email", "Phone", "Role", "Joined"},
			func(u models.User) table.Row {
				role := u.Role
				if role == "" {
					role = models.RoleAdmin
				}
				return table.Row{userCell(u), table.Text(u.Email), table.Text(u.PhoneNumber), {Badge: string(role)}, table.Text(formatDate(u.CreatedAt))}
			},
			"No admins found",
		),
	}
	h.render(w, r, http.StatusOK, "list", page)
}
