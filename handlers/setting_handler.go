package handlers

import (
	"context"
	"net/http"
	"net/url"

	"github.com/gorilla/mux"

	"transferadmin/models"
	"transferadmin/table"
)

type SettingHandler struct {
	*Pages
}

func (h *SettingHandler) List(w http.ResponseWriter, r *http.Request) {
	sess := h.session(r)
	coll := collection(h.Pages, r, sess.ListSettings)
	st := coll.Load(r.Context())
	if unauthorized(h.Pages, w, r, st) {
		return
	}

	page := h.page(r, "Settings", "/settings")
	page.Content = ListContent{
		Error: st.Message(),
		Table: table.New(st.Data(), []string{"Key", "Value", "Description", ""},
			func(s models.Setting) table.Row {
				return table.Row{
					table.Text(s.Key),
					table.Text(s.Value),
					table.Text(s.Description),
					{Actions: []table.Action{{Label: "Edit", Href: "/settings/" + url.PathEscape(s.Key)}}},
				}
			},
			"No settings defined",
		),
	}
	h.render(w, r, http.StatusOK, "list", page)
}

func (h *SettingHandler) formPage(r *http.Request, s models.Setting) Page {
	page := h.page(r, "Edit setting", "/settings")
	page.Crumbs = []Crumb{{Label: "Home", Href: "/"}, {Label: "Settings", Href: "/settings"}, {Label: s.Key}}
	page.Actions = []HeaderAction{{Label: "Save", Form: "setting-form", Primary: true}}
	page.Content = s
	return page
}

// Edit shows one setting. The backend has no single-setting endpoint, so the
// list is fetched and searched.
func (h *SettingHandler) Edit(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	sess := h.session(r)
	coll := collection(h.Pages, r, func(ctx context.Context) ([]models.Setting, error) {
		return sess.ListSettings(ctx)
	})
	st := coll.Load(r.Context())
	if unauthorized(h.Pages, w, r, st) {
		return
	}
	if st.Failed() {
		h.fail(w, r, st.Err(), "setting_form", h.formPage(r, models.Setting{Key: key}))
		return
	}

	for _, s := range st.Data() {
		if s.Key == key {
			h.render(w, r, http.StatusOK, "setting_form", h.formPage(r, s))
			return
		}
	}
	h.message(w, r, http.StatusNotFound, "Not found", "There is no setting named "+key+".")
}

func (h *SettingHandler) Update(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	value := r.PostFormValue("value")

	if err := h.session(r).UpdateSetting(r.Context(), key, value); err != nil {
		h.fail(w, r, err, "setting_form", h.formPage(r, models.Setting{Key: key, Value: value}))
		return
	}
	h.Logger.InfoContext(r.Context(), "setting updated", "key", key)
	http.Redirect(w, r, "/settings", http.StatusSeeOther)
}
