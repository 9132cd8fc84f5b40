package handlers

import (
	"context"
	"net/http"
	"net/url"
	"slices"
	"strings"

	"github.com/gorilla/mux"

	"transferadmin/models"
	"transferadmin/resource"
	"transferadmin/table"
)

// TranslationHandler edits the app strings, one locale tab at a time.
type TranslationHandler struct {
	*Pages
	Locales []string
}

func (h *TranslationHandler) locale(r *http.Request) string {
	l := strings.ToLower(r.URL.Query().Get("locale"))
	if slices.Contains(h.Locales, l) {
		return l
	}
	if len(h.Locales) > 0 {
		return h.Locales[0]
	}
	return ""
}

func (h *TranslationHandler) fetch(r *http.Request, locale string) *resource.Collection[models.Translation] {
	sess := h.session(r)
	return collection(h.Pages, r, func(ctx context.Context) ([]models.Translation, error) {
		return sess.ListTranslations(ctx, locale)
	})
}

func (h *TranslationHandler) List(w http.ResponseWriter, r *http.Request) {
	locale := h.locale(r)
	h.renderList(w, r, locale, h.fetch(r, locale).Load(r.Context()), "")
}

func (h *TranslationHandler) renderList(w http.ResponseWriter, r *http.Request, locale string, st resource.State[models.Translation], notice string) {
	if unauthorized(h.Pages, w, r, st) {
		return
	}

	tabs := make([]Tab, 0, len(h.Locales))
	for _, l := range h.Locales {
		tabs = append(tabs, Tab{Label: strings.ToUpper(l), Href: "/translations?locale=" + l, Active: l == locale})
	}

	page := h.page(r, "Translations", "/translations")
	page.Notice = notice
	page.Content = ListContent{
		Tabs:  tabs,
		Error: st.Message(),
		Table: table.New(st.Data(), []string{"Key", "Value", ""}, func(t models.Translation) table.Row {
			id := url.PathEscape(t.ID)
			return table.Row{
				table.Text(t.Key),
				table.Text(t.Value),
				{Actions: []table.Action{
					{Label: "Edit", Href: "/translations/" + id + "?locale=" + locale},
					{Label: "Delete", Href: "/translations/" + id + "/delete?locale=" + locale, Danger: true},
				}},
			}
		}, "No "+strings.ToUpper(locale)+" translations"),
	}
	h.render(w, r, http.StatusOK, "list", page)
}

type translationForm struct {
	models.Translation
	Action string
}

func (h *TranslationHandler) formPage(r *http.Request, t models.Translation) Page {
	page := h.page(r, "Edit translation", "/translations")
	page.Crumbs = []Crumb{
		{Label: "Home", Href: "/"},
		{Label: "Translations", Href: "/translations?locale=" + t.Locale},
		{Label: t.Key},
	}
	page.Actions = []HeaderAction{{Label: "Save", Form: "translation-form", Primary: true}}
	page.Content = translationForm{
		Translation: t,
		Action:      "/translations/" + url.PathEscape(t.ID) + "?locale=" + t.Locale,
	}
	return page
}

// Edit looks the translation up in its locale's list; the backend has no
// single-translation endpoint.
func (h *TranslationHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	locale := h.locale(r)
	st := h.fetch(r, locale).Load(r.Context())
	if unauthorized(h.Pages, w, r, st) {
		return
	}
	if st.Failed() {
		h.fail(w, r, st.Err(), "translation_form", h.formPage(r, models.Translation{ID: id, Locale: locale}))
		return
	}

	for _, t := range st.Data() {
		if t.ID == id {
			h.render(w, r, http.StatusOK, "translation_form", h.formPage(r, t))
			return
		}
	}
	h.message(w, r, http.StatusNotFound, "Not found", "There is no such "+strings.ToUpper(locale)+" translation.")
}

func (h *TranslationHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	locale := h.locale(r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	t := models.Translation{
		ID:     id,
		Key:    r.PostFormValue("key"),
		Locale: locale,
		Value:  r.PostFormValue("value"),
	}

	if err := h.session(r).UpdateTranslation(r.Context(), id, t.Value); err != nil {
		h.fail(w, r, err, "translation_form", h.formPage(r, t))
		return
	}
	h.Logger.InfoContext(r.Context(), "translation updated", "id", id, "locale", locale)
	http.Redirect(w, r, "/translations?locale="+locale, http.StatusSeeOther)
}

func (h *TranslationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	locale := h.locale(r)
	sess := h.session(r)
	deleteWithConfirm(h.Pages, w, r, deleteFlow[models.Translation]{
		Noun:       "translation",
		Back:       "/translations?locale=" + locale,
		Active:     "/translations",
		Collection: h.fetch(r, locale),
		Remove: func(ctx context.Context) error {
			return sess.DeleteTranslation(ctx, id)
		},
		Render: func(w http.ResponseWriter, r *http.Request, st resource.State[models.Translation], notice string) {
			h.renderList(w, r, locale, st, notice)
		},
	})
}
