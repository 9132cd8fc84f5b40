package handlers

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/mux"

	"transferadmin/models"
	"transferadmin/resource"
	"transferadmin/table"
)

type TemplateHandler struct {
	*Pages
}

var kindLabels = map[models.TemplateKind]string{
	models.TemplateSMS:      "SMS",
	models.TemplateWhatsApp: "WhatsApp",
	models.TemplateMail:     "Mail",
}

func selectedKind(r *http.Request) models.TemplateKind {
	k := models.TemplateKind(strings.ToUpper(r.URL.Query().Get("kind")))
	if _, ok := kindLabels[k]; ok {
		return k
	}
	return models.TemplateSMS
}

// List shows the templates of one kind, picked with the tab selector.
func (h *TemplateHandler) List(w http.ResponseWriter, r *http.Request) {
	kind := selectedKind(r)
	sess := h.session(r)
	coll := collection(h.Pages, r, func(ctx context.Context) ([]models.MessageTemplate, error) {
		return sess.ListTemplates(ctx, kind)
	})
	h.renderList(w, r, kind, coll.Load(r.Context()), "")
}

func (h *TemplateHandler) renderList(w http.ResponseWriter, r *http.Request, kind models.TemplateKind, st resource.State[models.MessageTemplate], notice string) {
	if unauthorized(h.Pages, w, r, st) {
		return
	}

	tabs := make([]Tab, 0, len(models.TemplateKinds))
	for _, k := range models.TemplateKinds {
		tabs = append(tabs, Tab{Label: kindLabels[k], Href: "/templates?kind=" + string(k), Active: k == kind})
	}

	headers := []string{"Name", "Body", "Created", ""}
	if kind == models.TemplateMail {
		headers = []string{"Name", "Subject", "Body", "Created", ""}
	}

	page := h.page(r, "Templates", "/templates")
	page.Notice = notice
	page.Content = ListContent{
		Tabs:  tabs,
		Error: st.Message(),
		Table: table.New(st.Data(), headers, func(t models.MessageTemplate) table.Row {
			row := table.Row{table.Text(t.Name)}
			if kind == models.TemplateMail {
				row = append(row, table.Text(t.Subject))
			}
			return append(row,
				table.Text(t.Body),
				table.Text(formatDate(t.CreatedAt)),
				table.Cell{Actions: []table.Action{{
					Label:  "Delete",
					Href:   "/templates/" + url.PathEscape(t.ID) + "/delete?kind=" + string(kind),
					Danger: true,
				}}},
			)
		}, "No "+kindLabels[kind]+" templates"),
	}
	h.render(w, r, http.StatusOK, "list", page)
}

func (h *TemplateHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	kind := selectedKind(r)
	sess := h.session(r)
	deleteWithConfirm(h.Pages, w, r, deleteFlow[models.MessageTemplate]{
		Noun:   "template",
		Back:   "/templates?kind=" + string(kind),
		Active: "/templates",
		Collection: collection(h.Pages, r, func(ctx context.Context) ([]models.MessageTemplate, error) {
			return sess.ListTemplates(ctx, kind)
		}),
		Remove: func(ctx context.Context) error {
			return sess.DeleteTemplate(ctx, id)
		},
		Render: func(w http.ResponseWriter, r *http.Request, st resource.State[models.MessageTemplate], notice string) {
			h.renderList(w, r, kind, st, notice)
		},
	})
}
