package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/mux"

	"transferadmin/form"
	"transferadmin/models"
	"transferadmin/resource"
	"transferadmin/table"
)

type BlogHandler struct {
	*Pages
	Images form.ImageRules
}

type blogForm struct {
	Title   string
	Slug    string
	Content string
	Tags    []string
}

func (h *BlogHandler) List(w http.ResponseWriter, r *http.Request) {
	sess := h.session(r)
	coll := collection(h.Pages, r, sess.ListBlogs)
	h.renderList(w, r, coll.Load(r.Context()), "")
}

func (h *BlogHandler) renderList(w http.ResponseWriter, r *http.Request, st resource.State[models.Blog], notice string) {
	if unauthorized(h.Pages, w, r, st) {
		return
	}

	page := h.page(r, "Blogs", "/blogs")
	page.Notice = notice
	page.Actions = []HeaderAction{{Label: "New blog", Href: "/blogs/new", Primary: true}}
	page.Content = ListContent{
		Error: st.Message(),
		Table: table.New(st.Data(), []string{"Title", "Slug", "Tags", "Created", ""}, blogRow, "No blogs yet"),
	}
	h.render(w, r, http.StatusOK, "list", page)
}

func blogRow(b models.Blog) table.Row {
	title := table.Text(b.Title)
	if b.Image != nil {
		title.Image = *b.Image
	}
	return table.Row{
		title,
		table.Text(b.Slug),
		table.Text(strings.Join(b.Tags, ", ")),
		table.Text(formatDate(b.CreatedAt)),
		{Actions: []table.Action{{Label: "Delete", Href: "/blogs/" + url.PathEscape(b.ID) + "/delete", Danger: true}}},
	}
}

func (h *BlogHandler) formPage(r *http.Request, values blogForm) Page {
	page := h.page(r, "New blog", "/blogs")
	page.Crumbs = []Crumb{{Label: "Home", Href: "/"}, {Label: "Blogs", Href: "/blogs"}, {Label: "New"}}
	page.Actions = []HeaderAction{{Label: "Save", Form: "blog-form", Primary: true}}
	page.Content = values
	return page
}

func (h *BlogHandler) New(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "blog_form", h.formPage(r, blogForm{}))
}

// Create posts the blog as multipart when a cover image was uploaded.
func (h *BlogHandler) Create(w http.ResponseWriter, r *http.Request) {
	limit := h.Images.MaxBytes + 1<<20
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := r.ParseMultipartForm(limit); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			err = fmt.Errorf("%w: upload exceeds %d bytes", form.ErrImageTooLarge, tooLarge.Limit)
			h.fail(w, r, err, "blog_form", h.formPage(r, blogForm{}))
			return
		}
		http.Error(w, "invalid form: "+err.Error(), http.StatusBadRequest)
		return
	}

	values := blogForm{
		Title:   strings.TrimSpace(r.FormValue("title")),
		Slug:    strings.TrimSpace(r.FormValue("slug")),
		Content: r.FormValue("content"),
		Tags:    form.SplitTags(r.FormValue("tags")),
	}
	page := h.formPage(r, values)

	sub := form.New("title", "slug", "content").
		Set("title", values.Title).
		Set("slug", values.Slug).
		Set("content", values.Content).
		SetList("tags", values.Tags)

	if r.MultipartForm != nil {
		img, err := form.ReadImage(r, "image", h.Images)
		if err != nil {
			h.fail(w, r, err, "blog_form", page)
			return
		}
		if img != nil {
			sub.Attach(*img)
		}
	}

	if err := h.session(r).CreateBlog(r.Context(), sub); err != nil {
		h.fail(w, r, err, "blog_form", page)
		return
	}
	h.Logger.InfoContext(r.Context(), "blog created", "slug", values.Slug)
	http.Redirect(w, r, "/blogs", http.StatusSeeOther)
}

func (h *BlogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	sess := h.session(r)
	deleteWithConfirm(h.Pages, w, r, deleteFlow[models.Blog]{
		Noun:       "blog",
		Back:       "/blogs",
		Active:     "/blogs",
		Collection: collection(h.Pages, r, sess.ListBlogs),
		Remove: func(ctx context.Context) error {
			return sess.DeleteBlog(ctx, id)
		},
		Render: h.renderList,
	})
}
