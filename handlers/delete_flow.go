package handlers

import (
	"context"
	"net/http"

	"transferadmin/resource"
)

type confirmContent struct {
	Question string
	Action   string
}

// deleteFlow describes a destructive route: GET asks, POST with confirm=yes
// deletes and shows the refetched list, any other POST goes back unchanged.
type deleteFlow[T any] struct {
	Noun       string
	Back       string
	Active     string
	Collection *resource.Collection[T]
	Remove     func(ctx context.Context) error
	Render     func(w http.ResponseWriter, r *http.Request, st resource.State[T], notice string)
}

func deleteWithConfirm[T any](p *Pages, w http.ResponseWriter, r *http.Request, f deleteFlow[T]) {
	page := p.page(r, "Delete "+f.Noun, f.Active)
	page.Content = confirmContent{
		Question: "Are you sure you want to delete this " + f.Noun + "?",
		Action:   r.URL.RequestURI(),
	}

	if r.Method == http.MethodGet {
		p.render(w, r, http.StatusOK, "confirm", page)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	confirmed := func() bool { return r.PostFormValue("confirm") == "yes" }
	deleted, err := f.Collection.Delete(r.Context(), confirmed, f.Remove)
	if err != nil {
		p.fail(w, r, err, "confirm", page)
		return
	}
	if !deleted {
		http.Redirect(w, r, f.Back, http.StatusSeeOther)
		return
	}

	p.Logger.InfoContext(r.Context(), "record deleted", "kind", f.Noun, "path", r.URL.Path)
	f.Render(w, r, f.Collection.State(), "The "+f.Noun+" was deleted.")
}
