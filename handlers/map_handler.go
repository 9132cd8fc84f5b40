package handlers

import (
	"net/http"
	"net/url"
)

const (
	mapEmbedURL  = "https://www.google.com/maps/embed/v1/place"
	defaultPlace = "India"
)

type MapHandler struct {
	*Pages
	APIKey string
}

type mapContent struct {
	Query    string
	EmbedURL string
}

func (h *MapHandler) Show(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	place := q
	if place == "" {
		place = defaultPlace
	}

	page := h.page(r, "Map", "/map")
	page.Content = mapContent{
		Query:    q,
		EmbedURL: mapEmbedURL + "?" + url.Values{"key": {h.APIKey}, "q": {place}}.Encode(),
	}
	h.render(w, r, http.StatusOK, "map", page)
}
