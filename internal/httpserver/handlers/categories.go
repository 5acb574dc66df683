package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/navsite/internal/domain"
	"github.com/MrSnakeDoc/navsite/internal/httpserver/deps"
	"github.com/MrSnakeDoc/navsite/internal/icons"
)

type siteView struct {
	domain.Site
	Display icons.Display `json:"display"`
}

type categoryView struct {
	ID      string        `json:"id"`
	Name    string        `json:"name"`
	Icon    string        `json:"icon"`
	Display icons.Display `json:"display"`
	Sites   []siteView    `json:"sites"`
}

type categoriesResponse struct {
	Categories []categoryView `json:"categories"`
	Total      int            `json:"total"`
}

// Categories serves the filtered document: ?q= matches site name and
// description, ?category= keeps a single category.
func Categories(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := domain.FilterQuery{
			Query:      r.URL.Query().Get("q"),
			CategoryID: r.URL.Query().Get("category"),
		}

		filtered := domain.Filter(d.MemoryIndex.Document(), q)

		resp := categoriesResponse{Categories: make([]categoryView, 0, len(filtered))}
		for _, c := range filtered {
			view := categoryView{
				ID:      c.ID,
				Name:    c.Name,
				Icon:    c.Icon,
				Display: d.Icons.Classify(c.Icon),
				Sites:   make([]siteView, 0, len(c.Sites)),
			}
			for _, s := range c.Sites {
				view.Sites = append(view.Sites, siteView{Site: s, Display: d.Icons.Classify(s.Icon)})
			}
			resp.Total += len(view.Sites)
			resp.Categories = append(resp.Categories, view)
		}

		w.Header().Set("Cache-Control", "no-cache")
		writeJSON(w, d, http.StatusOK, resp)
	}
}
