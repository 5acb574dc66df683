package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/navsite/internal/domain"
	"github.com/MrSnakeDoc/navsite/internal/httpserver/deps"
	"github.com/MrSnakeDoc/navsite/internal/logger"
)

type siteResponse struct {
	domain.Site
	Clicks int64 `json:"clicks"`
}

// Site serves one site by ID with its click counter. The persisted Redis
// count wins when it is higher than the in-memory one.
func Site(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		site, ok := d.MemoryIndex.GetSite(id)
		if !ok {
			writeError(w, d, http.StatusNotFound, "site not found")
			return
		}

		clicks := d.MemoryIndex.Counter(id)
		if d.Store != nil {
			if stored, err := d.Store.GetUsage(r.Context(), id); err != nil {
				d.Logger.Debug("failed to read persisted clicks",
					logger.String("site_id", id), logger.Error(err))
			} else if stored > clicks {
				clicks = stored
			}
		}

		writeJSON(w, d, http.StatusOK, siteResponse{Site: site, Clicks: clicks})
	}
}

// Engines serves the search engines offered by the search box.
func Engines(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		engines := d.Engines
		if len(engines) == 0 {
			engines = domain.DefaultEngines()
		}
		w.Header().Set("Cache-Control", "public, max-age=300")
		writeJSON(w, d, http.StatusOK, engines)
	}
}
