package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/navsite/internal/domain"
	"github.com/MrSnakeDoc/navsite/internal/httpserver/deps"
	"github.com/MrSnakeDoc/navsite/internal/logger"
)

// Go redirects to a site by ID and counts the click.
func Go(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "siteID")

		site, ok := d.MemoryIndex.GetSite(id)
		if !ok {
			d.Logger.Debug("jump to unknown site", logger.String("site_id", id))
			http.NotFound(w, r)
			return
		}

		if !redirectToSite(w, r, d, site) {
			writeError(w, d, http.StatusUnprocessableEntity, "site has no usable url")
		}
	}
}

// redirectToSite counts the click and redirects. It returns false without
// writing anything when the site URL cannot be redirected to.
func redirectToSite(w http.ResponseWriter, r *http.Request, d deps.Deps, site domain.Site) bool {
	if !isRedirectable(site.URL) {
		d.Logger.Warn("refusing redirect to non http(s) url",
			logger.String("site_id", site.ID),
			logger.String("url", site.URL))
		return false
	}

	recordClick(r.Context(), d, site.ID)
	http.Redirect(w, r, site.URL, http.StatusFound)
	return true
}

// recordClick increments the counter in memory and in Redis (best effort).
func recordClick(ctx context.Context, d deps.Deps, siteID string) {
	d.MemoryIndex.IncrementCounter(siteID)

	if d.Store == nil {
		return
	}
	if _, err := d.Store.IncrementUsage(ctx, siteID); err != nil {
		d.Logger.Debug("failed to persist click",
			logger.String("site_id", siteID),
			logger.Error(err))
	}
}
