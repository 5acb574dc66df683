package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/MrSnakeDoc/navsite/internal/domain"
	"github.com/MrSnakeDoc/navsite/internal/httpserver/deps"
	"github.com/MrSnakeDoc/navsite/internal/logger"
)

// Search handles the search box: ?q=<text>&engine=<id>.
//
// External engines redirect to their URL template. The internal engine
// jumps to the site whose name equals the query, else to the best fuzzy
// match, else back to the page with the query as filter.
func Search(d deps.Deps) http.HandlerFunc {
	engines := d.Engines
	if len(engines) == 0 {
		engines = domain.DefaultEngines()
	}

	return func(w http.ResponseWriter, r *http.Request) {
		query := strings.TrimSpace(r.URL.Query().Get("q"))

		// Empty query -> navigation page
		if query == "" {
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}

		engineID := r.URL.Query().Get("engine")
		if engineID == "" {
			engineID = domain.InternalEngineID
		}

		engine, ok := domain.FindEngine(engines, engineID)
		if !ok {
			writeError(w, d, http.StatusBadRequest, fmt.Sprintf("unknown engine %q", engineID))
			return
		}

		if !engine.IsInternal() {
			d.Logger.Info("external search",
				logger.String("engine", engine.ID),
				logger.String("query", query))
			http.Redirect(w, r, engine.SearchURL(query), http.StatusFound)
			return
		}

		// Internal endpoints (queries starting with /)
		if strings.HasPrefix(query, "/") {
			handleInternalEndpoint(w, r, query, d)
			return
		}

		if handleCachedSite(w, r, query, d) {
			return
		}

		handleSiteSearch(w, r, query, d)
	}
}

// handleCachedSite redirects to a cached resolution, returns true if handled
func handleCachedSite(w http.ResponseWriter, r *http.Request, query string, d deps.Deps) bool {
	if d.Store == nil {
		return false
	}

	siteID, err := d.Store.GetCachedResolution(r.Context(), query)
	if err != nil || siteID == "" {
		return false
	}

	site, ok := d.MemoryIndex.GetSite(siteID)
	if ok && redirectToSite(w, r, d, site) {
		d.Logger.Info("cache hit, redirecting",
			logger.String("query", query),
			logger.String("site_id", siteID))
		return true
	}

	// Site was removed or changed since, invalidate
	d.Logger.Debug("cached site no longer valid, invalidating cache",
		logger.String("site_id", siteID))
	if err := d.Store.InvalidateCache(r.Context(), query); err != nil {
		d.Logger.Debug("failed to invalidate cached resolution",
			logger.String("query", query),
			logger.Error(err))
	}
	return false
}

// handleSiteSearch resolves the query against the served document
func handleSiteSearch(w http.ResponseWriter, r *http.Request, query string, d deps.Deps) {
	doc := d.MemoryIndex.Document()

	if site, ok := domain.FindExactSite(doc, query); ok {
		if redirectToSite(w, r, d, *site) {
			d.Logger.Info("exact match, redirecting",
				logger.String("query", query),
				logger.String("site_id", site.ID))
			cacheResolution(r.Context(), d, query, site.ID)
			return
		}
	}

	candidates := domain.RankSites(query, doc.AllSites(), d.MemoryIndex.Counters())
	for _, candidate := range candidates {
		if !redirectToSite(w, r, d, *candidate.Site) {
			continue
		}
		d.Logger.Info("resolved site",
			logger.String("query", query),
			logger.String("site_id", candidate.Site.ID),
			logger.String("score", fmt.Sprintf("%.2f", candidate.TotalScore)))
		cacheResolution(r.Context(), d, query, candidate.Site.ID)
		return
	}

	d.Logger.Info("no matching site, showing filtered page",
		logger.String("query", query))
	http.Redirect(w, r, "/?q="+url.QueryEscape(query), http.StatusFound)
}

func cacheResolution(ctx context.Context, d deps.Deps, query, siteID string) {
	if d.Store == nil {
		return
	}
	if err := d.Store.CacheResolution(ctx, query, siteID, d.CacheTTL); err != nil {
		d.Logger.Debug("failed to cache resolution", logger.Error(err))
	}
}

// handleInternalEndpoint handles internal endpoint routing
func handleInternalEndpoint(w http.ResponseWriter, r *http.Request, query string, d deps.Deps) {
	if endpoint := matchInternalEndpoint(query); endpoint != "" {
		d.Logger.Info("internal endpoint redirect",
			logger.String("query", query),
			logger.String("endpoint", endpoint))
		http.Redirect(w, r, endpoint, http.StatusFound)
		return
	}
	// No match found, back to the page
	d.Logger.Debug("no internal endpoint matched",
		logger.String("query", query))
	http.Redirect(w, r, "/", http.StatusFound)
}

// matchInternalEndpoint performs prefix matching on internal endpoints
// Returns the full endpoint path if a unique match is found, empty string otherwise
func matchInternalEndpoint(query string) string {
	endpoints := []string{
		"/infra",
		"/healthz",
		"/readyz",
		"/api/engines",
	}

	query = strings.ToLower(query)
	var matches []string

	for _, endpoint := range endpoints {
		if strings.HasPrefix(endpoint, query) {
			matches = append(matches, endpoint)
		}
	}

	// Return the match only if exactly one endpoint matches
	if len(matches) == 1 {
		return matches[0]
	}

	return ""
}
