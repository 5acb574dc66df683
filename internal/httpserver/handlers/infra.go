package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/navsite/internal/httpserver/deps"
)

type componentStatus struct {
	OK           bool   `json:"ok"`
	SitesLoaded  *int   `json:"sites_loaded,omitempty"`
	Categories   *int   `json:"categories,omitempty"`
	CountedSites *int   `json:"counted_sites,omitempty"`
	LastReload   string `json:"last_reload,omitempty"`
	Source       string `json:"source,omitempty"`
	Mode         string `json:"mode,omitempty"`
	Impact       string `json:"impact,omitempty"`
	Error        string `json:"error,omitempty"`
}

type infraResponse struct {
	ServingMode string                     `json:"serving_mode"`
	Components  map[string]componentStatus `json:"components"`
}

func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sites := d.MemoryIndex.Count()
		categories := d.MemoryIndex.CategoryCount()
		counted := len(d.MemoryIndex.Counters())

		lastReload := d.MemoryIndex.GetLastReload()
		lastReloadStr := "never"
		if !lastReload.IsZero() {
			lastReloadStr = lastReload.Format("2006-01-02 15:04:05")
		}

		components := map[string]componentStatus{
			"document": {
				OK:          !lastReload.IsZero(),
				SitesLoaded: &sites,
				Categories:  &categories,
				LastReload:  lastReloadStr,
				Source:      d.SitesFile,
			},
			"redis": checkRedis(r.Context(), d),
			"usage": {
				OK:           true,
				CountedSites: &counted,
				Mode:         "memory",
			},
		}

		writeJSON(w, d, http.StatusOK, infraResponse{
			ServingMode: determineServingMode(components),
			Components:  components,
		})
	}
}

func determineServingMode(components map[string]componentStatus) string {
	if doc, exists := components["document"]; exists {
		if !doc.OK || (doc.SitesLoaded != nil && *doc.SitesLoaded == 0) {
			return "empty" // nothing to navigate to
		}
	}

	// Redis down = counters not persisted across restarts
	if redis, exists := components["redis"]; exists && !redis.OK {
		return "degraded"
	}

	return "full"
}

func checkRedis(parent context.Context, d deps.Deps) componentStatus {
	if d.Store == nil {
		return componentStatus{
			OK:     false,
			Mode:   "disabled",
			Impact: "click-counters-not-persisted",
			Error:  "client not initialized",
		}
	}

	ctx, cancel := context.WithTimeout(parent, 2*time.Second)
	defer cancel()

	if err := d.Store.Ping(ctx); err != nil {
		return componentStatus{
			OK:     false,
			Mode:   "degraded",
			Impact: "click-counters-not-persisted",
			Error:  err.Error(),
		}
	}

	return componentStatus{
		OK:     true,
		Mode:   "persistent",
		Impact: "click-counters-persisted",
	}
}
