package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/navsite/internal/httpserver/deps"
	"github.com/MrSnakeDoc/navsite/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/navsite/internal/httpserver/mw"
)

func init() { Register("reload", registerReload) }

// registerReload mounts the manual sites.json reload. Both the client IP and
// the Host header are checked, the trigger itself never blocks.
func registerReload(r chi.Router, d deps.Deps) {
	admin := r.With(
		mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger),
		mw.EnforceHost(d.AllowedHosts, d.Logger),
	)
	admin.Post("/reload", handlers.Reload(d))
}
