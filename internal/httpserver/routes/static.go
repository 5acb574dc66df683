package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/navsite/internal/httpserver/deps"
	"github.com/MrSnakeDoc/navsite/internal/httpserver/handlers"
)

func init() { RegisterOrdered("static", OrderLast, registerStatic) }

// registerStatic mounts /asset and the navigation page. Either is skipped
// when its directory is not configured.
func registerStatic(r chi.Router, d deps.Deps) {
	if d.AssetDir != "" {
		r.Handle("/asset/*", handlers.Assets(d.AssetDir, "/asset"))
	}
	if d.StaticDir != "" {
		r.Get("/*", handlers.SPA(d.StaticDir))
	}
}
