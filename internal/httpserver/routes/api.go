package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/navsite/internal/httpserver/deps"
	"github.com/MrSnakeDoc/navsite/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/navsite/internal/httpserver/mw"
)

func init() { Register("api", registerAPI) }

func registerAPI(r chi.Router, d deps.Deps) {
	r.Route("/api", func(api chi.Router) {
		api.Use(mw.CORS(d.CORSOrigins...))
		api.Get("/categories", handlers.Categories(d))
		api.Get("/sites/{id}", handlers.Site(d))
		api.Get("/engines", handlers.Engines(d))
	})
}
