package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/navsite/internal/httpserver/deps"
	"github.com/MrSnakeDoc/navsite/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/navsite/internal/httpserver/mw"
)

func init() { Register("jump", registerJump) }

// registerJump mounts the redirecting endpoints behind one shared per-IP limiter.
func registerJump(r chi.Router, d deps.Deps) {
	limited := r.With(mw.RateLimit(mw.RateLimitConfig{
		Burst:             d.RateBurst,
		RefillPerIPPerMin: d.RatePerMin,
		MaxEntries:        10000,
		TrustProxy:        d.TrustProxy,
	}))

	limited.Get("/search", handlers.Search(d))
	limited.Get("/go/{siteID}", handlers.Go(d))
}
