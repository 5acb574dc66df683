package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/navsite/internal/httpserver/deps"
	"github.com/MrSnakeDoc/navsite/internal/logger"
)

type (
	Registrar  func(r chi.Router, d deps.Deps)
	Middleware = func(http.Handler) http.Handler
)

// Order decides mount order. The page catch-all mounts last.
type Order int

const (
	OrderDefault Order = iota
	OrderLast
)

type entry struct {
	name  string
	order Order
	reg   Registrar
	mws   []Middleware
}

var registry []entry

// Register a named registrar with optional per-route middlewares.
func Register(name string, reg Registrar, mws ...Middleware) {
	RegisterOrdered(name, OrderDefault, reg, mws...)
}

// RegisterOrdered is Register with an explicit mount order.
func RegisterOrdered(name string, order Order, reg Registrar, mws ...Middleware) {
	registry = append(registry, entry{name: name, order: order, reg: reg, mws: mws})
}

// RegisterAll mounts every registrar, called once from server.New().
func RegisterAll(r chi.Router, d deps.Deps) {
	for _, order := range []Order{OrderDefault, OrderLast} {
		for _, e := range registry {
			if e.order != order {
				continue
			}
			if len(e.mws) == 0 {
				e.reg(r, d)
			} else {
				e.reg(r.With(e.mws...), d) // apply per-route middlewares
			}
			d.Logger.Debug("routes registered", logger.String("group", e.name))
		}
	}
}
