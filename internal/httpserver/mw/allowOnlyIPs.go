package mw

import (
	"net/http"

	"github.com/MrSnakeDoc/navsite/internal/logger"
	"github.com/MrSnakeDoc/navsite/internal/utils"
)

// AllowOnlyCIDRS restricts a route to clients inside the allowed addresses and
// prefixes. An empty (or entirely invalid) list leaves the route open.
func AllowOnlyCIDRS(allowed []string, trustProxy bool, log logger.Logger) func(http.Handler) http.Handler {
	if bad := utils.Invalid(allowed); len(bad) > 0 {
		log.Warn("ignoring invalid allowed CIDR entries", logger.Strings("entries", bad))
	}

	m := utils.NewIPMatcher(allowed)
	if m.IsEmpty() {
		return func(next http.Handler) http.Handler { return next }
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := utils.ClientIP(r, trustProxy)
			if !m.Allow(ip) {
				log.Info("client ip not allowed",
					logger.String("remote_ip", ip),
					logger.String("path", r.URL.Path))
				http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
