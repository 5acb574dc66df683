package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/navsite/internal/httpserver/deps"
)

type readyzResponse struct {
	Ready bool `json:"ready"`
}

// Readyz is ready once a document has been loaded.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ready := !d.MemoryIndex.GetLastReload().IsZero()

		status := http.StatusOK
		if !ready {
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, d, status, readyzResponse{Ready: ready})
	}
}
