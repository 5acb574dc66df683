package handlers

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/MrSnakeDoc/navsite/internal/httpserver/deps"
	"github.com/MrSnakeDoc/navsite/internal/logger"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, d deps.Deps, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		d.Logger.Debug("failed to write response", logger.Error(err))
	}
}

func writeError(w http.ResponseWriter, d deps.Deps, status int, msg string) {
	writeJSON(w, d, status, errorResponse{Error: msg})
}

// isRedirectable reports whether target is an absolute http(s) URL.
// Anything else (javascript:, relative paths, empty) is never redirected to.
func isRedirectable(target string) bool {
	u, err := url.Parse(strings.TrimSpace(target))
	if err != nil || u.Host == "" {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}
