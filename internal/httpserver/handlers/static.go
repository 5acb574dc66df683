package handlers

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Assets serves files under dir with a long cache lifetime. prefix is the
// route prefix stripped before lookup, e.g. "/asset".
func Assets(dir, prefix string) http.Handler {
	fs := http.StripPrefix(prefix, http.FileServer(http.Dir(dir)))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=86400")
		fs.ServeHTTP(w, r)
	})
}

// SPA serves the built navigation page. Paths that do not match a file
// fall back to index.html so client-side routes keep working.
func SPA(dir string) http.HandlerFunc {
	files := http.FileServer(http.Dir(dir))
	index := filepath.Join(dir, "index.html")

	return func(w http.ResponseWriter, r *http.Request) {
		clean := path.Clean("/" + r.URL.Path)
		if clean != "/" && !strings.HasSuffix(clean, "/") {
			info, err := os.Stat(filepath.Join(dir, filepath.FromSlash(clean)))
			if err == nil && !info.IsDir() {
				files.ServeHTTP(w, r)
				return
			}
		}

		w.Header().Set("Cache-Control", "no-cache")
		http.ServeFile(w, r, index)
	}
}
