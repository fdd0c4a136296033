package handlers

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
)

// StaticRouter serves the prebuilt single-page client: index.html at
// the root and the hashed bundle under /assets. Registration is
// skipped when the dist directory does not exist, so API-only
// deployments work unchanged.
func StaticRouter(r chi.Router, distDir string) {
	index := filepath.Join(distDir, "index.html")
	if _, err := os.Stat(index); err != nil {
		return
	}

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		http.ServeFile(w, req, index)
	})

	assets := http.FileServer(http.Dir(filepath.Join(distDir, "assets")))
	r.Handle("/assets/*", http.StripPrefix("/assets/", assets))
}
