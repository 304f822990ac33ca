package storefront

import (
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"strings"
)

var mimeTypes = map[string]string{
	".html":  "text/html",
	".css":   "text/css",
	".js":    "text/javascript",
	".json":  "application/json",
	".png":   "image/png",
	".jpg":   "image/jpeg",
	".jpeg":  "image/jpeg",
	".svg":   "image/svg+xml",
	".gif":   "image/gif",
	".ttf":   "font/ttf",
	".woff":  "font/woff",
	".woff2": "font/woff2",
}

const defaultContentType = "text/plain"

// ContentType maps a file name to its Content-Type by extension.
func ContentType(name string) string {
	if ct, ok := mimeTypes[strings.ToLower(path.Ext(name))]; ok {
		return ct
	}
	return defaultContentType
}

// StaticFiles serves files from the page-source root, falling back to the
// assets root.
type StaticFiles struct {
	pages  fs.FS
	assets fs.FS
	logger *slog.Logger
}

func NewStaticFiles(pages, assets fs.FS, logger *slog.Logger) *StaticFiles {
	return &StaticFiles{
		pages:  pages,
		assets: assets,
		logger: logger,
	}
}

func (s *StaticFiles) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, "/")
	if name == "" {
		name = "index.html"
	}

	if !fs.ValidPath(name) {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	data, err := s.read(name)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("failed to read static file", "error", err, "path", name)
		}
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", ContentType(name))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		s.logger.Error("failed to write static file", "error", err, "path", name)
	}
}

func (s *StaticFiles) read(name string) ([]byte, error) {
	data, err := fs.ReadFile(s.pages, name)
	if err == nil {
		return data, nil
	}
	return fs.ReadFile(s.assets, name)
}
