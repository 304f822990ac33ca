package storefront

import (
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"
)

type countingFS struct {
	fsys  fs.FS
	opens int
}

func (c *countingFS) Open(name string) (fs.File, error) {
	c.opens++
	return c.fsys.Open(name)
}

type recordingHandlers struct {
	calls []string
}

func (h *recordingHandlers) HandleList(w http.ResponseWriter, _ *http.Request) {
	h.calls = append(h.calls, "list")
	w.WriteHeader(http.StatusOK)
}

func (h *recordingHandlers) HandleCreate(w http.ResponseWriter, _ *http.Request) {
	h.calls = append(h.calls, "create")
	w.WriteHeader(http.StatusOK)
}

func (h *recordingHandlers) HandleGet(w http.ResponseWriter, _ *http.Request) {
	h.calls = append(h.calls, "get")
	w.WriteHeader(http.StatusOK)
}

type fixture struct {
	router   http.Handler
	handlers *recordingHandlers
	pages    *countingFS
	assets   *countingFS
}

func newFixture() *fixture {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	pages := &countingFS{fsys: fstest.MapFS{
		"index.html": {Data: []byte("<h1>menu</h1>")},
		"cart.html":  {Data: []byte("<h1>cart</h1>")},
		"app.js":     {Data: []byte("console.log('pages')")},
		"notes.md":   {Data: []byte("# notes")},
	}}
	assets := &countingFS{fsys: fstest.MapFS{
		"images/plate-1.png": {Data: []byte("png")},
		"fonts/a.woff2":      {Data: []byte("woff2")},
		"app.js":             {Data: []byte("console.log('assets')")},
	}}
	handlers := &recordingHandlers{}

	router := NewRouter(RouterConfig{
		Catalog: handlers,
		Orders:  handlers,
		Static:  NewStaticFiles(pages, assets, logger),
		Logger:  logger,
	})

	return &fixture{router: router, handlers: handlers, pages: pages, assets: assets}
}

func (f *fixture) do(method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestRouter_Preflight(t *testing.T) {
	f := newFixture()

	rec := f.do(http.MethodOptions, "/api/orders")

	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("expected empty body, got %q", rec.Body.String())
	}
	want := map[string]string{
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Methods": "GET, POST, PUT, DELETE, OPTIONS",
		"Access-Control-Allow-Headers": "Content-Type, Authorization, X-Requested-With",
		"Access-Control-Max-Age":       "86400",
	}
	for k, v := range want {
		if got := rec.Header().Get(k); got != v {
			t.Errorf("%s: expected %q, got %q", k, v, got)
		}
	}
	if len(f.handlers.calls) != 0 {
		t.Errorf("expected no handler calls, got %v", f.handlers.calls)
	}
	if f.pages.opens+f.assets.opens != 0 {
		t.Error("expected no filesystem access for preflight")
	}
}

func TestRouter_API(t *testing.T) {
	tests := []struct {
		method string
		target string
		call   string
	}{
		{http.MethodGet, "/api/products", "list"},
		{http.MethodPost, "/api/orders", "create"},
		{http.MethodGet, "/api/orders/12", "get"},
	}
	for _, tc := range tests {
		t.Run(tc.method+" "+tc.target, func(t *testing.T) {
			f := newFixture()

			rec := f.do(tc.method, tc.target)

			if rec.Code != http.StatusOK {
				t.Errorf("expected status 200, got %d", rec.Code)
			}
			if len(f.handlers.calls) != 1 || f.handlers.calls[0] != tc.call {
				t.Errorf("expected %s, got %v", tc.call, f.handlers.calls)
			}
			if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
				t.Error("expected CORS headers on API responses")
			}
		})
	}

	t.Run("wrong method falls through to static lookup", func(t *testing.T) {
		f := newFixture()

		rec := f.do(http.MethodPost, "/api/products")

		if rec.Code != http.StatusNotFound {
			t.Errorf("expected status 404, got %d", rec.Code)
		}
		if len(f.handlers.calls) != 0 {
			t.Errorf("expected no handler calls, got %v", f.handlers.calls)
		}
	})
}

func TestRouter_Traversal(t *testing.T) {
	for _, target := range []string{"/../secret", "/images/../../etc/passwd", "/%2e%2e/secret"} {
		t.Run(target, func(t *testing.T) {
			f := newFixture()

			rec := f.do(http.MethodGet, target)

			if rec.Code != http.StatusForbidden {
				t.Errorf("expected status 403, got %d", rec.Code)
			}
			if f.pages.opens+f.assets.opens != 0 {
				t.Errorf("expected no filesystem access, got %d opens", f.pages.opens+f.assets.opens)
			}
		})
	}

	t.Run("any double dot is refused", func(t *testing.T) {
		f := newFixture()

		rec := f.do(http.MethodGet, "/plate..png")

		if rec.Code != http.StatusForbidden {
			t.Errorf("expected status 403, got %d", rec.Code)
		}
	})
}

func TestRouter_Static(t *testing.T) {
	tests := []struct {
		name        string
		target      string
		status      int
		contentType string
		body        string
	}{
		{"root serves index", "/", http.StatusOK, "text/html", "<h1>menu</h1>"},
		{"page from page root", "/cart.html", http.StatusOK, "text/html", "<h1>cart</h1>"},
		{"page root wins over assets", "/app.js", http.StatusOK, "text/javascript", "console.log('pages')"},
		{"falls back to assets root", "/images/plate-1.png", http.StatusOK, "image/png", "png"},
		{"font type", "/fonts/a.woff2", http.StatusOK, "font/woff2", "woff2"},
		{"unknown extension is plain text", "/notes.md", http.StatusOK, "text/plain", "# notes"},
		{"double miss", "/missing.css", http.StatusNotFound, "", "Not Found\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()

			rec := f.do(http.MethodGet, tc.target)

			if rec.Code != tc.status {
				t.Fatalf("expected status %d, got %d", tc.status, rec.Code)
			}
			if tc.contentType != "" && rec.Header().Get("Content-Type") != tc.contentType {
				t.Errorf("expected Content-Type %s, got %s", tc.contentType, rec.Header().Get("Content-Type"))
			}
			if rec.Body.String() != tc.body {
				t.Errorf("expected body %q, got %q", tc.body, rec.Body.String())
			}
		})
	}
}

func TestContentType(t *testing.T) {
	tests := map[string]string{
		"index.html": "text/html",
		"LOGO.PNG":   "image/png",
		"photo.jpeg": "image/jpeg",
		"icon.svg":   "image/svg+xml",
		"data.json":  "application/json",
		"archive":    "text/plain",
		"style.scss": "text/plain",
	}
	for name, want := range tests {
		if got := ContentType(name); got != want {
			t.Errorf("ContentType(%q) = %q, want %q", name, got, want)
		}
	}
}
