package handlers

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newStaticRoot(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("Failed to create directory: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}
	return root
}

func TestRootRedirectHandler(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	RootRedirectHandler(w, req)

	if w.Code != http.StatusFound {
		t.Errorf("Expected status %d, got %d", http.StatusFound, w.Code)
	}

	location := w.Header().Get("Location")
	if location != "/index.html" {
		t.Errorf("Expected Location '/index.html', got '%s'", location)
	}
}

func TestRootRedirectHandler_Head(t *testing.T) {
	req := httptest.NewRequest("HEAD", "/", nil)
	w := httptest.NewRecorder()

	RootRedirectHandler(w, req)

	if w.Code != http.StatusFound {
		t.Errorf("Expected status %d, got %d", http.StatusFound, w.Code)
	}
}

func TestRootRedirectHandler_InvalidMethod(t *testing.T) {
	req := httptest.NewRequest("POST", "/", nil)
	w := httptest.NewRecorder()

	RootRedirectHandler(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected status %d, got %d", http.StatusMethodNotAllowed, w.Code)
	}

	if w.Header().Get("Allow") != "GET, HEAD" {
		t.Errorf("Expected Allow 'GET, HEAD', got '%s'", w.Header().Get("Allow"))
	}
}

func TestStaticHandler_ServesFile(t *testing.T) {
	root := newStaticRoot(t, map[string]string{"index.html": "<html></html>"})
	handler := StaticHandler(root)

	req := httptest.NewRequest("GET", "/index.html", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status %d, got %d", http.StatusOK, w.Code)
	}

	if w.Body.String() != "<html></html>" {
		t.Errorf("Expected body '<html></html>', got '%s'", w.Body.String())
	}

	contentType := w.Header().Get("Content-Type")
	if contentType != "text/html; charset=utf-8" {
		t.Errorf("Expected Content-Type 'text/html; charset=utf-8', got '%s'", contentType)
	}
}

func TestStaticHandler_ContentTypes(t *testing.T) {
	root := newStaticRoot(t, map[string]string{
		"styles.css":   "body { margin: 0; }",
		"js/index.js":  "draw_frame();",
		"data.json":    "{}",
		"notes.txt":    "plain",
		"image.svg":    "<svg></svg>",
		"wasm/app.bin": "\x00\x01\x02",
	})
	handler := StaticHandler(root)

	tests := []struct {
		path        string
		contentType string
	}{
		{"/styles.css", "text/css"},
		{"/js/index.js", "javascript"},
		{"/data.json", "application/json"},
		{"/notes.txt", "text/plain"},
		{"/image.svg", "image/svg+xml"},
		{"/wasm/app.bin", "application/octet-stream"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.path, nil)
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("Expected status %d, got %d", http.StatusOK, w.Code)
			}

			contentType := w.Header().Get("Content-Type")
			if !strings.Contains(contentType, tt.contentType) {
				t.Errorf("Expected Content-Type containing '%s', got '%s'", tt.contentType, contentType)
			}
		})
	}
}

func TestStaticHandler_NotFound(t *testing.T) {
	root := newStaticRoot(t, map[string]string{
		"index.html":    "<html></html>",
		"sub/page.html": "<p></p>",
	})
	handler := StaticHandler(root)

	paths := []string{
		"/missing.html",
		"/sub",
		"/sub/",
		"/index.html/",
		"/index.html/extra",
		"/../../etc/passwd",
	}

	for _, p := range paths {
		req := httptest.NewRequest("GET", "/", nil)
		req.URL.Path = p
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("%s: expected status %d, got %d", p, http.StatusNotFound, w.Code)
		}
	}
}

func TestStaticHandler_NestedFile(t *testing.T) {
	root := newStaticRoot(t, map[string]string{"sub/page.html": "<p></p>"})
	handler := StaticHandler(root)

	req := httptest.NewRequest("GET", "/sub/page.html", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status %d, got %d", http.StatusOK, w.Code)
	}

	if w.Body.String() != "<p></p>" {
		t.Errorf("Expected body '<p></p>', got '%s'", w.Body.String())
	}
}

func TestStaticHandler_InvalidMethod(t *testing.T) {
	root := newStaticRoot(t, map[string]string{"index.html": "<html></html>"})
	handler := StaticHandler(root)

	req := httptest.NewRequest("DELETE", "/index.html", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected status %d, got %d", http.StatusMethodNotAllowed, w.Code)
	}
}

func TestStaticHandler_NotModified(t *testing.T) {
	root := newStaticRoot(t, map[string]string{"index.html": "<html></html>"})
	handler := StaticHandler(root)

	req := httptest.NewRequest("GET", "/index.html", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	lastModified := w.Header().Get("Last-Modified")
	if lastModified == "" {
		t.Fatal("Expected Last-Modified header")
	}

	req = httptest.NewRequest("GET", "/index.html", nil)
	req.Header.Set("If-Modified-Since", lastModified)
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusNotModified {
		t.Errorf("Expected status %d, got %d", http.StatusNotModified, w.Code)
	}
}

func TestReloadScriptHandler(t *testing.T) {
	req := httptest.NewRequest("GET", "/_dev/reload.js", nil)
	w := httptest.NewRecorder()

	ReloadScriptHandler(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status %d, got %d", http.StatusOK, w.Code)
	}

	contentType := w.Header().Get("Content-Type")
	if contentType != "text/javascript; charset=utf-8" {
		t.Errorf("Expected Content-Type 'text/javascript; charset=utf-8', got '%s'", contentType)
	}

	if !strings.Contains(w.Body.String(), "/_dev/reload") {
		t.Error("Script should connect to the live-reload endpoint")
	}
}
