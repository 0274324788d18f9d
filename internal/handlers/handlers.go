package handlers

import (
	"errors"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/sirupsen/logrus"
	"static-server/pkg/config"
	"static-server/web"
)

// RootRedirectHandler sends the browser from / to the index page
func RootRedirectHandler(w http.ResponseWriter, r *http.Request) {
	if !allowRead(w, r) {
		return
	}
	http.Redirect(w, r, "/"+config.IndexFile, http.StatusFound)
}

// ReloadScriptHandler serves the live-reload browser helper
func ReloadScriptHandler(w http.ResponseWriter, r *http.Request) {
	if !allowRead(w, r) {
		return
	}
	w.Header().Set("Content-Type", "text/javascript; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.Write(web.ReloadJS)
}

type staticHandler struct {
	root http.Dir
}

// StaticHandler serves every regular file under root at /<relative path>.
// Directories are never listed and /index.html is served as is, unlike
// http.FileServer which would redirect it back to /.
func StaticHandler(root string) http.Handler {
	return &staticHandler{root: http.Dir(root)}
}

func (h *staticHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !allowRead(w, r) {
		return
	}

	if strings.HasSuffix(r.URL.Path, "/") {
		http.NotFound(w, r)
		return
	}
	name := path.Clean("/" + r.URL.Path)

	f, err := h.root.Open(name)
	if err != nil {
		writeFSError(w, r, name, err)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		writeFSError(w, r, name, err)
		return
	}
	if info.IsDir() {
		http.NotFound(w, r)
		return
	}

	// ServeContent picks the Content-Type from the extension and sniffs
	// the first bytes when the extension is unknown.
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}

func allowRead(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodGet || r.Method == http.MethodHead {
		return true
	}
	w.Header().Set("Allow", "GET, HEAD")
	http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	return false
}

func writeFSError(w http.ResponseWriter, r *http.Request, name string, err error) {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		http.NotFound(w, r)
	case errors.Is(err, fs.ErrPermission):
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
	default:
		logrus.WithError(err).WithField("path", name).Error("Failed to open static file")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
