package handlers

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/akinalp/topluluk/pkg"
)

// UploadsHandler, yüklenmiş resim dosyalarını servis eder.
//
// http.FileServer yerine elle servis: upload dizini DÜZ bir dizindir,
// alt dizin veya directory listing yoktur. Dosya adında separator
// görülürse istek reddedilir — path traversal'a kapı yok.
type UploadsHandler struct {
	dir string
}

// NewUploadsHandler, yeni bir UploadsHandler oluşturur.
func NewUploadsHandler(dir string) *UploadsHandler {
	return &UploadsHandler{dir: dir}
}

// Serve GET /api/uploads/{file}
func (h *UploadsHandler) Serve(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("file")
	if name == "" || strings.ContainsAny(name, "/\\") || name != filepath.Base(name) {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid file name")
		return
	}

	http.ServeFile(w, r, filepath.Join(h.dir, name))
}
