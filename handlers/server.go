package handlers

import (
	"net/http"

	"github.com/akinalp/topluluk/middleware"
	"github.com/akinalp/topluluk/models"
	"github.com/akinalp/topluluk/pkg"
	"github.com/akinalp/topluluk/services"
)

// ServerHandler, sunucu endpoint'lerini karşılar.
type ServerHandler struct {
	serverService services.ServerService
	maxUploadSize int64
}

// NewServerHandler, yeni bir ServerHandler oluşturur.
func NewServerHandler(serverService services.ServerService, maxUploadSize int64) *ServerHandler {
	return &ServerHandler{
		serverService: serverService,
		maxUploadSize: maxUploadSize,
	}
}

// List GET /api/servers
//
// Filtreler query string'den okunur: category, qty, by_user,
// with_num_members, by_server_id. Endpoint anonime açıktır; yalnızca
// by_user=true kimlik ister — o kontrol service katmanındadır.
func (h *ServerHandler) List(w http.ResponseWriter, r *http.Request) {
	q := services.ParseServerListQuery(r.URL.Query())

	servers, err := h.serverService.List(r.Context(), q, middleware.CallerID(r.Context()))
	if err != nil {
		pkg.Error(w, err)
		return
	}
	pkg.JSON(w, http.StatusOK, servers)
}

// Get GET /api/servers/{id}
func (h *ServerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		pkg.Error(w, err)
		return
	}

	server, err := h.serverService.Get(r.Context(), id)
	if err != nil {
		pkg.Error(w, err)
		return
	}
	pkg.JSON(w, http.StatusOK, server)
}

// Create POST /api/servers
func (h *ServerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateServerRequest
	if err := decodeJSON(r, &req); err != nil {
		pkg.Error(w, err)
		return
	}

	server, err := h.serverService.Create(r.Context(), middleware.CallerID(r.Context()), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}
	pkg.JSON(w, http.StatusCreated, server)
}

// Update PUT /api/servers/{id}
func (h *ServerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		pkg.Error(w, err)
		return
	}

	var req models.UpdateServerRequest
	if err := decodeJSON(r, &req); err != nil {
		pkg.Error(w, err)
		return
	}

	server, err := h.serverService.Update(r.Context(), id, middleware.CallerID(r.Context()), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}
	pkg.JSON(w, http.StatusOK, server)
}

// Delete DELETE /api/servers/{id}
func (h *ServerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		pkg.Error(w, err)
		return
	}

	if err := h.serverService.Delete(r.Context(), id, middleware.CallerID(r.Context())); err != nil {
		pkg.Error(w, err)
		return
	}
	pkg.JSON(w, http.StatusOK, map[string]string{"message": "server deleted"})
}

// Join POST /api/servers/{id}/join
func (h *ServerHandler) Join(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		pkg.Error(w, err)
		return
	}

	if err := h.serverService.Join(r.Context(), id, middleware.CallerID(r.Context())); err != nil {
		pkg.Error(w, err)
		return
	}
	pkg.JSON(w, http.StatusOK, map[string]string{"message": "joined server"})
}

// Leave DELETE /api/servers/{id}/leave
func (h *ServerHandler) Leave(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		pkg.Error(w, err)
		return
	}

	if err := h.serverService.Leave(r.Context(), id, middleware.CallerID(r.Context())); err != nil {
		pkg.Error(w, err)
		return
	}
	pkg.JSON(w, http.StatusOK, map[string]string{"message": "left server"})
}

// UploadIcon POST /api/servers/{id}/icon
func (h *ServerHandler) UploadIcon(w http.ResponseWriter, r *http.Request) {
	h.uploadImage(w, r, "icon")
}

// UploadBanner POST /api/servers/{id}/banner
func (h *ServerHandler) UploadBanner(w http.ResponseWriter, r *http.Request) {
	h.uploadImage(w, r, "banner")
}

// uploadImage, icon/banner upload'larının ortak HTTP tarafı.
// Dosya, field adıyla aynı isimli multipart form field'ında beklenir.
func (h *ServerHandler) uploadImage(w http.ResponseWriter, r *http.Request, field string) {
	id, err := pathID(r, "id")
	if err != nil {
		pkg.Error(w, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid or too large multipart form")
		return
	}

	file, header, err := r.FormFile(field)
	if err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "missing "+field+" file")
		return
	}
	defer file.Close()

	callerID := middleware.CallerID(r.Context())

	var server *models.Server
	if field == "icon" {
		server, err = h.serverService.SetIcon(r.Context(), id, callerID, file, header)
	} else {
		server, err = h.serverService.SetBanner(r.Context(), id, callerID, file, header)
	}
	if err != nil {
		pkg.Error(w, err)
		return
	}
	pkg.JSON(w, http.StatusOK, server)
}
