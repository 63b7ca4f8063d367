package handlers

import (
	"net/http"

	"github.com/akinalp/topluluk/middleware"
	"github.com/akinalp/topluluk/models"
	"github.com/akinalp/topluluk/pkg"
	"github.com/akinalp/topluluk/services"
)

// ChannelHandler, kanal endpoint'lerini karşılar.
type ChannelHandler struct {
	channelService services.ChannelService
}

// NewChannelHandler, yeni bir ChannelHandler oluşturur.
func NewChannelHandler(channelService services.ChannelService) *ChannelHandler {
	return &ChannelHandler{channelService: channelService}
}

// ListByServer GET /api/servers/{id}/channels
func (h *ChannelHandler) ListByServer(w http.ResponseWriter, r *http.Request) {
	serverID, err := pathID(r, "id")
	if err != nil {
		pkg.Error(w, err)
		return
	}

	channels, err := h.channelService.ListByServer(r.Context(), serverID)
	if err != nil {
		pkg.Error(w, err)
		return
	}
	pkg.JSON(w, http.StatusOK, channels)
}

// Create POST /api/servers/{id}/channels
func (h *ChannelHandler) Create(w http.ResponseWriter, r *http.Request) {
	serverID, err := pathID(r, "id")
	if err != nil {
		pkg.Error(w, err)
		return
	}

	var req models.CreateChannelRequest
	if err := decodeJSON(r, &req); err != nil {
		pkg.Error(w, err)
		return
	}

	channel, err := h.channelService.Create(r.Context(), serverID, middleware.CallerID(r.Context()), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}
	pkg.JSON(w, http.StatusCreated, channel)
}

// Update PUT /api/channels/{id}
func (h *ChannelHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		pkg.Error(w, err)
		return
	}

	var req models.UpdateChannelRequest
	if err := decodeJSON(r, &req); err != nil {
		pkg.Error(w, err)
		return
	}

	channel, err := h.channelService.Update(r.Context(), id, middleware.CallerID(r.Context()), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}
	pkg.JSON(w, http.StatusOK, channel)
}

// Delete DELETE /api/channels/{id}
func (h *ChannelHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		pkg.Error(w, err)
		return
	}

	if err := h.channelService.Delete(r.Context(), id, middleware.CallerID(r.Context())); err != nil {
		pkg.Error(w, err)
		return
	}
	pkg.JSON(w, http.StatusOK, map[string]string{"message": "channel deleted"})
}
