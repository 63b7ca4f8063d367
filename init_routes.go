package main

import (
	"net/http"

	"github.com/akinalp/topluluk/middleware"
)

// initRoutes, tüm endpoint'leri mux'a kaydeder.
//
// Go 1.22+ ServeMux: "METHOD /path/{param}" pattern'ları desteklenir,
// harici router'a gerek kalmaz.
//
// Kimlik kuralları:
//   - auth.Require  → geçerli token şart (tüm mutasyonlar)
//   - auth.Optional → token varsa doğrulanır, yoksa anonim devam
//     (sunucu listesi: by_user filtresi kimliğe bakar)
//   - sarmalanmamış → tamamen herkese açık
func initRoutes(h *Handlers, auth *middleware.AuthMiddleware) *http.ServeMux {
	mux := http.NewServeMux()

	// ─── Auth ───
	mux.HandleFunc("POST /api/auth/register", h.Auth.Register)
	mux.HandleFunc("POST /api/auth/login", h.Auth.Login)
	mux.HandleFunc("POST /api/auth/refresh", h.Auth.Refresh)
	mux.HandleFunc("POST /api/auth/logout", h.Auth.Logout)
	mux.Handle("GET /api/auth/me", auth.Require(http.HandlerFunc(h.Auth.Me)))

	// ─── Kategoriler ───
	mux.HandleFunc("GET /api/categories", h.Category.List)
	mux.HandleFunc("GET /api/categories/{id}", h.Category.Get)
	mux.Handle("POST /api/categories", auth.Require(http.HandlerFunc(h.Category.Create)))
	mux.Handle("PUT /api/categories/{id}", auth.Require(http.HandlerFunc(h.Category.Update)))
	mux.Handle("DELETE /api/categories/{id}", auth.Require(http.HandlerFunc(h.Category.Delete)))
	mux.Handle("POST /api/categories/{id}/icon", auth.Require(http.HandlerFunc(h.Category.UploadIcon)))

	// ─── Sunucular ───
	mux.Handle("GET /api/servers", auth.Optional(http.HandlerFunc(h.Server.List)))
	mux.HandleFunc("GET /api/servers/{id}", h.Server.Get)
	mux.Handle("POST /api/servers", auth.Require(http.HandlerFunc(h.Server.Create)))
	mux.Handle("PUT /api/servers/{id}", auth.Require(http.HandlerFunc(h.Server.Update)))
	mux.Handle("DELETE /api/servers/{id}", auth.Require(http.HandlerFunc(h.Server.Delete)))
	mux.Handle("POST /api/servers/{id}/join", auth.Require(http.HandlerFunc(h.Server.Join)))
	mux.Handle("DELETE /api/servers/{id}/leave", auth.Require(http.HandlerFunc(h.Server.Leave)))
	mux.Handle("POST /api/servers/{id}/icon", auth.Require(http.HandlerFunc(h.Server.UploadIcon)))
	mux.Handle("POST /api/servers/{id}/banner", auth.Require(http.HandlerFunc(h.Server.UploadBanner)))

	// ─── Kanallar ───
	mux.HandleFunc("GET /api/servers/{id}/channels", h.Channel.ListByServer)
	mux.Handle("POST /api/servers/{id}/channels", auth.Require(http.HandlerFunc(h.Channel.Create)))
	mux.Handle("PUT /api/channels/{id}", auth.Require(http.HandlerFunc(h.Channel.Update)))
	mux.Handle("DELETE /api/channels/{id}", auth.Require(http.HandlerFunc(h.Channel.Delete)))

	// ─── Statik upload'lar ve WebSocket ───
	mux.HandleFunc("GET /api/uploads/{file}", h.Uploads.Serve)
	mux.HandleFunc("GET /ws", h.WS.HandleConnection)

	return mux
}
