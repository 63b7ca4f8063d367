package main

import (
	"time"

	"github.com/akinalp/topluluk/config"
	"github.com/akinalp/topluluk/handlers"
	"github.com/akinalp/topluluk/pkg/ratelimit"
	"github.com/akinalp/topluluk/ws"
)

// Handlers, tüm HTTP handler'ları bir arada taşıyan container.
type Handlers struct {
	Auth     *handlers.AuthHandler
	Category *handlers.CategoryHandler
	Server   *handlers.ServerHandler
	Channel  *handlers.ChannelHandler
	Uploads  *handlers.UploadsHandler
	WS       *ws.Handler
}

// initHandlers, tüm handler'ları oluşturur.
func initHandlers(cfg *config.Config, svcs *Services, hub *ws.Hub) *Handlers {
	// Login/register brute-force koruması: IP başına dakikada 10 deneme.
	authLimiter := ratelimit.NewLimiter(10, time.Minute)

	return &Handlers{
		Auth:     handlers.NewAuthHandler(svcs.Auth, authLimiter),
		Category: handlers.NewCategoryHandler(svcs.Category, cfg.Upload.MaxSize),
		Server:   handlers.NewServerHandler(svcs.Server, cfg.Upload.MaxSize),
		Channel:  handlers.NewChannelHandler(svcs.Channel),
		Uploads:  handlers.NewUploadsHandler(cfg.Upload.Dir),
		WS:       ws.NewHandler(hub, svcs.Auth),
	}
}
