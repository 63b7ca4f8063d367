package main

import (
	"github.com/akinalp/topluluk/config"
	"github.com/akinalp/topluluk/services"
	"github.com/akinalp/topluluk/ws"
)

// Services, tüm service'leri bir arada taşıyan container.
type Services struct {
	Auth     services.AuthService
	Images   services.ImageService
	Category services.CategoryService
	Server   services.ServerService
	Channel  services.ChannelService
}

// initServices, tüm service'leri bağımlılıklarıyla oluşturur.
// Hub, ws.EventPublisher interface'i üzerinden geçilir — service'ler
// concrete Hub tipini bilmez.
func initServices(cfg *config.Config, repos *Repositories, hub *ws.Hub) *Services {
	images := services.NewImageService(cfg.Upload.Dir, cfg.Upload.MaxSize)

	return &Services{
		Auth:     services.NewAuthService(repos.Users, repos.Sessions, cfg.JWT),
		Images:   images,
		Category: services.NewCategoryService(repos.Categories, images, hub),
		Server:   services.NewServerService(repos.Servers, repos.Categories, repos.Channels, images, hub),
		Channel:  services.NewChannelService(repos.Channels, repos.Servers, hub),
	}
}
