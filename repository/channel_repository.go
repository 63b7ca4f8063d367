package repository

import (
	"context"

	"github.com/akinalp/topluluk/models"
)

// ChannelRepository, kanal veritabanı işlemleri için interface.
type ChannelRepository interface {
	Create(ctx context.Context, channel *models.Channel) error
	GetByID(ctx context.Context, id int64) (*models.Channel, error)
	GetByServer(ctx context.Context, serverID int64) ([]models.Channel, error)

	// GetByServers, birden fazla sunucunun kanallarını tek sorguda döner
	// (listing yanıtındaki gömülü kanal listesi için — N+1 sorgu yerine).
	GetByServers(ctx context.Context, serverIDs []int64) (map[int64][]models.Channel, error)

	Update(ctx context.Context, channel *models.Channel) error
	Delete(ctx context.Context, id int64) error
}
