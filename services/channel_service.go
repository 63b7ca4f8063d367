package services

import (
	"context"
	"fmt"
	"log"

	"github.com/akinalp/topluluk/models"
	"github.com/akinalp/topluluk/pkg"
	"github.com/akinalp/topluluk/repository"
	"github.com/akinalp/topluluk/ws"
)

// ChannelService, kanal iş mantığı için interface.
//
// Kanal oluşturmayı sunucu sahibi yapar; güncelleme ve silmeyi kanal
// sahibi VEYA sunucu sahibi yapabilir.
type ChannelService interface {
	ListByServer(ctx context.Context, serverID int64) ([]models.Channel, error)
	Create(ctx context.Context, serverID, callerID int64, req *models.CreateChannelRequest) (*models.Channel, error)
	Update(ctx context.Context, id, callerID int64, req *models.UpdateChannelRequest) (*models.Channel, error)
	Delete(ctx context.Context, id, callerID int64) error
}

type channelService struct {
	channels  repository.ChannelRepository
	servers   repository.ServerRepository
	publisher ws.EventPublisher
}

// NewChannelService, yeni bir ChannelService oluşturur.
func NewChannelService(channels repository.ChannelRepository, servers repository.ServerRepository, publisher ws.EventPublisher) ChannelService {
	return &channelService{
		channels:  channels,
		servers:   servers,
		publisher: publisher,
	}
}

func (s *channelService) ListByServer(ctx context.Context, serverID int64) ([]models.Channel, error) {
	// Sunucu yoksa boş liste değil not found dönmeli.
	if _, err := s.servers.GetByID(ctx, serverID); err != nil {
		return nil, err
	}

	channels, err := s.channels.GetByServer(ctx, serverID)
	if err != nil {
		return nil, err
	}
	if channels == nil {
		channels = []models.Channel{}
	}
	return channels, nil
}

func (s *channelService) Create(ctx context.Context, serverID, callerID int64, req *models.CreateChannelRequest) (*models.Channel, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	server, err := s.servers.GetByID(ctx, serverID)
	if err != nil {
		return nil, err
	}
	if server.OwnerID != callerID {
		return nil, fmt.Errorf("%w: only the server owner can create channels", pkg.ErrForbidden)
	}

	channel := &models.Channel{
		ServerID: serverID,
		OwnerID:  callerID,
		Name:     req.Name, // Validate() zaten küçük harfe çevirdi
		Topic:    req.Topic,
	}

	if err := s.channels.Create(ctx, channel); err != nil {
		return nil, err
	}

	log.Printf("[channel] created: %s (id=%d, server=%d)", channel.Name, channel.ID, serverID)
	s.publisher.BroadcastToAll(ws.Event{Op: ws.OpChannelCreate, Data: channel})
	return channel, nil
}

func (s *channelService) Update(ctx context.Context, id, callerID int64, req *models.UpdateChannelRequest) (*models.Channel, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	channel, err := s.channels.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, channel, callerID); err != nil {
		return nil, err
	}

	if req.Name != nil {
		channel.Name = *req.Name
	}
	if req.Topic != nil {
		channel.Topic = *req.Topic
	}

	if err := s.channels.Update(ctx, channel); err != nil {
		return nil, err
	}

	s.publisher.BroadcastToAll(ws.Event{Op: ws.OpChannelUpdate, Data: channel})
	return channel, nil
}

func (s *channelService) Delete(ctx context.Context, id, callerID int64) error {
	channel, err := s.channels.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authorize(ctx, channel, callerID); err != nil {
		return err
	}

	if err := s.channels.Delete(ctx, id); err != nil {
		return err
	}

	log.Printf("[channel] deleted: %s (id=%d)", channel.Name, id)
	s.publisher.BroadcastToAll(ws.Event{Op: ws.OpChannelDelete, Data: map[string]int64{"id": id}})
	return nil
}

// authorize, callerID'nin kanal sahibi ya da sunucu sahibi olduğunu doğrular.
func (s *channelService) authorize(ctx context.Context, channel *models.Channel, callerID int64) error {
	if channel.OwnerID == callerID {
		return nil
	}

	server, err := s.servers.GetByID(ctx, channel.ServerID)
	if err != nil {
		return err
	}
	if server.OwnerID != callerID {
		return fmt.Errorf("%w: only the channel or server owner can modify this channel", pkg.ErrForbidden)
	}
	return nil
}
