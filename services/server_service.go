package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime/multipart"

	"github.com/akinalp/topluluk/models"
	"github.com/akinalp/topluluk/pkg"
	"github.com/akinalp/topluluk/repository"
	"github.com/akinalp/topluluk/ws"
)

// ServerService, sunucu iş mantığı için interface.
//
// List herkese açıktır (callerID=0 anonim demektir); mutasyonlar sunucu
// sahibine kısıtlıdır. Join/Leave üyelik operasyonlarıdır ve her
// doğrulanmış kullanıcıya açıktır.
type ServerService interface {
	// List, filtrelenebilir sunucu listesini döner. Pipeline'ın sabit
	// aşama sırası için services/server_list.go'ya bakın.
	List(ctx context.Context, q ServerListQuery, callerID int64) ([]models.Server, error)

	Get(ctx context.Context, id int64) (*models.Server, error)
	Create(ctx context.Context, ownerID int64, req *models.CreateServerRequest) (*models.Server, error)
	Update(ctx context.Context, id, callerID int64, req *models.UpdateServerRequest) (*models.Server, error)
	Delete(ctx context.Context, id, callerID int64) error

	Join(ctx context.Context, serverID, userID int64) error
	Leave(ctx context.Context, serverID, userID int64) error

	SetIcon(ctx context.Context, id, callerID int64, file multipart.File, header *multipart.FileHeader) (*models.Server, error)
	SetBanner(ctx context.Context, id, callerID int64, file multipart.File, header *multipart.FileHeader) (*models.Server, error)
}

type serverService struct {
	servers    repository.ServerRepository
	categories repository.CategoryRepository
	channels   repository.ChannelRepository
	images     ImageService
	publisher  ws.EventPublisher
}

// NewServerService, yeni bir ServerService oluşturur.
func NewServerService(
	servers repository.ServerRepository,
	categories repository.CategoryRepository,
	channels repository.ChannelRepository,
	images ImageService,
	publisher ws.EventPublisher,
) ServerService {
	return &serverService{
		servers:    servers,
		categories: categories,
		channels:   channels,
		images:     images,
		publisher:  publisher,
	}
}

// List, listing pipeline'ını çalıştırır.
//
// Aşamalar SABİT sırada uygulanır; her aşama saf fonksiyondur ve yalnızca
// ilgili filtre istenmiş ise çalışır. Kanal gömme pipeline'ın parçası
// değildir — hangi filtreler uygulanırsa uygulansın, nihai snapshot'taki
// HER sunucu kanallarıyla döner.
func (s *serverService) List(ctx context.Context, q ServerListQuery, callerID int64) ([]models.Server, error) {
	snapshot, err := s.servers.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	if q.Category != "" {
		snapshot = filterByCategory(snapshot, q.Category)
	}

	if q.ByUser {
		if callerID == 0 {
			return nil, pkg.ErrAuthRequired
		}
		ids, err := s.servers.GetMemberServerIDs(ctx, callerID)
		if err != nil {
			return nil, err
		}
		memberOf := make(map[int64]bool, len(ids))
		for _, id := range ids {
			memberOf[id] = true
		}
		snapshot = filterByMembership(snapshot, memberOf)
	}

	if q.WithNumMembers {
		counts, err := s.servers.GetMemberCounts(ctx)
		if err != nil {
			return nil, err
		}
		snapshot = annotateMemberCounts(snapshot, counts)
	}

	if q.Qty > 0 {
		snapshot = truncate(snapshot, q.Qty)
	}

	if q.ByServerID != "" {
		snapshot, err = filterByServerID(snapshot, q.ByServerID)
		if err != nil {
			return nil, err
		}
	}

	if err := s.embedChannels(ctx, snapshot); err != nil {
		return nil, err
	}

	// Boş sonuç JSON'da null değil [] olmalı.
	if snapshot == nil {
		snapshot = []models.Server{}
	}

	return snapshot, nil
}

// embedChannels, snapshot'taki her sunucuya kanallarını tek sorguyla yükler.
// Kanalsız sunucularda Channels nil değil boş slice olur — JSON'da [].
func (s *serverService) embedChannels(ctx context.Context, servers []models.Server) error {
	if len(servers) == 0 {
		return nil
	}

	ids := make([]int64, len(servers))
	for i, srv := range servers {
		ids[i] = srv.ID
	}

	byServer, err := s.channels.GetByServers(ctx, ids)
	if err != nil {
		return err
	}

	for i := range servers {
		if chs, ok := byServer[servers[i].ID]; ok {
			servers[i].Channels = chs
		} else {
			servers[i].Channels = []models.Channel{}
		}
	}
	return nil
}

func (s *serverService) Get(ctx context.Context, id int64) (*models.Server, error) {
	server, err := s.servers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	channels, err := s.channels.GetByServer(ctx, id)
	if err != nil {
		return nil, err
	}
	server.Channels = nonNilChannels(channels)

	return server, nil
}

// nonNilChannels, nil slice'ı boş slice'a çevirir — JSON'da null yerine [].
func nonNilChannels(channels []models.Channel) []models.Channel {
	if channels == nil {
		return []models.Channel{}
	}
	return channels
}

func (s *serverService) Create(ctx context.Context, ownerID int64, req *models.CreateServerRequest) (*models.Server, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	category, err := s.categories.GetByID(ctx, req.CategoryID)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return nil, fmt.Errorf("%w: category %d does not exist", pkg.ErrBadRequest, req.CategoryID)
		}
		return nil, err
	}

	server := &models.Server{
		Name:         req.Name,
		OwnerID:      ownerID,
		CategoryID:   category.ID,
		CategoryName: category.Name,
		Channels:     []models.Channel{},
	}
	if req.Description != "" {
		server.Description = &req.Description
	}

	if err := s.servers.Create(ctx, server); err != nil {
		return nil, err
	}

	// Sahip otomatik olarak ilk üyedir.
	if err := s.servers.AddMember(ctx, server.ID, ownerID); err != nil {
		return nil, err
	}

	log.Printf("[server] created: %s (id=%d, owner=%d)", server.Name, server.ID, ownerID)
	s.publisher.BroadcastToAll(ws.Event{Op: ws.OpServerCreate, Data: server})
	return server, nil
}

func (s *serverService) Update(ctx context.Context, id, callerID int64, req *models.UpdateServerRequest) (*models.Server, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	server, err := s.servers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if server.OwnerID != callerID {
		return nil, fmt.Errorf("%w: only the server owner can update it", pkg.ErrForbidden)
	}

	if req.Name != nil {
		server.Name = *req.Name
	}
	if req.Description != nil {
		server.Description = req.Description
	}
	if req.CategoryID != nil && *req.CategoryID != server.CategoryID {
		category, err := s.categories.GetByID(ctx, *req.CategoryID)
		if err != nil {
			if errors.Is(err, pkg.ErrNotFound) {
				return nil, fmt.Errorf("%w: category %d does not exist", pkg.ErrBadRequest, *req.CategoryID)
			}
			return nil, err
		}
		server.CategoryID = category.ID
		server.CategoryName = category.Name
	}

	if err := s.servers.Update(ctx, server); err != nil {
		return nil, err
	}

	channels, err := s.channels.GetByServer(ctx, id)
	if err != nil {
		return nil, err
	}
	server.Channels = nonNilChannels(channels)

	s.publisher.BroadcastToAll(ws.Event{Op: ws.OpServerUpdate, Data: server})
	return server, nil
}

func (s *serverService) Delete(ctx context.Context, id, callerID int64) error {
	server, err := s.servers.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if server.OwnerID != callerID {
		return fmt.Errorf("%w: only the server owner can delete it", pkg.ErrForbidden)
	}

	// Kanallar ve üyelikler FK cascade ile DB tarafında silinir.
	if err := s.servers.Delete(ctx, id); err != nil {
		return err
	}

	// Diskteki resim dosyaları cascade'in kapsamında değil — elle temizle.
	if server.IconURL != nil {
		s.images.Remove(*server.IconURL)
	}
	if server.BannerURL != nil {
		s.images.Remove(*server.BannerURL)
	}

	log.Printf("[server] deleted: %s (id=%d)", server.Name, id)
	s.publisher.BroadcastToAll(ws.Event{Op: ws.OpServerDelete, Data: map[string]int64{"id": id}})
	return nil
}

// Join, kullanıcıyı sunucuya üye yapar. Zaten üyeyse no-op (idempotent).
func (s *serverService) Join(ctx context.Context, serverID, userID int64) error {
	if _, err := s.servers.GetByID(ctx, serverID); err != nil {
		return err
	}

	if err := s.servers.AddMember(ctx, serverID, userID); err != nil {
		return err
	}

	s.publisher.BroadcastToAll(ws.Event{
		Op:   ws.OpMemberJoin,
		Data: ws.MemberData{ServerID: serverID, UserID: userID},
	})
	return nil
}

// Leave, kullanıcının üyeliğini kaldırır. Sahip sunucusundan ayrılamaz —
// önce sunucuyu silmeli ya da devretmelidir.
func (s *serverService) Leave(ctx context.Context, serverID, userID int64) error {
	server, err := s.servers.GetByID(ctx, serverID)
	if err != nil {
		return err
	}
	if server.OwnerID == userID {
		return fmt.Errorf("%w: the owner cannot leave their own server", pkg.ErrBadRequest)
	}

	if err := s.servers.RemoveMember(ctx, serverID, userID); err != nil {
		return err
	}

	s.publisher.BroadcastToAll(ws.Event{
		Op:   ws.OpMemberLeave,
		Data: ws.MemberData{ServerID: serverID, UserID: userID},
	})
	return nil
}

func (s *serverService) SetIcon(ctx context.Context, id, callerID int64, file multipart.File, header *multipart.FileHeader) (*models.Server, error) {
	return s.setImage(ctx, id, callerID, file, header, true)
}

func (s *serverService) SetBanner(ctx context.Context, id, callerID int64, file multipart.File, header *multipart.FileHeader) (*models.Server, error) {
	return s.setImage(ctx, id, callerID, file, header, false)
}

// setImage, icon/banner upload'ının ortak akışı: sahiplik kontrolü, yeni
// dosyanın kaydı, DB güncellemesi, eski dosyanın temizliği.
func (s *serverService) setImage(ctx context.Context, id, callerID int64, file multipart.File, header *multipart.FileHeader, isIcon bool) (*models.Server, error) {
	server, err := s.servers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if server.OwnerID != callerID {
		return nil, fmt.Errorf("%w: only the server owner can change its images", pkg.ErrForbidden)
	}

	var newURL string
	if isIcon {
		newURL, err = s.images.SaveIcon(file, header)
	} else {
		newURL, err = s.images.SaveBanner(file, header)
	}
	if err != nil {
		return nil, err
	}

	var oldURL *string
	if isIcon {
		oldURL = server.IconURL
		server.IconURL = &newURL
	} else {
		oldURL = server.BannerURL
		server.BannerURL = &newURL
	}

	if err := s.servers.Update(ctx, server); err != nil {
		s.images.Remove(newURL)
		return nil, err
	}

	if oldURL != nil {
		s.images.Remove(*oldURL)
	}

	channels, err := s.channels.GetByServer(ctx, id)
	if err != nil {
		return nil, err
	}
	server.Channels = nonNilChannels(channels)

	s.publisher.BroadcastToAll(ws.Event{Op: ws.OpServerUpdate, Data: server})
	return server, nil
}
