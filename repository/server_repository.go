// Package repository — ServerRepository interface.
//
// Sunucu CRUD'u + üyelik (server_members) operasyonları + listing
// pipeline'ının ihtiyaç duyduğu toplu okuma metodları.
package repository

import (
	"context"

	"github.com/akinalp/topluluk/models"
)

// ServerRepository, sunucu veritabanı işlemleri için interface.
type ServerRepository interface {
	Create(ctx context.Context, server *models.Server) error
	GetByID(ctx context.Context, id int64) (*models.Server, error)

	// GetAll, tüm sunucuları kategori adıyla JOIN'lenmiş halde, id'ye göre
	// artan sırada döner. Listing pipeline'ının başlangıç snapshot'ıdır.
	GetAll(ctx context.Context) ([]models.Server, error)

	Update(ctx context.Context, server *models.Server) error
	Delete(ctx context.Context, id int64) error

	// ─── Üyelik ───

	AddMember(ctx context.Context, serverID, userID int64) error
	RemoveMember(ctx context.Context, serverID, userID int64) error
	IsMember(ctx context.Context, serverID, userID int64) (bool, error)

	// GetMemberServerIDs, kullanıcının üye olduğu sunucu id'lerini döner.
	GetMemberServerIDs(ctx context.Context, userID int64) ([]int64, error)

	// GetMemberCounts, sunucu başına üye sayısını döner.
	// Üyesi olmayan sunucular map'te bulunmaz — okuyan taraf sıfır sayar.
	GetMemberCounts(ctx context.Context) (map[int64]int64, error)
}
