// Package repository, veri erişim katmanını barındırır.
//
// Repository Pattern: her aggregate için bir interface + SQLite
// implementasyonu. Service katmanı interface'e bağımlıdır — testlerde
// in-memory fake, production'da SQLite geçilir.
package repository

import (
	"context"

	"github.com/akinalp/topluluk/models"
)

// UserRepository, kullanıcı veritabanı işlemleri için interface.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}
