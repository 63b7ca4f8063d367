package repository

import (
	"context"

	"github.com/akinalp/topluluk/models"
)

// CategoryRepository, kategori veritabanı işlemleri için interface.
type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	GetByID(ctx context.Context, id int64) (*models.Category, error)
	GetAll(ctx context.Context) ([]models.Category, error)
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id int64) error
}
