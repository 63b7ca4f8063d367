package services

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"

	"github.com/akinalp/topluluk/models"
	"github.com/akinalp/topluluk/pkg"
	"github.com/akinalp/topluluk/repository"
	"github.com/akinalp/topluluk/ws"
)

// CategoryService, kategori iş mantığı için interface.
// Mutasyonlar kimlik doğrulaması gerektirir (route seviyesinde); kategorilerin
// sahibi yoktur, doğrulanmış her kullanıcı yönetebilir.
type CategoryService interface {
	GetAll(ctx context.Context) ([]models.Category, error)
	GetByID(ctx context.Context, id int64) (*models.Category, error)
	Create(ctx context.Context, req *models.CreateCategoryRequest) (*models.Category, error)
	Update(ctx context.Context, id int64, req *models.UpdateCategoryRequest) (*models.Category, error)
	Delete(ctx context.Context, id int64) error

	// SetIcon, kategorinin ikonunu yükler; varsa eski ikon dosyası silinir.
	SetIcon(ctx context.Context, id int64, file multipart.File, header *multipart.FileHeader) (*models.Category, error)
}

type categoryService struct {
	categories repository.CategoryRepository
	images     ImageService
	publisher  ws.EventPublisher
}

// NewCategoryService, yeni bir CategoryService oluşturur.
func NewCategoryService(categories repository.CategoryRepository, images ImageService, publisher ws.EventPublisher) CategoryService {
	return &categoryService{
		categories: categories,
		images:     images,
		publisher:  publisher,
	}
}

func (s *categoryService) GetAll(ctx context.Context) ([]models.Category, error) {
	categories, err := s.categories.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []models.Category{}
	}
	return categories, nil
}

func (s *categoryService) GetByID(ctx context.Context, id int64) (*models.Category, error) {
	return s.categories.GetByID(ctx, id)
}

func (s *categoryService) Create(ctx context.Context, req *models.CreateCategoryRequest) (*models.Category, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	category := &models.Category{
		Name: req.Name,
	}
	if req.Description != "" {
		category.Description = &req.Description
	}

	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}

	log.Printf("[category] created: %s (id=%d)", category.Name, category.ID)
	s.publisher.BroadcastToAll(ws.Event{Op: ws.OpCategoryCreate, Data: category})
	return category, nil
}

func (s *categoryService) Update(ctx context.Context, id int64, req *models.UpdateCategoryRequest) (*models.Category, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Description != nil {
		category.Description = req.Description
	}

	if err := s.categories.Update(ctx, category); err != nil {
		return nil, err
	}

	s.publisher.BroadcastToAll(ws.Event{Op: ws.OpCategoryUpdate, Data: category})
	return category, nil
}

func (s *categoryService) Delete(ctx context.Context, id int64) error {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.categories.Delete(ctx, id); err != nil {
		return err
	}

	// DB kaydı gitti — diskteki ikon dosyası da gitsin.
	if category.IconURL != nil {
		s.images.Remove(*category.IconURL)
	}

	log.Printf("[category] deleted: %s (id=%d)", category.Name, id)
	s.publisher.BroadcastToAll(ws.Event{Op: ws.OpCategoryDelete, Data: map[string]int64{"id": id}})
	return nil
}

func (s *categoryService) SetIcon(ctx context.Context, id int64, file multipart.File, header *multipart.FileHeader) (*models.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	iconURL, err := s.images.SaveIcon(file, header)
	if err != nil {
		return nil, err
	}

	oldIcon := category.IconURL
	category.IconURL = &iconURL

	if err := s.categories.Update(ctx, category); err != nil {
		// DB güncellenemedi — yeni yüklenen dosyayı öksüz bırakma.
		s.images.Remove(iconURL)
		return nil, err
	}

	// Yeni ikon kaydedildi — eskisi artık referanssız, sil.
	if oldIcon != nil {
		s.images.Remove(*oldIcon)
	}

	s.publisher.BroadcastToAll(ws.Event{Op: ws.OpCategoryUpdate, Data: category})
	return category, nil
}
