// Package models — Category domain modeli.
//
// Category, sunucuları tür/tema bazında sınıflandıran bağımsız bir etikettir
// ("gaming", "music" gibi). Bir kategori sıfır veya daha fazla sunucuya
// sahip olabilir; kategori silinince sunucuları da silinir (cascade).
package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Category, DB'deki "categories" tablosunun Go karşılığı.
type Category struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	IconURL     *string   `json:"icon_url"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateCategoryRequest, yeni kategori oluşturma isteği.
type CreateCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Validate, CreateCategoryRequest kontrolü.
func (r *CreateCategoryRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	nameLen := utf8.RuneCountInString(r.Name)
	if nameLen < 1 || nameLen > 100 {
		return fmt.Errorf("category name must be between 1 and 100 characters")
	}

	r.Description = strings.TrimSpace(r.Description)
	if utf8.RuneCountInString(r.Description) > 500 {
		return fmt.Errorf("category description must be at most 500 characters")
	}

	return nil
}

// UpdateCategoryRequest, kategori güncelleme isteği.
// Pointer (*string) kullanılır — nil ise o alan güncellenmez (partial update).
type UpdateCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// Validate, UpdateCategoryRequest kontrolü.
func (r *UpdateCategoryRequest) Validate() error {
	if r.Name != nil {
		*r.Name = strings.TrimSpace(*r.Name)
		nameLen := utf8.RuneCountInString(*r.Name)
		if nameLen < 1 || nameLen > 100 {
			return fmt.Errorf("category name must be between 1 and 100 characters")
		}
	}

	if r.Description != nil {
		*r.Description = strings.TrimSpace(*r.Description)
		if utf8.RuneCountInString(*r.Description) > 500 {
			return fmt.Errorf("category description must be at most 500 characters")
		}
	}

	return nil
}
