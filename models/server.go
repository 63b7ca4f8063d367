// Package models — Server domain modeli.
//
// Server, bir kullanıcının sahip olduğu, tek bir kategoriye ait,
// kanallar ve üyeler barındıran isimli konteynerdir.
package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Server, DB'deki "servers" tablosunun Go karşılığı.
//
// CategoryName DB'den JOIN ile okunur ama serialize EDİLMEZ (json:"-") —
// listing pipeline'ının kategori filtresi için taşınır, API kontratında
// sadece category_id vardır.
//
// Channels her listing yanıtında gömülü gelir (one-to-many expansion).
//
// NumMembers sorgu zamanı hesaplanan bir annotation'dır, tabloda kolonu
// yoktur. *int64 + omitempty: with_num_members istenmediyse alan yanıtta
// HİÇ bulunmaz (null veya 0 değil — tamamen yok).
type Server struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	OwnerID      int64     `json:"owner_id"`
	CategoryID   int64     `json:"category_id"`
	CategoryName string    `json:"-"`
	Description  *string   `json:"description"`
	BannerURL    *string   `json:"banner_url"`
	IconURL      *string   `json:"icon_url"`
	Channels     []Channel `json:"channels"`
	NumMembers   *int64    `json:"num_members,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// CreateServerRequest, yeni sunucu oluşturma isteği.
type CreateServerRequest struct {
	Name        string `json:"name"`
	CategoryID  int64  `json:"category_id"`
	Description string `json:"description"`
}

// Validate, CreateServerRequest kontrolü.
func (r *CreateServerRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	nameLen := utf8.RuneCountInString(r.Name)
	if nameLen < 1 || nameLen > 100 {
		return fmt.Errorf("server name must be between 1 and 100 characters")
	}

	if r.CategoryID <= 0 {
		return fmt.Errorf("category_id is required")
	}

	r.Description = strings.TrimSpace(r.Description)
	if utf8.RuneCountInString(r.Description) > 250 {
		return fmt.Errorf("server description must be at most 250 characters")
	}

	return nil
}

// UpdateServerRequest, sunucu güncelleme isteği.
// nil field'lar değiştirilmez (partial update). banner_url/icon_url
// upload endpoint'leri tarafından güncellenir, buradan değil.
type UpdateServerRequest struct {
	Name        *string `json:"name"`
	CategoryID  *int64  `json:"category_id"`
	Description *string `json:"description"`
}

// Validate, UpdateServerRequest kontrolü.
func (r *UpdateServerRequest) Validate() error {
	if r.Name != nil {
		*r.Name = strings.TrimSpace(*r.Name)
		nameLen := utf8.RuneCountInString(*r.Name)
		if nameLen < 1 || nameLen > 100 {
			return fmt.Errorf("server name must be between 1 and 100 characters")
		}
	}

	if r.CategoryID != nil && *r.CategoryID <= 0 {
		return fmt.Errorf("category_id must be positive")
	}

	if r.Description != nil {
		*r.Description = strings.TrimSpace(*r.Description)
		if utf8.RuneCountInString(*r.Description) > 250 {
			return fmt.Errorf("server description must be at most 250 characters")
		}
	}

	return nil
}
