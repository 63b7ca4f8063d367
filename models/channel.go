// Package models — Channel domain modeli.
//
// Channel, bir sunucunun isimli alt alanıdır. Kanal adı HER yazımda
// küçük harfe çevrilir — isim karşılaştırmaları ve benzersizlik
// beklentileri bu invariant'a dayanır, o yüzden normalizasyon request
// validation'ın içinde yaşar: yazma yolu onu atlayamaz.
package models

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// Channel, DB'deki "channels" tablosunun Go karşılığı.
type Channel struct {
	ID        int64     `json:"id"`
	ServerID  int64     `json:"server_id"`
	OwnerID   int64     `json:"owner_id"`
	Name      string    `json:"name"`
	Topic     string    `json:"topic"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateChannelRequest, yeni kanal oluşturma isteği.
type CreateChannelRequest struct {
	Name  string `json:"name"`
	Topic string `json:"topic"`
}

// Validate, CreateChannelRequest kontrolü.
// Name burada küçük harfe normalize edilir.
func (r *CreateChannelRequest) Validate() error {
	r.Name = strings.ToLower(strings.TrimSpace(r.Name))
	nameLen := utf8.RuneCountInString(r.Name)
	if nameLen < 1 || nameLen > 100 {
		return fmt.Errorf("channel name must be between 1 and 100 characters")
	}

	for _, ch := range r.Name {
		if !isValidChannelNameChar(ch) {
			return fmt.Errorf("channel name contains invalid characters")
		}
	}

	r.Topic = strings.TrimSpace(r.Topic)
	if utf8.RuneCountInString(r.Topic) > 100 {
		return fmt.Errorf("channel topic must be at most 100 characters")
	}

	return nil
}

// UpdateChannelRequest, kanal güncelleme isteği.
// Pointer (*string) kullanılır — nil ise o alan güncellenmez.
type UpdateChannelRequest struct {
	Name  *string `json:"name"`
	Topic *string `json:"topic"`
}

// Validate, UpdateChannelRequest kontrolü.
// Name güncelleniyorsa yine küçük harfe normalize edilir.
func (r *UpdateChannelRequest) Validate() error {
	if r.Name != nil {
		*r.Name = strings.ToLower(strings.TrimSpace(*r.Name))
		nameLen := utf8.RuneCountInString(*r.Name)
		if nameLen < 1 || nameLen > 100 {
			return fmt.Errorf("channel name must be between 1 and 100 characters")
		}
		for _, ch := range *r.Name {
			if !isValidChannelNameChar(ch) {
				return fmt.Errorf("channel name contains invalid characters")
			}
		}
	}

	if r.Topic != nil {
		*r.Topic = strings.TrimSpace(*r.Topic)
		if utf8.RuneCountInString(*r.Topic) > 100 {
			return fmt.Errorf("channel topic must be at most 100 characters")
		}
	}

	return nil
}

// isValidChannelNameChar, kanal adında izin verilen karakterleri kontrol eder.
// Unicode harf/rakam, boşluk, tire, alt çizgi kabul edilir.
// unicode.IsLetter tüm dillerdeki harfleri kapsar (ş/ç/ğ/ı/ö/ü dahil).
func isValidChannelNameChar(ch rune) bool {
	return unicode.IsLetter(ch) ||
		unicode.IsDigit(ch) ||
		ch == '-' || ch == '_' || ch == ' '
}
