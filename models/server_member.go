// Package models — ServerMember domain modeli.
//
// ServerMember, kullanıcı ↔ sunucu üyelik ilişkisini temsil eder.
// Saf many-to-many ilişki — ek attribute taşımaz (joined_at hariç).
// DB'deki "server_members" tablosunun Go karşılığıdır.
package models

import "time"

// ServerMember, bir kullanıcının bir sunucuya üyeliğini temsil eder.
type ServerMember struct {
	ServerID int64     `json:"server_id"`
	UserID   int64     `json:"user_id"`
	JoinedAt time.Time `json:"joined_at"`
}
