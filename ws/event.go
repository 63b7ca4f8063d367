// Package ws, WebSocket bağlantı yönetimi ve gerçek zamanlı event dağıtımını sağlar.
//
// Mimari:
// - Hub: Tüm bağlantıları yöneten merkezi yapı (Observer pattern)
// - Client: Her WebSocket bağlantısını temsil eder
// - Event: Client-server arası iletilen mesaj formatı
//
// Event akışı:
// 1. Bir entity değişir → HTTP isteği → Service → DB kayıt
// 2. Service, Hub'ın BroadcastToAll metodunu çağırır
// 3. Hub, event'i tüm bağlı client'lara iletir
// 4. Her client'ın WritePump'ı event'i WebSocket'e yazar
package ws

// Event, WebSocket üzerinden iletilen bir mesajı temsil eder.
//
// Op (operation): Event türü — "server_create", "heartbeat" vb.
// Data: Event'e özgü payload.
// Seq: Her outbound event'e verilen artan sayı — frontend eksik event
// tespiti için takip eder (seq 5'ten sonra 7 gelirse 6 kaybolmuştur).
type Event struct {
	Op   string `json:"op"`
	Data any    `json:"d,omitempty"`
	Seq  int64  `json:"seq,omitempty"`
}

// Client → Server operasyonları
const (
	OpHeartbeat = "heartbeat" // Client her 30sn'de gönderir — "hâlâ bağlıyım" sinyali
)

// Server → Client operasyonları
const (
	OpHeartbeatAck = "heartbeat_ack" // Heartbeat'e yanıt

	OpCategoryCreate = "category_create"
	OpCategoryUpdate = "category_update"
	OpCategoryDelete = "category_delete"

	OpServerCreate = "server_create"
	OpServerUpdate = "server_update"
	OpServerDelete = "server_delete"

	OpChannelCreate = "channel_create"
	OpChannelUpdate = "channel_update"
	OpChannelDelete = "channel_delete"

	OpMemberJoin  = "member_join"  // Kullanıcı bir sunucuya katıldı
	OpMemberLeave = "member_leave" // Kullanıcı bir sunucudan ayrıldı
)

// MemberData, member_join/member_leave event payload'ı.
type MemberData struct {
	ServerID int64 `json:"server_id"`
	UserID   int64 `json:"user_id"`
}
