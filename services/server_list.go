// Package services — sunucu listeleme pipeline'ı.
//
// Listeleme, sabit sıralı saf (pure) filtre aşamalarından oluşur.
// Her aşama bir snapshot alır, YENİ bir snapshot döner — in-place mutation
// yok. Böylece aşama sıralamasına bağımlı davranışlar (özellikle qty ↔
// by_server_id etkileşimi) açıkça görünür ve tek tek test edilebilir.
//
// Sabit sıra:
//  1. category     → kategori adına göre filtre (case-sensitive eşitlik)
//  2. by_user      → çağıranın üye olduğu sunucular (kimlik ZORUNLU)
//  3. with_num_members → üye sayısı annotation'ı (filtrelemez, sadece ekler)
//  4. qty          → ilk N kayda truncate
//  5. by_server_id → tek sunucuya filtre (bulunamazsa hata)
//
// qty'nin by_server_id'den ÖNCE çalışması bilinçli olarak korunur:
// geçerli bir id, truncate penceresinin dışında kaldıysa "not found"
// hatası üretir. Uyumluluk kontratının parçasıdır — yeniden sıralamayın.
package services

import (
	"net/url"
	"strconv"

	"github.com/akinalp/topluluk/models"
	"github.com/akinalp/topluluk/pkg"
)

// ServerListQuery, listing endpoint'inin opsiyonel filtre girdileri.
// Sıfır değerleri "filtre yok" anlamına gelir.
type ServerListQuery struct {
	Category       string // boş = filtre yok
	Qty            int    // 0 = limit yok
	ByUser         bool
	WithNumMembers bool
	ByServerID     string // ham query değeri; parse hatası da kontratın parçası
}

// ParseServerListQuery, query string'den ServerListQuery üretir.
//
// Parsing bilinçli olarak toleranslıdır:
//   - Boolean flag'leri SADECE birebir "true" string'i aktive eder;
//     "True", "1", "yes" vb. false sayılır.
//   - Sayı olmayan veya pozitif olmayan qty sessizce yok sayılır.
//
// by_server_id ise ham haliyle taşınır — geçersiz değer burada değil,
// pipeline'da InvalidServerIDError üretir (parse hatası ile "yok"
// hatası aynı tür olmak zorunda).
func ParseServerListQuery(params url.Values) ServerListQuery {
	q := ServerListQuery{
		Category:       params.Get("category"),
		ByUser:         params.Get("by_user") == "true",
		WithNumMembers: params.Get("with_num_members") == "true",
		ByServerID:     params.Get("by_server_id"),
	}

	if raw := params.Get("qty"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			q.Qty = n
		}
	}

	return q
}

// ─── Pipeline aşamaları ───
//
// Hepsi saf fonksiyondur: (snapshot, parametre) → yeni snapshot.
// Girdi slice'ına asla yazmazlar.

// filterByCategory, kategori adı birebir (case-sensitive) eşleşen
// sunucuları döner.
func filterByCategory(servers []models.Server, name string) []models.Server {
	out := make([]models.Server, 0, len(servers))
	for _, s := range servers {
		if s.CategoryName == name {
			out = append(out, s)
		}
	}
	return out
}

// filterByMembership, id'si memberOf set'inde bulunan sunucuları döner.
func filterByMembership(servers []models.Server, memberOf map[int64]bool) []models.Server {
	out := make([]models.Server, 0, len(servers))
	for _, s := range servers {
		if memberOf[s.ID] {
			out = append(out, s)
		}
	}
	return out
}

// annotateMemberCounts, her sunucuya üye sayısını ekler. Filtrelemez.
// counts map'inde olmayan sunucu sıfır üyelidir — annotation yine yazılır
// (0 da geçerli bir sayımdır; alanın YOKLUĞU sadece flag kapalıyken olur).
func annotateMemberCounts(servers []models.Server, counts map[int64]int64) []models.Server {
	out := make([]models.Server, len(servers))
	for i, s := range servers {
		n := counts[s.ID]
		s.NumMembers = &n
		out[i] = s
	}
	return out
}

// truncate, snapshot'ı mevcut sıralamadaki ilk qty kayda indirir.
func truncate(servers []models.Server, qty int) []models.Server {
	if qty >= len(servers) {
		return servers
	}
	return servers[:qty:qty]
}

// filterByServerID, snapshot'ı verilen id'li tek kayda indirir.
//
// raw sayı olarak parse edilemezse VEYA (muhtemelen truncate edilmiş)
// snapshot'ta eşleşme yoksa InvalidServerIDError döner — iki durum da
// aynı hata türüdür ve istenen id'yi isimlendirir.
func filterByServerID(servers []models.Server, raw string) ([]models.Server, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, &pkg.InvalidServerIDError{ID: raw}
	}

	for _, s := range servers {
		if s.ID == id {
			return []models.Server{s}, nil
		}
	}

	return nil, &pkg.InvalidServerIDError{ID: raw}
}
