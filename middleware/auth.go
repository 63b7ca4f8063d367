// Package middleware, HTTP handler'ları sarmalayan ara katmanları barındırır.
//
// Middleware pattern: http.Handler alıp http.Handler dönen fonksiyonlar.
// İstek asıl handler'a ulaşmadan önce kimlik doğrulama gibi ortak işler
// burada yapılır.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/akinalp/topluluk/models"
	"github.com/akinalp/topluluk/pkg"
	"github.com/akinalp/topluluk/services"
)

// contextKey, context value çakışmalarını önlemek için paket-özel tip.
// string kullansaydık başka bir paketin "claims" key'i ile çakışabilirdik.
type contextKey string

const claimsKey contextKey = "claims"

// ClaimsFromContext, request context'ine yerleştirilmiş token claims'i döner.
// Require arkasındaki handler'larda her zaman bulunur; Optional arkasında
// anonim isteklerde ok=false döner.
func ClaimsFromContext(ctx context.Context) (*models.TokenClaims, bool) {
	claims, ok := ctx.Value(claimsKey).(*models.TokenClaims)
	return claims, ok
}

// CallerID, context'teki kullanıcı id'sini döner; anonim istekte 0.
// Service katmanı 0'ı "kimliksiz çağıran" olarak yorumlar.
func CallerID(ctx context.Context) int64 {
	if claims, ok := ClaimsFromContext(ctx); ok {
		return claims.UserID
	}
	return 0
}

// AuthMiddleware, JWT tabanlı kimlik doğrulama middleware'lerini üretir.
type AuthMiddleware struct {
	auth services.AuthService
}

// NewAuthMiddleware, yeni bir AuthMiddleware oluşturur.
func NewAuthMiddleware(auth services.AuthService) *AuthMiddleware {
	return &AuthMiddleware{auth: auth}
}

// Require, geçerli bir access token zorunlu kılar.
// Token yoksa veya geçersizse istek 401 ile kesilir, handler hiç çalışmaz.
func (m *AuthMiddleware) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			pkg.Error(w, pkg.ErrAuthRequired)
			return
		}

		claims, err := m.auth.ValidateAccessToken(token)
		if err != nil {
			pkg.Error(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Optional, token varsa doğrular ve claims'i context'e koyar; yoksa isteği
// anonim olarak geçirir. Herkese açık ama kimliğe duyarlı endpoint'ler için
// (sunucu listesi: by_user filtresi kimlik ister, listenin kendisi istemez).
//
// Dikkat: GEÇERSİZ token yine 401'dir — "token gönderdim ama bozuktu"
// durumu sessizce anonime düşürülmez, istemciye bildirilir.
func (m *AuthMiddleware) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := m.auth.ValidateAccessToken(token)
		if err != nil {
			pkg.Error(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// bearerToken, Authorization header'ından Bearer token'ı çıkarır.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
