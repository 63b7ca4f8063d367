// Package ratelimit, IP başına sliding-window rate limiting sağlar.
//
// Login ve register gibi brute-force hedefi endpoint'lerde kullanılır:
// bir IP, pencere süresi içinde limitten fazla deneme yapamaz.
package ratelimit

import (
	"net"
	"net/http"
	"sync"
	"time"
)

// Limiter, IP başına istek sayısını sliding window ile sınırlar.
type Limiter struct {
	mu       sync.Mutex
	attempts map[string][]time.Time // IP → deneme zamanları
	limit    int
	window   time.Duration
}

// NewLimiter, yeni bir Limiter oluşturur.
// Örn: NewLimiter(5, time.Minute) → IP başına dakikada 5 deneme.
func NewLimiter(limit int, window time.Duration) *Limiter {
	l := &Limiter{
		attempts: make(map[string][]time.Time),
		limit:    limit,
		window:   window,
	}

	// Eski kayıtları periyodik temizle — map sınırsız büyümesin.
	go l.cleanupLoop()

	return l
}

// Allow, verilen IP'nin yeni bir deneme yapıp yapamayacağını kontrol eder.
// İzin veriliyorsa denemeyi kaydeder ve true döner.
func (l *Limiter) Allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	cutoff := now.Add(-l.window)

	// Pencere dışına düşen denemeleri at.
	valid := l.attempts[ip][:0]
	for _, t := range l.attempts[ip] {
		if t.After(cutoff) {
			valid = append(valid, t)
		}
	}

	if len(valid) >= l.limit {
		l.attempts[ip] = valid
		return false
	}

	l.attempts[ip] = append(valid, now)
	return true
}

// cleanupLoop, tamamen boşalmış IP kayıtlarını periyodik siler.
func (l *Limiter) cleanupLoop() {
	ticker := time.NewTicker(l.window)
	defer ticker.Stop()

	for range ticker.C {
		l.mu.Lock()
		cutoff := time.Now().Add(-l.window)
		for ip, times := range l.attempts {
			active := false
			for _, t := range times {
				if t.After(cutoff) {
					active = true
					break
				}
			}
			if !active {
				delete(l.attempts, ip)
			}
		}
		l.mu.Unlock()
	}
}

// ClientIP, istekten client IP'sini çıkarır.
// RemoteAddr "ip:port" formatındadır; sadece IP kısmı alınır.
func ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
