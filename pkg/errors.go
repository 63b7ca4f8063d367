// Package pkg, projede paylaşılan utility'leri barındırır.
// Bu dosya domain-level error tanımlarını içerir.
//
// Go'da error'lar basit değerlerdir (string taşıyan struct'lar).
// errors.New() ile sabit error değişkenleri tanımlarız.
// Böylece error karşılaştırması string yerine referans ile yapılır:
//
//	if errors.Is(err, pkg.ErrNotFound) { ... }
//
// Bu, typo'ya açık string karşılaştırmasından çok daha güvenlidir.
package pkg

import (
	"errors"
	"fmt"
)

// Domain-level error'lar.
// Handler katmanı bu error'ları HTTP status code'larına map'ler.
// Service katmanı bunları döner, handler yakalar.
var (
	ErrNotFound      = errors.New("not found")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrAlreadyExists = errors.New("already exists")
	ErrBadRequest    = errors.New("bad request")
	ErrInternal      = errors.New("internal error")
)

// ErrAuthRequired, kimlik gerektiren bir filtre (by_user=true) anonim
// çağrıldığında döner. ErrUnauthorized'ı sarar — handler katmanındaki
// status mapping (401) değişmeden çalışır.
var ErrAuthRequired = fmt.Errorf("%w: authentication required", ErrUnauthorized)

// InvalidServerIDError, by_server_id parametresi mevcut olmayan veya
// sayı olarak parse edilemeyen bir sunucuyu işaret ettiğinde döner.
//
// Neden sentinel değil struct?
// Hata mesajı istenen id'yi isimlendirmek zorunda — sabit bir errors.New
// değeri mesaj taşıyamaz. Unwrap() ErrBadRequest döner, böylece
// errors.Is tabanlı 400 mapping'i korunur.
type InvalidServerIDError struct {
	ID string // istekle gelen ham by_server_id değeri
}

func (e *InvalidServerIDError) Error() string {
	return fmt.Sprintf("server with id %s does not exist", e.ID)
}

func (e *InvalidServerIDError) Unwrap() error {
	return ErrBadRequest
}
