// Package handlers, HTTP isteklerini karşılayan ince katmandır.
//
// Handler'lar iş mantığı İÇERMEZ: isteği parse eder, service'i çağırır,
// sonucu pkg.JSON/pkg.Error ile serialize eder. Tüm kurallar service
// katmanındadır — handler değişse de kurallar değişmez.
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/akinalp/topluluk/pkg"
)

// decodeJSON, request body'sini hedef struct'a çözer.
// Bozuk JSON domain-level bad request hatasına çevrilir — handler'lar
// pkg.Error(w, err) ile doğrudan 400 dönebilir.
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON body", pkg.ErrBadRequest)
	}
	return nil
}

// pathID, {id} path parametresini int64 olarak döner.
func pathID(r *http.Request, name string) (int64, error) {
	raw := r.PathValue(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid %s %q", pkg.ErrBadRequest, name, raw)
	}
	return id, nil
}
