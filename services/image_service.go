package services

import (
	"fmt"
	"image"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/akinalp/topluluk/pkg"

	// image.DecodeConfig'in format tanıması için decoder'lar register edilir.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// maxIconDimension: İkonlar için kenar başına piksel limiti.
// Banner'lar serbesttir; ikonlar küçük gösterildiği için dev dosyaları
// daha upload anında reddederiz.
const maxIconDimension = 200

// allowedImageExtensions: Kabul edilen dosya uzantıları (küçük harf).
var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".svg":  true,
}

// ImageService, ikon/banner resimlerinin doğrulanması, diske kaydı ve
// temizliği için interface.
type ImageService interface {
	// SaveIcon, ikonu doğrulayıp kaydeder. Uzantı kontrolüne ek olarak
	// görüntü boyutları da probe edilir — 200×200'den büyükler reddedilir.
	SaveIcon(file multipart.File, header *multipart.FileHeader) (string, error)

	// SaveBanner, banner'ı doğrulayıp kaydeder. Boyut limiti yoktur.
	SaveBanner(file multipart.File, header *multipart.FileHeader) (string, error)

	// Remove, daha önce kaydedilmiş bir dosyayı URL'inden bulup siler.
	// Eski resmin değiştirilmesi/silinmesi best-effort'tur: dosya silinemese
	// bile kayıt işlemi başarısız olmaz, sadece loglanır.
	Remove(fileURL string)
}

type imageService struct {
	uploadDir string
	maxSize   int64
}

// NewImageService, yeni bir ImageService oluşturur.
func NewImageService(uploadDir string, maxSize int64) ImageService {
	return &imageService{
		uploadDir: uploadDir,
		maxSize:   maxSize,
	}
}

func (s *imageService) SaveIcon(file multipart.File, header *multipart.FileHeader) (string, error) {
	ext, err := s.validateUpload(header)
	if err != nil {
		return "", err
	}

	// Boyut probe'u: sadece header'ları okur, tüm resmi decode etmez.
	// SVG'nin register'lı decoder'ı yok — ikon olarak reddedilir
	// (vektör formatın "piksel boyutu" doğrulanamaz).
	cfg, _, err := image.DecodeConfig(file)
	if err != nil {
		return "", fmt.Errorf("%w: file is not a decodable image", pkg.ErrBadRequest)
	}
	if cfg.Width > maxIconDimension || cfg.Height > maxIconDimension {
		return "", fmt.Errorf("%w: icon must be at most %dx%d pixels (got %dx%d)",
			pkg.ErrBadRequest, maxIconDimension, maxIconDimension, cfg.Width, cfg.Height)
	}

	// DecodeConfig dosya imlecini ilerletti — baştan yazmak için geri sar.
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("failed to rewind upload: %w", err)
	}

	return s.store(file, header.Filename, ext)
}

func (s *imageService) SaveBanner(file multipart.File, header *multipart.FileHeader) (string, error) {
	ext, err := s.validateUpload(header)
	if err != nil {
		return "", err
	}
	return s.store(file, header.Filename, ext)
}

func (s *imageService) Remove(fileURL string) {
	if fileURL == "" {
		return
	}

	// URL → disk adı. Base ile path traversal engellenir:
	// "/api/uploads/../../etc/passwd" → "passwd" (uploads dizininde aranır).
	name := filepath.Base(fileURL)
	if name == "." || name == "/" {
		return
	}

	path := filepath.Join(s.uploadDir, name)
	if err := os.Remove(path); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("[image] failed to remove %s: %v", path, err)
		}
		return
	}
	log.Printf("[image] removed %s", name)
}

// validateUpload, boyut ve uzantı kontrollerini yapar; geçerliyse
// normalize edilmiş (küçük harf) uzantıyı döner.
func (s *imageService) validateUpload(header *multipart.FileHeader) (string, error) {
	if header.Size > s.maxSize {
		return "", fmt.Errorf("%w: file exceeds maximum size of %d bytes", pkg.ErrBadRequest, s.maxSize)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedImageExtensions[ext] {
		return "", fmt.Errorf("%w: file extension %q is not allowed", pkg.ErrBadRequest, ext)
	}

	return ext, nil
}

// store, dosyayı uuid'li benzersiz bir isimle diske yazar ve public URL döner.
// Orijinal dosya adı (sanitize edilerek) isimde korunur — debug ederken
// hangi dosyanın ne olduğu bellidir.
func (s *imageService) store(file multipart.File, originalName, ext string) (string, error) {
	base := sanitizeFilename(strings.TrimSuffix(filepath.Base(originalName), filepath.Ext(originalName)))
	diskName := uuid.NewString() + "_" + base + ext

	path := filepath.Join(s.uploadDir, diskName)
	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		// Yarım yazılmış dosyayı bırakma.
		os.Remove(path)
		return "", fmt.Errorf("failed to write upload file: %w", err)
	}

	return "/api/uploads/" + diskName, nil
}

// sanitizeFilename, dosya adından path separator'ları ve tehlikeli
// karakterleri ayıklar. Boş kalırsa "file" kullanılır.
func sanitizeFilename(name string) string {
	var b strings.Builder
	for _, ch := range name {
		switch {
		case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z', ch >= '0' && ch <= '9':
			b.WriteRune(ch)
		case ch == '-' || ch == '_' || ch == '.':
			b.WriteRune(ch)
		default:
			b.WriteRune('_')
		}
	}
	out := strings.Trim(b.String(), "._")
	if out == "" {
		return "file"
	}
	if len(out) > 64 {
		out = out[:64]
	}
	return out
}
