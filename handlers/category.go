package handlers

import (
	"net/http"

	"github.com/akinalp/topluluk/models"
	"github.com/akinalp/topluluk/pkg"
	"github.com/akinalp/topluluk/services"
)

// CategoryHandler, kategori endpoint'lerini karşılar.
type CategoryHandler struct {
	categoryService services.CategoryService
	maxUploadSize   int64
}

// NewCategoryHandler, yeni bir CategoryHandler oluşturur.
func NewCategoryHandler(categoryService services.CategoryService, maxUploadSize int64) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
		maxUploadSize:   maxUploadSize,
	}
}

// List GET /api/categories
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categoryService.GetAll(r.Context())
	if err != nil {
		pkg.Error(w, err)
		return
	}
	pkg.JSON(w, http.StatusOK, categories)
}

// Get GET /api/categories/{id}
func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		pkg.Error(w, err)
		return
	}

	category, err := h.categoryService.GetByID(r.Context(), id)
	if err != nil {
		pkg.Error(w, err)
		return
	}
	pkg.JSON(w, http.StatusOK, category)
}

// Create POST /api/categories
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		pkg.Error(w, err)
		return
	}

	category, err := h.categoryService.Create(r.Context(), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}
	pkg.JSON(w, http.StatusCreated, category)
}

// Update PUT /api/categories/{id}
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		pkg.Error(w, err)
		return
	}

	var req models.UpdateCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		pkg.Error(w, err)
		return
	}

	category, err := h.categoryService.Update(r.Context(), id, &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}
	pkg.JSON(w, http.StatusOK, category)
}

// Delete DELETE /api/categories/{id}
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		pkg.Error(w, err)
		return
	}

	if err := h.categoryService.Delete(r.Context(), id); err != nil {
		pkg.Error(w, err)
		return
	}
	pkg.JSON(w, http.StatusOK, map[string]string{"message": "category deleted"})
}

// UploadIcon POST /api/categories/{id}/icon
// multipart/form-data; dosya "icon" form field'ında beklenir.
func (h *CategoryHandler) UploadIcon(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		pkg.Error(w, err)
		return
	}

	// Boyut limiti parse AŞAMASINDA uygulanır — dev bir body diski/RAM'i
	// doldurmadan reddedilir.
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid or too large multipart form")
		return
	}

	file, header, err := r.FormFile("icon")
	if err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "missing icon file")
		return
	}
	defer file.Close()

	category, err := h.categoryService.SetIcon(r.Context(), id, file, header)
	if err != nil {
		pkg.Error(w, err)
		return
	}
	pkg.JSON(w, http.StatusOK, category)
}
