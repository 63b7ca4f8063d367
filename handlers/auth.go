package handlers

import (
	"net/http"

	"github.com/akinalp/topluluk/middleware"
	"github.com/akinalp/topluluk/models"
	"github.com/akinalp/topluluk/pkg"
	"github.com/akinalp/topluluk/pkg/ratelimit"
	"github.com/akinalp/topluluk/services"
)

// AuthHandler, kimlik doğrulama endpoint'lerini karşılar.
type AuthHandler struct {
	authService services.AuthService
	limiter     *ratelimit.Limiter
}

// NewAuthHandler, yeni bir AuthHandler oluşturur.
func NewAuthHandler(authService services.AuthService, limiter *ratelimit.Limiter) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		limiter:     limiter,
	}
}

// Register POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if !h.limiter.Allow(ratelimit.ClientIP(r)) {
		pkg.ErrorWithMessage(w, http.StatusTooManyRequests, "too many attempts, try again later")
		return
	}

	var req models.CreateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		pkg.Error(w, err)
		return
	}

	resp, err := h.authService.Register(r.Context(), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, resp)
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if !h.limiter.Allow(ratelimit.ClientIP(r)) {
		pkg.ErrorWithMessage(w, http.StatusTooManyRequests, "too many attempts, try again later")
		return
	}

	var req models.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		pkg.Error(w, err)
		return
	}

	resp, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, resp)
}

// Refresh POST /api/auth/refresh
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req models.RefreshRequest
	if err := decodeJSON(r, &req); err != nil {
		pkg.Error(w, err)
		return
	}

	resp, err := h.authService.RefreshToken(r.Context(), req.RefreshToken)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, resp)
}

// Me GET /api/auth/me — token sahibinin güncel profili.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.authService.Me(r.Context(), middleware.CallerID(r.Context()))
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, user)
}

// Logout POST /api/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var req models.RefreshRequest
	if err := decodeJSON(r, &req); err != nil {
		pkg.Error(w, err)
		return
	}

	if err := h.authService.Logout(r.Context(), req.RefreshToken); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}
