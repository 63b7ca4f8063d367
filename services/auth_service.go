package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/akinalp/topluluk/config"
	"github.com/akinalp/topluluk/models"
	"github.com/akinalp/topluluk/pkg"
	"github.com/akinalp/topluluk/repository"
)

// bcryptCost: Hash'leme maliyeti. Default 10'dur; 12 her artışta süreyi
// ikiye katladığı için brute-force'u ~4 kat yavaşlatır.
const bcryptCost = 12

// AuthService, kimlik doğrulama iş mantığı için interface.
type AuthService interface {
	Register(ctx context.Context, req *models.CreateUserRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*models.AuthResponse, error)
	Logout(ctx context.Context, refreshToken string) error

	// Me, kimliği doğrulanmış kullanıcının güncel profilini döner.
	Me(ctx context.Context, userID int64) (*models.User, error)

	// ValidateAccessToken, JWT access token'ı doğrular ve claims'i döner.
	// Middleware ve WS handler tarafından kullanılır.
	ValidateAccessToken(tokenString string) (*models.TokenClaims, error)
}

type authService struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
	jwtCfg   config.JWTConfig
}

// NewAuthService, yeni bir AuthService oluşturur.
func NewAuthService(users repository.UserRepository, sessions repository.SessionRepository, jwtCfg config.JWTConfig) AuthService {
	return &authService{
		users:    users,
		sessions: sessions,
		jwtCfg:   jwtCfg,
	}
}

// Register, yeni kullanıcı kaydı yapar ve token çifti döner.
func (s *authService) Register(ctx context.Context, req *models.CreateUserRequest) (*models.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     req.Username,
		PasswordHash: string(hash),
	}
	if req.DisplayName != "" {
		user.DisplayName = &req.DisplayName
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	log.Printf("[auth] new user registered: %s (id=%d)", user.Username, user.ID)
	return s.issueTokens(ctx, user)
}

// Login, kullanıcı girişi yapar ve token çifti döner.
//
// "user not found" ve "wrong password" aynı hatayla döner — hangi
// username'lerin kayıtlı olduğunu dışarı sızdırmamak için.
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	user, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid username or password", pkg.ErrUnauthorized)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("%w: invalid username or password", pkg.ErrUnauthorized)
	}

	log.Printf("[auth] user logged in: %s (id=%d)", user.Username, user.ID)
	return s.issueTokens(ctx, user)
}

// RefreshToken, geçerli bir refresh token karşılığında yeni token çifti üretir.
// Token rotation: eski oturum silinir, yenisi oluşturulur — çalınan refresh
// token ikinci kez kullanılamaz.
func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*models.AuthResponse, error) {
	session, err := s.sessions.GetByRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid refresh token", pkg.ErrUnauthorized)
		}
		return nil, err
	}

	if time.Now().After(session.ExpiresAt) {
		_ = s.sessions.DeleteByID(ctx, session.ID)
		return nil, fmt.Errorf("%w: refresh token expired", pkg.ErrUnauthorized)
	}

	user, err := s.users.GetByID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}

	if err := s.sessions.DeleteByID(ctx, session.ID); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, user)
}

// Logout, refresh token'a ait oturumu siler. Token zaten yoksa sessizce
// başarılı sayılır — logout idempotent'tir.
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	session, err := s.sessions.GetByRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return nil
		}
		return err
	}
	return s.sessions.DeleteByID(ctx, session.ID)
}

func (s *authService) Me(ctx context.Context, userID int64) (*models.User, error) {
	return s.users.GetByID(ctx, userID)
}

// ValidateAccessToken, JWT'yi imza + süre açısından doğrular.
func (s *authService) ValidateAccessToken(tokenString string) (*models.TokenClaims, error) {
	claims := &models.TokenClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		// Algorithm confusion saldırısına karşı: sadece HMAC kabul et.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.jwtCfg.Secret), nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: invalid access token", pkg.ErrUnauthorized)
	}

	return claims, nil
}

// issueTokens, kullanıcı için access + refresh token çifti üretir ve
// refresh oturumunu DB'ye kaydeder.
func (s *authService) issueTokens(ctx context.Context, user *models.User) (*models.AuthResponse, error) {
	now := time.Now()

	claims := &models.TokenClaims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "topluluk",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.jwtCfg.AccessTokenExpiry) * time.Minute)),
		},
	}

	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtCfg.Secret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	refreshToken, err := generateRefreshToken()
	if err != nil {
		return nil, err
	}

	session := &models.Session{
		UserID:       user.ID,
		RefreshToken: refreshToken,
		ExpiresAt:    now.Add(time.Duration(s.jwtCfg.RefreshTokenExpiry) * 24 * time.Hour),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}

	return &models.AuthResponse{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// generateRefreshToken, 32 byte'lık kriptografik random token üretir (hex).
func generateRefreshToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
