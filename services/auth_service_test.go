package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/akinalp/topluluk/config"
	"github.com/akinalp/topluluk/models"
	"github.com/akinalp/topluluk/pkg"
	"github.com/akinalp/topluluk/repository"
)

type fakeUserRepo struct {
	users []models.User
}

var _ repository.UserRepository = (*fakeUserRepo)(nil)

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	for _, u := range f.users {
		if u.Username == user.Username {
			return fmt.Errorf("%w: username is taken", pkg.ErrAlreadyExists)
		}
	}
	user.ID = int64(len(f.users) + 1)
	f.users = append(f.users, *user)
	return nil
}
func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, pkg.ErrNotFound
}
func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, pkg.ErrNotFound
}

type fakeSessionRepo struct {
	sessions []models.Session
	nextID   int64
}

var _ repository.SessionRepository = (*fakeSessionRepo)(nil)

func (f *fakeSessionRepo) Create(ctx context.Context, session *models.Session) error {
	f.nextID++
	session.ID = f.nextID
	f.sessions = append(f.sessions, *session)
	return nil
}
func (f *fakeSessionRepo) GetByRefreshToken(ctx context.Context, token string) (*models.Session, error) {
	for _, s := range f.sessions {
		if s.RefreshToken == token {
			return &s, nil
		}
	}
	return nil, pkg.ErrNotFound
}
func (f *fakeSessionRepo) DeleteByID(ctx context.Context, id int64) error {
	for i, s := range f.sessions {
		if s.ID == id {
			f.sessions = append(f.sessions[:i], f.sessions[i+1:]...)
			return nil
		}
	}
	return pkg.ErrNotFound
}

func newAuthFixture() (*fakeUserRepo, *fakeSessionRepo, AuthService) {
	users := &fakeUserRepo{}
	sessions := &fakeSessionRepo{}
	svc := NewAuthService(users, sessions, config.JWTConfig{
		Secret:             "test-secret",
		AccessTokenExpiry:  15,
		RefreshTokenExpiry: 7,
	})
	return users, sessions, svc
}

func TestRegisterHashesPassword(t *testing.T) {
	users, sessions, svc := newAuthFixture()

	resp, err := svc.Register(context.Background(), &models.CreateUserRequest{
		Username: "ayse", Password: "gizli-sifre",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "ayse", resp.User.Username)

	// şifre plaintext saklanmıyor
	stored := users.users[0]
	assert.NotEqual(t, "gizli-sifre", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("gizli-sifre")))

	// refresh oturumu açıldı
	assert.Len(t, sessions.sessions, 1)
}

func TestRegisterValidation(t *testing.T) {
	_, _, svc := newAuthFixture()

	_, err := svc.Register(context.Background(), &models.CreateUserRequest{
		Username: "ab", Password: "gizli-sifre",
	})
	assert.ErrorIs(t, err, pkg.ErrBadRequest)

	_, err = svc.Register(context.Background(), &models.CreateUserRequest{
		Username: "ayse", Password: "kisa",
	})
	assert.ErrorIs(t, err, pkg.ErrBadRequest)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	_, _, svc := newAuthFixture()

	_, err := svc.Register(context.Background(), &models.CreateUserRequest{
		Username: "ayse", Password: "gizli-sifre",
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), &models.CreateUserRequest{
		Username: "ayse", Password: "baska-sifre",
	})
	assert.ErrorIs(t, err, pkg.ErrAlreadyExists)
}

func TestLogin(t *testing.T) {
	_, _, svc := newAuthFixture()

	_, err := svc.Register(context.Background(), &models.CreateUserRequest{
		Username: "ayse", Password: "gizli-sifre",
	})
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), &models.LoginRequest{
		Username: "ayse", Password: "gizli-sifre",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
}

// Yanlış şifre ve bilinmeyen kullanıcı AYNI hatayı üretmeli —
// hangi username'lerin kayıtlı olduğu sızmamalı.
func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	_, _, svc := newAuthFixture()

	_, err := svc.Register(context.Background(), &models.CreateUserRequest{
		Username: "ayse", Password: "gizli-sifre",
	})
	require.NoError(t, err)

	_, errWrongPass := svc.Login(context.Background(), &models.LoginRequest{
		Username: "ayse", Password: "yanlis",
	})
	_, errNoUser := svc.Login(context.Background(), &models.LoginRequest{
		Username: "yok-boyle-biri", Password: "yanlis",
	})

	require.Error(t, errWrongPass)
	require.Error(t, errNoUser)
	assert.Equal(t, errWrongPass.Error(), errNoUser.Error())
	assert.ErrorIs(t, errWrongPass, pkg.ErrUnauthorized)
}

func TestValidateAccessToken(t *testing.T) {
	_, _, svc := newAuthFixture()

	resp, err := svc.Register(context.Background(), &models.CreateUserRequest{
		Username: "ayse", Password: "gizli-sifre",
	})
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, "ayse", claims.Username)

	_, err = svc.ValidateAccessToken("not-a-jwt")
	assert.ErrorIs(t, err, pkg.ErrUnauthorized)
}

func TestRefreshTokenRotation(t *testing.T) {
	_, sessions, svc := newAuthFixture()

	resp, err := svc.Register(context.Background(), &models.CreateUserRequest{
		Username: "ayse", Password: "gizli-sifre",
	})
	require.NoError(t, err)

	renewed, err := svc.RefreshToken(context.Background(), resp.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, resp.RefreshToken, renewed.RefreshToken)
	assert.Len(t, sessions.sessions, 1)

	// eski refresh token rotate edildi — ikinci kullanım reddedilir
	_, err = svc.RefreshToken(context.Background(), resp.RefreshToken)
	assert.ErrorIs(t, err, pkg.ErrUnauthorized)
}

func TestLogoutIsIdempotent(t *testing.T) {
	_, sessions, svc := newAuthFixture()

	resp, err := svc.Register(context.Background(), &models.CreateUserRequest{
		Username: "ayse", Password: "gizli-sifre",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), resp.RefreshToken))
	assert.Empty(t, sessions.sessions)

	// ikinci logout hata üretmez
	assert.NoError(t, svc.Logout(context.Background(), resp.RefreshToken))
}
