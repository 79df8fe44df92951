package usecase

import (
	"errors"
	"testing"
	"time"

	"authws-backend/internal/auth/domain"
	"authws-backend/internal/auth/dto"
	"authws-backend/internal/auth/repository"
	"authws-backend/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUsecase(t *testing.T) (AuthUsecase, repository.UserRepository, *TokenService) {
	t.Helper()

	repo := repository.NewMemoryRepository()
	tokens := NewTokenService("test-secret")
	cfg := &config.Config{
		JWTAccessExpiry:  time.Hour,
		JWTRefreshExpiry: 168 * time.Hour,
	}
	return NewAuthUsecase(repo, tokens, cfg), repo, tokens
}

func registerParams() *dto.RegisterParams {
	return &dto.RegisterParams{
		Username: "bob",
		Email:    "bob@example.com",
		Password: "password123",
		Name:     "Bob",
	}
}

func TestRegisterThenLogin(t *testing.T) {
	uc, repo, _ := newTestUsecase(t)

	user, err := uc.Register(registerParams())
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)
	assert.NotEqual(t, "password123", user.PasswordHash)

	stored, err := repo.FindByUsername("bob")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, user.ID, stored.ID)

	res, err := uc.Login("bob", "password123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, res.User.ID)
	assert.NotEmpty(t, res.AccessToken)
	assert.NotEmpty(t, res.RefreshToken)
	assert.NotEqual(t, res.AccessToken, res.RefreshToken)
}

func TestRegisterMissingFields(t *testing.T) {
	uc, _, _ := newTestUsecase(t)

	cases := []dto.RegisterParams{
		{Email: "a@b.c", Password: "x"},
		{Username: "a", Password: "x"},
		{Username: "a", Email: "a@b.c"},
	}
	for _, p := range cases {
		_, err := uc.Register(&p)
		assert.ErrorIs(t, err, ErrAllFieldsRequired)
	}

	// name is optional
	_, err := uc.Register(&dto.RegisterParams{Username: "a", Email: "a@b.c", Password: "x"})
	assert.NoError(t, err)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	uc, repo, _ := newTestUsecase(t)

	_, err := uc.Register(registerParams())
	require.NoError(t, err)

	dup := registerParams()
	dup.Email = "other@example.com" // same username, different email
	_, err = uc.Register(dup)
	assert.ErrorIs(t, err, ErrUserExists)

	users, err := repo.FindAll()
	require.NoError(t, err)
	assert.Len(t, users, 1, "no duplicate row created")
}

// racingRepo simulates a register race: the pre-check lookups see nothing,
// but the store's unique constraints reject the insert.
type racingRepo struct {
	repository.UserRepository
}

func (r racingRepo) FindByUsername(username string) (*domain.User, error) { return nil, nil }
func (r racingRepo) FindByEmail(email string) (*domain.User, error)       { return nil, nil }
func (r racingRepo) Create(user *domain.User) error                       { return repository.ErrDuplicateKey }

func TestRegisterConcurrentDuplicate(t *testing.T) {
	repo := racingRepo{repository.NewMemoryRepository()}
	tokens := NewTokenService("test-secret")
	cfg := &config.Config{JWTAccessExpiry: time.Hour, JWTRefreshExpiry: 168 * time.Hour}
	uc := NewAuthUsecase(repo, tokens, cfg)

	_, err := uc.Register(registerParams())
	assert.ErrorIs(t, err, ErrUserExists, "duplicate-key insert surfaces as a conflict")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	uc, _, _ := newTestUsecase(t)

	_, err := uc.Register(registerParams())
	require.NoError(t, err)

	dup := registerParams()
	dup.Username = "alice"
	_, err = uc.Register(dup)
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestLoginFailures(t *testing.T) {
	uc, _, _ := newTestUsecase(t)

	_, err := uc.Register(registerParams())
	require.NoError(t, err)

	_, err = uc.Login("bob", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = uc.Login("nobody", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = uc.Login("", "")
	assert.ErrorIs(t, err, ErrAllFieldsRequired)
}

func TestRefresh(t *testing.T) {
	uc, _, _ := newTestUsecase(t)

	_, err := uc.Register(registerParams())
	require.NoError(t, err)

	login, err := uc.Login("bob", "password123")
	require.NoError(t, err)

	res, err := uc.Refresh(login.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, login.User.ID, res.User.ID)
	assert.NotEmpty(t, res.AccessToken)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	uc, _, _ := newTestUsecase(t)

	_, err := uc.Register(registerParams())
	require.NoError(t, err)

	login, err := uc.Login("bob", "password123")
	require.NoError(t, err)

	res, err := uc.Refresh(login.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidTokenType)
	assert.Nil(t, res, "no token issued on type mismatch")
}

func TestRefreshMissingToken(t *testing.T) {
	uc, _, _ := newTestUsecase(t)

	_, err := uc.Refresh("")
	assert.ErrorIs(t, err, ErrRefreshTokenRequired)
}

func TestRefreshStaleUser(t *testing.T) {
	uc, _, tokens := newTestUsecase(t)

	// refresh token referencing a user that was never persisted
	ghost := &domain.User{ID: "gone", Username: "ghost"}
	tok, err := tokens.Issue(ghost, TokenTypeRefresh, time.Hour)
	require.NoError(t, err)

	_, err = uc.Refresh(tok)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAuthWithTokenRoundTrip(t *testing.T) {
	uc, _, _ := newTestUsecase(t)

	_, err := uc.Register(registerParams())
	require.NoError(t, err)

	login, err := uc.Login("bob", "password123")
	require.NoError(t, err)

	user, err := uc.AuthWithToken(login.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, login.User.ID, user.ID)
	assert.Equal(t, login.User.Username, user.Username)
}

func TestAuthWithTokenFailures(t *testing.T) {
	uc, _, tokens := newTestUsecase(t)

	user, err := uc.Register(registerParams())
	require.NoError(t, err)

	_, err = uc.AuthWithToken("")
	assert.ErrorIs(t, err, ErrAccessTokenRequired)

	refresh, err := tokens.Issue(user, TokenTypeRefresh, time.Hour)
	require.NoError(t, err)
	_, err = uc.AuthWithToken(refresh)
	assert.ErrorIs(t, err, ErrInvalidTokenType)

	expired, err := tokens.Issue(user, TokenTypeAccess, 0)
	require.NoError(t, err)
	_, err = uc.AuthWithToken(expired)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestUploadProfilePicture(t *testing.T) {
	uc, _, _ := newTestUsecase(t)

	user, err := uc.Register(registerParams())
	require.NoError(t, err)

	_, err = uc.UploadProfilePicture(user, "")
	assert.ErrorIs(t, err, ErrImageURLRequired)

	url, err := uc.UploadProfilePicture(user, "https://img.example.com/bob.png")
	require.NoError(t, err)
	assert.Equal(t, "https://img.example.com/bob.png", url)

	reloaded, err := uc.GetUser(user.ID)
	require.NoError(t, err)
	assert.Equal(t, url, reloaded.ProfileImage)
}

// brokenImageRepo fails every profile image write.
type brokenImageRepo struct {
	repository.UserRepository
}

func (r brokenImageRepo) UpdateProfileImage(user *domain.User, image *domain.UserImage) error {
	return errWriteFailed
}

var errWriteFailed = errors.New("write failed")

func TestUploadProfilePictureWriteFailure(t *testing.T) {
	backing := repository.NewMemoryRepository()
	tokens := NewTokenService("test-secret")
	cfg := &config.Config{JWTAccessExpiry: time.Hour, JWTRefreshExpiry: 168 * time.Hour}
	uc := NewAuthUsecase(brokenImageRepo{backing}, tokens, cfg)

	user, err := uc.Register(registerParams())
	require.NoError(t, err)

	_, err = uc.UploadProfilePicture(user, "https://img.example.com/bob.png")
	assert.ErrorIs(t, err, errWriteFailed)

	// the stored user keeps its previous image
	stored, err := backing.FindByID(user.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.ProfileImage)
}

func TestGetAllUsers(t *testing.T) {
	uc, _, _ := newTestUsecase(t)

	_, err := uc.Register(registerParams())
	require.NoError(t, err)

	second := registerParams()
	second.Username = "alice"
	second.Email = "alice@example.com"
	_, err = uc.Register(second)
	require.NoError(t, err)

	users, err := uc.GetAllUsers()
	require.NoError(t, err)
	assert.Len(t, users, 2)
}
