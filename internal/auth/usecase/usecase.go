package usecase

import (
	"authws-backend/internal/auth/domain"
	"authws-backend/internal/auth/dto"
)

// LoginResult carries the token pair issued by Login.
type LoginResult struct {
	User         *domain.User
	AccessToken  string
	RefreshToken string
}

// RefreshResult carries the fresh access token issued by Refresh.
type RefreshResult struct {
	User        *domain.User
	AccessToken string
}

// AuthUsecase defines the authentication business operations.
// Every method returns an explicit error value; the sentinels in errors.go
// form the complete failure taxonomy.
type AuthUsecase interface {
	Register(params *dto.RegisterParams) (*domain.User, error)
	Login(username, password string) (*LoginResult, error)
	Refresh(refreshToken string) (*RefreshResult, error)
	AuthWithToken(accessToken string) (*domain.User, error)
	GetUser(id string) (*domain.User, error)
	GetAllUsers() ([]domain.User, error)
	UploadProfilePicture(user *domain.User, imageURL string) (string, error)
}
