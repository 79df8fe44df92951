package usecase

import (
	"errors"

	"authws-backend/internal/auth/domain"
	"authws-backend/internal/auth/dto"
	"authws-backend/internal/auth/repository"
	"authws-backend/pkg/config"
)

// authUsecase implements AuthUsecase
type authUsecase struct {
	userRepo repository.UserRepository
	tokens   *TokenService
	config   *config.Config
}

// NewAuthUsecase creates a new instance of authUsecase
func NewAuthUsecase(userRepo repository.UserRepository, tokens *TokenService, cfg *config.Config) AuthUsecase {
	return &authUsecase{
		userRepo: userRepo,
		tokens:   tokens,
		config:   cfg,
	}
}

func (u *authUsecase) Register(params *dto.RegisterParams) (*domain.User, error) {
	if params.Username == "" || params.Email == "" || params.Password == "" {
		return nil, ErrAllFieldsRequired
	}

	existing, err := u.userRepo.FindByUsername(params.Username)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		existing, err = u.userRepo.FindByEmail(params.Email)
		if err != nil {
			return nil, err
		}
	}
	if existing != nil {
		return nil, ErrUserExists
	}

	hashed, err := repository.HashPassword(params.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     params.Username,
		Email:        params.Email,
		Name:         params.Name,
		PasswordHash: hashed,
	}

	if err := u.userRepo.Create(user); err != nil {
		// The pre-check races with concurrent registrations; the store's
		// unique constraints are authoritative.
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrUserExists
		}
		return nil, err
	}

	return user, nil
}

func (u *authUsecase) Login(username, password string) (*LoginResult, error) {
	if username == "" || password == "" {
		return nil, ErrAllFieldsRequired
	}

	user, err := u.userRepo.FindByUsername(username)
	if err != nil {
		return nil, err
	}

	if user == nil || !repository.CheckPasswordHash(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	accessToken, err := u.tokens.Issue(user, TokenTypeAccess, u.config.JWTAccessExpiry)
	if err != nil {
		return nil, err
	}

	refreshToken, err := u.tokens.Issue(user, TokenTypeRefresh, u.config.JWTRefreshExpiry)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (u *authUsecase) Refresh(refreshToken string) (*RefreshResult, error) {
	if refreshToken == "" {
		return nil, ErrRefreshTokenRequired
	}

	claims, err := u.tokens.Verify(refreshToken, TokenTypeRefresh)
	if err != nil {
		return nil, err
	}

	user, err := u.userRepo.FindByID(claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	accessToken, err := u.tokens.Issue(user, TokenTypeAccess, u.config.JWTAccessExpiry)
	if err != nil {
		return nil, err
	}

	return &RefreshResult{
		User:        user,
		AccessToken: accessToken,
	}, nil
}

func (u *authUsecase) AuthWithToken(accessToken string) (*domain.User, error) {
	if accessToken == "" {
		return nil, ErrAccessTokenRequired
	}

	claims, err := u.tokens.Verify(accessToken, TokenTypeAccess)
	if err != nil {
		return nil, err
	}

	user, err := u.userRepo.FindByID(claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return user, nil
}

func (u *authUsecase) GetUser(id string) (*domain.User, error) {
	user, err := u.userRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (u *authUsecase) GetAllUsers() ([]domain.User, error) {
	return u.userRepo.FindAll()
}

func (u *authUsecase) UploadProfilePicture(user *domain.User, imageURL string) (string, error) {
	if imageURL == "" {
		return "", ErrImageURLRequired
	}

	user.ProfileImage = imageURL
	image := &domain.UserImage{
		UserID:   user.ID,
		ImageURL: imageURL,
	}
	if err := u.userRepo.UpdateProfileImage(user, image); err != nil {
		return "", err
	}

	return imageURL, nil
}
