package usecase

import "errors"

// User errors
var (
	ErrUserExists         = errors.New("username or email already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Token errors. ErrTokenExpired is kept distinct from ErrInvalidToken so
// clients can tell whether refreshing can help.
var (
	ErrTokenExpired     = errors.New("token has expired")
	ErrInvalidToken     = errors.New("invalid token")
	ErrInvalidTokenType = errors.New("invalid token type")
)

// Validation errors (client input)
var (
	ErrAllFieldsRequired    = errors.New("all fields required")
	ErrAccessTokenRequired  = errors.New("access token required")
	ErrRefreshTokenRequired = errors.New("refresh token required")
	ErrImageURLRequired     = errors.New("image_url is required")
)
