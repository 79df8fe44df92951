package usecase

import (
	"errors"
	"time"

	"authws-backend/internal/auth/domain"

	"github.com/golang-jwt/jwt/v5"
)

// Token kinds carried in the "type" claim. Both kinds share the signing
// key; verification tells them apart by the claim alone.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// TokenClaims is the claims bundle embedded in every issued token.
type TokenClaims struct {
	jwt.RegisteredClaims
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	TokenType string `json:"type"`
}

// TokenService issues and verifies signed, expiring HS256 tokens.
// Pure function of the secret and claims; no external side effects.
type TokenService struct {
	secret []byte
}

func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret)}
}

// Issue signs a token of the given kind for the user, expiring after ttl.
func (s *TokenService) Issue(user *domain.User, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID:    user.ID,
		Username:  user.Username,
		TokenType: tokenType,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify checks signature and expiry, then the "type" claim against
// expectedType. Returns ErrTokenExpired when only the expiry failed,
// ErrInvalidTokenType on a type mismatch, ErrInvalidToken otherwise.
func (s *TokenService) Verify(tokenString, expectedType string) (*TokenClaims, error) {
	claims := &TokenClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.TokenType != expectedType {
		return nil, ErrInvalidTokenType
	}

	return claims, nil
}
