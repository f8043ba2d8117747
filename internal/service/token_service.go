package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vape-shop/internal/domain"
	"vape-shop/internal/repository"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenValidity is the identity token lifetime
const DefaultTokenValidity = 24 * time.Hour

var (
	ErrInvalidToken = errors.New("invalid token")
)

// Claims represents the identity token payload. The role is a snapshot of the
// user record at issuance; a later role change is not reflected until reissue.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies signed identity tokens
type TokenService interface {
	Issue(ctx context.Context, email string) (string, error)
	Verify(tokenString string) (*Claims, error)
}

type tokenService struct {
	userRepo repository.UserRepository
	secret   string
	validity time.Duration
}

// NewTokenService creates a new instance of TokenService
func NewTokenService(userRepo repository.UserRepository, secret string, validity time.Duration) TokenService {
	if validity <= 0 {
		validity = DefaultTokenValidity
	}
	return &tokenService{
		userRepo: userRepo,
		secret:   secret,
		validity: validity,
	}
}

// Issue signs a token for the given email. A registered email embeds its
// stored role; an unregistered one is issued a plain user token, so issuance
// does not require prior registration.
func (s *tokenService) Issue(ctx context.Context, email string) (string, error) {
	role := domain.RoleUser

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		return "", fmt.Errorf("failed to look up user: %w", err)
	}
	if user != nil {
		role = user.Role
	}

	now := time.Now()
	claims := &Claims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.validity)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// Verify parses the token and validates its signature and expiry
func (s *tokenService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.secret), nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
