package service

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"adventcal/internal/model"
	"adventcal/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid name or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// AuthService issues and validates player bearer tokens. Everyone shares
// one calendar password; identity is the chosen display name.
type AuthService struct {
	password  string
	jwtSecret []byte
	userRepo  repository.UserRepo
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepo) *AuthService {
	password := os.Getenv("CALENDAR_PASSWORD")
	if password == "" {
		password = "god-jul"
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "super-secret-key-change-in-production"
	}
	return &AuthService{
		password:  password,
		jwtSecret: []byte(secret),
		userRepo:  userRepo,
	}
}

// Login validates the shared password and returns a token bound to the
// player's internal user record
func (s *AuthService) Login(ctx context.Context, name, password string) (*model.LoginResponse, error) {
	name = strings.TrimSpace(name)
	if name == "" || password != s.password {
		return nil, ErrInvalidCredentials
	}

	subject := strings.ToLower(name)
	user, err := s.userRepo.GetOrCreate(ctx, subject, name)
	if err != nil {
		return nil, err
	}

	claims := &model.UserClaims{
		Subject: subject,
		Name:    user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(45 * 24 * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, err
	}

	return &model.LoginResponse{
		Token: tokenString,
		User:  user,
	}, nil
}

// ValidateToken validates a bearer token and returns its claims
func (s *AuthService) ValidateToken(tokenString string) (*model.UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &model.UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*model.UserClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ResolveUser maps validated claims to the internal user identity,
// creating it when the token predates the user record
func (s *AuthService) ResolveUser(ctx context.Context, claims *model.UserClaims) (*model.User, error) {
	return s.userRepo.GetOrCreate(ctx, claims.Subject, claims.Name)
}
