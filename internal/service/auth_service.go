package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cinevault/movie-catalog-api/internal/config"
	"github.com/cinevault/movie-catalog-api/internal/domain/user"
	"github.com/cinevault/movie-catalog-api/internal/ierr"
	"github.com/cinevault/movie-catalog-api/internal/storage/memstorage"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type AccessClaims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

type AuthService struct {
	repo   user.Repository
	cfg    *config.JWTConfig
	logger *zap.Logger
}

func NewAuthService(repo user.Repository, cfg *config.JWTConfig, logger *zap.Logger) *AuthService {
	return &AuthService{
		repo:   repo,
		cfg:    cfg,
		logger: logger.Named("AuthService"),
	}
}

func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	u, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ierr.ErrUserNotFound) {
			return "", ierr.ErrInvalidCredentials
		}
		s.logger.Error("Failed to look up user during login", zap.String("username", username), zap.Error(err))
		return "", fmt.Errorf("user lookup failed: %w", err)
	}

	if !memstorage.CheckPassword(u.PasswordHash, password) {
		return "", ierr.ErrInvalidCredentials
	}

	token, err := s.issueToken(u)
	if err != nil {
		s.logger.Error("Failed to sign access token", zap.String("username", username), zap.Error(err))
		return "", fmt.Errorf("%w: token signing failed", ierr.ErrInternalServer)
	}

	s.logger.Info("User logged in", zap.String("username", u.Username), zap.String("role", u.Role))
	return token, nil
}

func (s *AuthService) Register(ctx context.Context, username, password string) (*user.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("Failed to hash password during registration", zap.Error(err))
		return nil, fmt.Errorf("%w: password hashing failed", ierr.ErrInternalServer)
	}

	newUser := &user.User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: string(hashedPassword),
		Role:         user.RoleEditor,
	}

	if err := s.repo.Create(ctx, newUser); err != nil {
		if errors.Is(err, ierr.ErrUserAlreadyExists) {
			return nil, fmt.Errorf("%w: username taken", ierr.ErrConflict)
		}
		s.logger.Error("Failed to create user", zap.String("username", username), zap.Error(err))
		return nil, fmt.Errorf("user creation failed: %w", err)
	}

	s.logger.Info("User registered", zap.String("username", newUser.Username))
	return newUser, nil
}

func (s *AuthService) ValidateToken(ctx context.Context, rawToken string) (*AccessClaims, error) {
	claims := &AccessClaims{}

	token, err := jwt.ParseWithClaims(rawToken, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%w: unexpected signing method %v", ierr.ErrTokenParsingFailed, t.Header["alg"])
		}
		return []byte(s.cfg.Secret), nil
	},
		jwt.WithIssuer(s.cfg.Issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ierr.ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ierr.ErrInvalidToken
	}

	return claims, nil
}

func (s *AuthService) issueToken(u *user.User) (string, error) {
	now := time.Now().UTC()
	claims := AccessClaims{
		Username: u.Username,
		Role:     u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID.String(),
			Issuer:    s.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.AccessTokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.Secret))
}
