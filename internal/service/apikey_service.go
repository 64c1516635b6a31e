package service

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/cinevault/movie-catalog-api/internal/domain/apikey"
	"github.com/cinevault/movie-catalog-api/internal/handler/dto"
	"github.com/cinevault/movie-catalog-api/internal/ierr"
	"github.com/cinevault/movie-catalog-api/internal/util"
	"go.uber.org/zap"
)

const (
	maxOwnerNameLength = 255

	plaintextNotice = "Store this key securely. It is shown only once and cannot be retrieved again."
)

type APIKeyService struct {
	repo             apikey.Repository
	defaultRateLimit int
	logger           *zap.Logger
}

func NewAPIKeyService(repo apikey.Repository, defaultRateLimit int, logger *zap.Logger) *APIKeyService {
	return &APIKeyService{
		repo:             repo,
		defaultRateLimit: defaultRateLimit,
		logger:           logger.Named("APIKeyService"),
	}
}

// CreateAPIKey validates and normalizes the issuance request, generates and
// hashes a fresh secret, persists the hash and returns the plaintext. This is
// the only place the plaintext ever exists server-side.
func (s *APIKeyService) CreateAPIKey(ctx context.Context, req *dto.CreateAPIKeyRequest) (*dto.CreateAPIKeyResponse, error) {
	name, email, err := normalizeIssuanceInput(req.Name, req.Email)
	if err != nil {
		return nil, err
	}

	plaintext, keyHash, err := util.GenerateAPIKey()
	if err != nil {
		s.logger.Error("Failed to generate api key secret", zap.Error(err))
		return nil, fmt.Errorf("%w: failed generating key: %v", ierr.ErrInternalServer, err)
	}

	newKey := &apikey.APIKey{
		KeyHash:    keyHash,
		OwnerName:  name,
		OwnerEmail: email,
		RateLimit:  s.defaultRateLimit,
		IsActive:   true,
	}

	created, err := s.repo.Create(ctx, newKey)
	if err != nil {
		s.logger.Error("Failed to save new api key", zap.Error(err))
		return nil, fmt.Errorf("repository error creating api key: %w", err)
	}

	s.logger.Info("API key issued",
		zap.Int64("id", created.ID),
		zap.String("owner", created.OwnerName),
		zap.Int("rate_limit", created.RateLimit),
	)

	return &dto.CreateAPIKeyResponse{
		Success:         true,
		APIKey:          plaintext,
		Name:            created.OwnerName,
		Email:           created.OwnerEmail,
		RateLimit:       created.RateLimit,
		CreatedAt:       created.CreatedAt,
		Message:         "API key created successfully",
		ImportantNotice: plaintextNotice,
	}, nil
}

func (s *APIKeyService) ListAPIKeys(ctx context.Context) ([]*dto.APIKeyResponse, error) {
	keys, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("Failed to list api keys from repository", zap.Error(err))
		return nil, fmt.Errorf("repository error listing api keys: %w", err)
	}

	responses := make([]*dto.APIKeyResponse, len(keys))
	for i, key := range keys {
		responses[i] = &dto.APIKeyResponse{
			ID:         key.ID,
			Name:       key.OwnerName,
			Email:      key.OwnerEmail,
			RateLimit:  key.RateLimit,
			IsActive:   key.IsActive,
			ExpiresAt:  key.ExpiresAt,
			CreatedAt:  key.CreatedAt,
			LastUsedAt: key.LastUsedAt,
		}
	}
	return responses, nil
}

func (s *APIKeyService) RevokeAPIKey(ctx context.Context, id int64) error {
	err := s.repo.Revoke(ctx, id)
	if err != nil {
		s.logger.Error("Failed to revoke api key via repository", zap.Int64("id", id), zap.Error(err))
		return err
	}
	s.logger.Info("API key revoked successfully", zap.Int64("id", id))
	return nil
}

// normalizeIssuanceInput trims and collapses inner whitespace in the name and
// lowercases the email. An empty email is treated as absent. Violations come
// back field-scoped.
func normalizeIssuanceInput(rawName, rawEmail string) (string, *string, error) {
	var violations []ierr.FieldViolation

	name := strings.Join(strings.Fields(rawName), " ")
	if name == "" {
		violations = append(violations, ierr.FieldViolation{Field: "name", Message: "name is required"})
	} else if utf8.RuneCountInString(name) > maxOwnerNameLength {
		violations = append(violations, ierr.FieldViolation{
			Field:   "name",
			Message: fmt.Sprintf("name must be at most %d characters", maxOwnerNameLength),
		})
	}

	var email *string
	trimmedEmail := strings.ToLower(strings.TrimSpace(rawEmail))
	if trimmedEmail != "" {
		if _, err := mail.ParseAddress(trimmedEmail); err != nil {
			violations = append(violations, ierr.FieldViolation{Field: "email", Message: "email must be a valid email address"})
		} else {
			email = &trimmedEmail
		}
	}

	if len(violations) > 0 {
		return "", nil, ierr.NewValidationError(violations...)
	}
	return name, email, nil
}
