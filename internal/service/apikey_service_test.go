package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/cinevault/movie-catalog-api/internal/domain/apikey"
	"github.com/cinevault/movie-catalog-api/internal/handler/dto"
	"github.com/cinevault/movie-catalog-api/internal/ierr"
	"github.com/cinevault/movie-catalog-api/internal/util"
	"go.uber.org/zap"
)

type stubKeyRepo struct {
	mu     sync.Mutex
	nextID int64
	keys   []*apikey.APIKey

	createErr error
}

func (r *stubKeyRepo) FindByHash(_ context.Context, keyHash string) (*apikey.APIKey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, key := range r.keys {
		if key.KeyHash == keyHash {
			return key, nil
		}
	}
	return nil, ierr.ErrAPIKeyNotFound
}

func (r *stubKeyRepo) Create(_ context.Context, key *apikey.APIKey) (*apikey.APIKey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.nextID++
	key.ID = r.nextID
	key.CreatedAt = time.Now().UTC()
	r.keys = append(r.keys, key)
	return key, nil
}

func (r *stubKeyRepo) List(_ context.Context) ([]*apikey.APIKey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*apikey.APIKey(nil), r.keys...), nil
}

func (r *stubKeyRepo) UpdateLastUsed(_ context.Context, id int64, lastUsed time.Time) error {
	return nil
}

func (r *stubKeyRepo) Revoke(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, key := range r.keys {
		if key.ID == id {
			key.IsActive = false
			return nil
		}
	}
	return ierr.ErrAPIKeyNotFound
}

func (r *stubKeyRepo) DeactivateExpired(_ context.Context, now time.Time) (int64, error) {
	return 0, nil
}

func violationFields(t *testing.T, err error) map[string]string {
	t.Helper()
	var ve *ierr.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("error %v is not a *ierr.ValidationError", err)
	}
	if !errors.Is(err, ierr.ErrValidation) {
		t.Error("validation error does not unwrap to ErrValidation")
	}
	fields := make(map[string]string, len(ve.Violations))
	for _, v := range ve.Violations {
		fields[v.Field] = v.Message
	}
	return fields
}

func TestCreateAPIKeyIssuesUsableKey(t *testing.T) {
	repo := &stubKeyRepo{}
	svc := NewAPIKeyService(repo, 1000, zap.NewNop())

	resp, err := svc.CreateAPIKey(context.Background(), &dto.CreateAPIKeyRequest{
		Name:  "Acme Integrations",
		Email: "Dev@Acme.example",
	})
	if err != nil {
		t.Fatalf("CreateAPIKey() returned error: %v", err)
	}

	if !resp.Success {
		t.Error("response success = false")
	}
	if resp.APIKey == "" {
		t.Fatal("response has no plaintext key")
	}
	if resp.RateLimit != 1000 {
		t.Errorf("rate limit = %d, want default 1000", resp.RateLimit)
	}
	if resp.Email == nil || *resp.Email != "dev@acme.example" {
		t.Errorf("email = %v, want lowercased dev@acme.example", resp.Email)
	}

	// The stored record holds only the hash of what was returned.
	stored, err := repo.FindByHash(context.Background(), util.HashAPIKey(resp.APIKey))
	if err != nil {
		t.Fatalf("stored key not found by hash of plaintext: %v", err)
	}
	if !stored.IsActive {
		t.Error("stored key is not active")
	}
	if stored.KeyHash == resp.APIKey {
		t.Error("plaintext stored instead of hash")
	}
	if stored.ExpiresAt != nil {
		t.Errorf("issued key has expiry %v, want none", stored.ExpiresAt)
	}
}

func TestCreateAPIKeyNormalizesName(t *testing.T) {
	repo := &stubKeyRepo{}
	svc := NewAPIKeyService(repo, 1000, zap.NewNop())

	resp, err := svc.CreateAPIKey(context.Background(), &dto.CreateAPIKeyRequest{
		Name: "  Acme \t  Integrations  ",
	})
	if err != nil {
		t.Fatalf("CreateAPIKey() returned error: %v", err)
	}
	if resp.Name != "Acme Integrations" {
		t.Errorf("name = %q, want inner whitespace collapsed", resp.Name)
	}
	if resp.Email != nil {
		t.Errorf("email = %v, want nil for absent input", resp.Email)
	}
}

func TestCreateAPIKeyValidation(t *testing.T) {
	tests := []struct {
		testName  string
		name      string
		email     string
		wantField string
	}{
		{"empty name", "", "", "name"},
		{"whitespace only name", "   \t ", "", "name"},
		{"name too long", strings.Repeat("a", 256), "", "name"},
		{"malformed email", "Acme", "not-an-email", "email"},
	}

	repo := &stubKeyRepo{}
	svc := NewAPIKeyService(repo, 1000, zap.NewNop())

	for _, tt := range tests {
		t.Run(tt.testName, func(t *testing.T) {
			_, err := svc.CreateAPIKey(context.Background(), &dto.CreateAPIKeyRequest{
				Name:  tt.name,
				Email: tt.email,
			})
			if err == nil {
				t.Fatal("CreateAPIKey() returned nil error, want validation error")
			}
			fields := violationFields(t, err)
			if _, ok := fields[tt.wantField]; !ok {
				t.Errorf("violations %v missing field %q", fields, tt.wantField)
			}
		})
	}

	if len(repo.keys) != 0 {
		t.Errorf("%d keys persisted despite validation failures", len(repo.keys))
	}
}

func TestCreateAPIKeyNameAtMaxLength(t *testing.T) {
	repo := &stubKeyRepo{}
	svc := NewAPIKeyService(repo, 1000, zap.NewNop())

	_, err := svc.CreateAPIKey(context.Background(), &dto.CreateAPIKeyRequest{
		Name: strings.Repeat("a", 255),
	})
	if err != nil {
		t.Fatalf("255-character name rejected: %v", err)
	}
}

func TestCreateAPIKeyMultibyteNameLength(t *testing.T) {
	repo := &stubKeyRepo{}
	svc := NewAPIKeyService(repo, 1000, zap.NewNop())

	// 200 characters but 400 bytes; the cap counts characters.
	if _, err := svc.CreateAPIKey(context.Background(), &dto.CreateAPIKeyRequest{
		Name: strings.Repeat("é", 200),
	}); err != nil {
		t.Fatalf("200-character multibyte name rejected: %v", err)
	}

	_, err := svc.CreateAPIKey(context.Background(), &dto.CreateAPIKeyRequest{
		Name: strings.Repeat("é", 256),
	})
	if err == nil {
		t.Fatal("256-character name accepted")
	}
	fields := violationFields(t, err)
	if _, ok := fields["name"]; !ok {
		t.Errorf("violations %v missing field %q", fields, "name")
	}
}

func TestCreateAPIKeyRepositoryError(t *testing.T) {
	repo := &stubKeyRepo{createErr: errors.New("unique violation")}
	svc := NewAPIKeyService(repo, 1000, zap.NewNop())

	_, err := svc.CreateAPIKey(context.Background(), &dto.CreateAPIKeyRequest{Name: "Acme"})
	if err == nil {
		t.Fatal("CreateAPIKey() returned nil error, want repository error")
	}
	if errors.Is(err, ierr.ErrValidation) {
		t.Error("repository error surfaced as a validation error")
	}
}

func TestListAPIKeysOmitsHash(t *testing.T) {
	repo := &stubKeyRepo{}
	svc := NewAPIKeyService(repo, 50, zap.NewNop())

	if _, err := svc.CreateAPIKey(context.Background(), &dto.CreateAPIKeyRequest{Name: "Owner One"}); err != nil {
		t.Fatalf("CreateAPIKey() returned error: %v", err)
	}

	listed, err := svc.ListAPIKeys(context.Background())
	if err != nil {
		t.Fatalf("ListAPIKeys() returned error: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("listed %d keys, want 1", len(listed))
	}
	if listed[0].Name != "Owner One" {
		t.Errorf("listed name = %q, want %q", listed[0].Name, "Owner One")
	}
	if listed[0].RateLimit != 50 {
		t.Errorf("listed rate limit = %d, want 50", listed[0].RateLimit)
	}
}

func TestRevokeAPIKey(t *testing.T) {
	repo := &stubKeyRepo{}
	svc := NewAPIKeyService(repo, 1000, zap.NewNop())

	created, err := svc.CreateAPIKey(context.Background(), &dto.CreateAPIKeyRequest{Name: "Doomed"})
	if err != nil {
		t.Fatalf("CreateAPIKey() returned error: %v", err)
	}

	stored, err := repo.FindByHash(context.Background(), util.HashAPIKey(created.APIKey))
	if err != nil {
		t.Fatalf("stored key not found: %v", err)
	}

	if err := svc.RevokeAPIKey(context.Background(), stored.ID); err != nil {
		t.Fatalf("RevokeAPIKey() returned error: %v", err)
	}
	if stored.IsActive {
		t.Error("key still active after revoke")
	}

	if err := svc.RevokeAPIKey(context.Background(), 99999); !errors.Is(err, ierr.ErrAPIKeyNotFound) {
		t.Errorf("revoking unknown id: err = %v, want ErrAPIKeyNotFound", err)
	}
}
