package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cinevault/movie-catalog-api/internal/domain/apikey"
	"github.com/cinevault/movie-catalog-api/internal/handler/dto"
	"github.com/cinevault/movie-catalog-api/internal/handler/middleware"
	"github.com/cinevault/movie-catalog-api/internal/ierr"
	"github.com/cinevault/movie-catalog-api/internal/service"
)

type memKeyRepo struct {
	mu     sync.Mutex
	nextID int64
	keys   []*apikey.APIKey
}

func (r *memKeyRepo) FindByHash(_ context.Context, keyHash string) (*apikey.APIKey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, key := range r.keys {
		if key.KeyHash == keyHash {
			return key, nil
		}
	}
	return nil, ierr.ErrAPIKeyNotFound
}

func (r *memKeyRepo) Create(_ context.Context, key *apikey.APIKey) (*apikey.APIKey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	key.ID = r.nextID
	key.CreatedAt = time.Now().UTC()
	r.keys = append(r.keys, key)
	return key, nil
}

func (r *memKeyRepo) List(_ context.Context) ([]*apikey.APIKey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*apikey.APIKey(nil), r.keys...), nil
}

func (r *memKeyRepo) UpdateLastUsed(_ context.Context, id int64, lastUsed time.Time) error {
	return nil
}

func (r *memKeyRepo) Revoke(_ context.Context, id int64) error {
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

func (r *memKeyRepo) DeactivateExpired(_ context.Context, now time.Time) (int64, error) {
	return 0, nil
}

func newIssuanceRouter(repo *memKeyRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()

	svc := service.NewAPIKeyService(repo, 1000, logger)
	h := NewAPIKeyHandler(svc, logger)

	router := gin.New()
	router.Use(middleware.ErrorHandlerMiddleware(logger))
	router.POST("/api-key", h.Create)
	router.GET("/apikeys", h.List)
	router.DELETE("/apikeys/:id", h.Revoke)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateAPIKeyEndpoint(t *testing.T) {
	repo := &memKeyRepo{}
	router := newIssuanceRouter(repo)

	w := postJSON(t, router, "/api-key", `{"name": "Acme Integrations", "email": "dev@acme.example"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d (body: %s)", w.Code, http.StatusCreated, w.Body.String())
	}

	var resp dto.CreateAPIKeyResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Success {
		t.Error("success = false")
	}
	if resp.APIKey == "" {
		t.Fatal("response missing plaintext key")
	}
	if strings.ContainsAny(resp.APIKey, "+/=") {
		t.Errorf("plaintext key %q contains non-URL-safe characters", resp.APIKey)
	}
	if resp.ImportantNotice == "" {
		t.Error("response missing the store-it-now notice")
	}
	if len(repo.keys) != 1 {
		t.Fatalf("%d keys persisted, want 1", len(repo.keys))
	}
	if repo.keys[0].KeyHash == resp.APIKey {
		t.Error("repository stores the plaintext instead of the hash")
	}
}

func TestCreateAPIKeyEndpointMissingName(t *testing.T) {
	router := newIssuanceRouter(&memKeyRepo{})

	w := postJSON(t, router, "/api-key", `{"email": "dev@acme.example"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}

	var envelope dto.APIErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("failed to decode envelope: %v", err)
	}
	if envelope.StatusCode != http.StatusBadRequest {
		t.Errorf("envelope statusCode = %d, want %d", envelope.StatusCode, http.StatusBadRequest)
	}
	if len(envelope.Details) == 0 {
		t.Error("validation envelope has no field details")
	}
}

func TestCreateAPIKeyEndpointMalformedBody(t *testing.T) {
	router := newIssuanceRouter(&memKeyRepo{})

	tests := []struct {
		name string
		body string
	}{
		{"truncated json", `{"name": "Alice"`},
		{"type mismatch", `{"name": 123}`},
		{"empty body", ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(t, router, "/api-key", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want %d (body: %s)", w.Code, http.StatusBadRequest, w.Body.String())
			}

			var envelope dto.APIErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
				t.Fatalf("failed to decode envelope: %v", err)
			}
			if envelope.StatusCode != http.StatusBadRequest {
				t.Errorf("envelope statusCode = %d, want %d", envelope.StatusCode, http.StatusBadRequest)
			}
			if envelope.Message == "" {
				t.Error("envelope has no message")
			}
		})
	}
}

func TestCreateAPIKeyEndpointBadEmail(t *testing.T) {
	router := newIssuanceRouter(&memKeyRepo{})

	w := postJSON(t, router, "/api-key", `{"name": "Acme", "email": "nope"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestListAndRevokeEndpoints(t *testing.T) {
	repo := &memKeyRepo{}
	router := newIssuanceRouter(repo)

	if w := postJSON(t, router, "/api-key", `{"name": "Owner"}`); w.Code != http.StatusCreated {
		t.Fatalf("create status = %d, want %d", w.Code, http.StatusCreated)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/apikeys", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d, want %d", w.Code, http.StatusOK)
	}
	var listed []dto.APIKeyResponse
	if err := json.Unmarshal(w.Body.Bytes(), &listed); err != nil {
		t.Fatalf("failed to decode list response: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("listed %d keys, want 1", len(listed))
	}
	if !listed[0].IsActive {
		t.Error("fresh key listed as inactive")
	}
	if strings.Contains(w.Body.String(), repo.keys[0].KeyHash) {
		t.Error("key hash leaked into list response")
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/apikeys/1", nil))
	if w.Code != http.StatusNoContent {
		t.Fatalf("revoke status = %d, want %d", w.Code, http.StatusNoContent)
	}
	if repo.keys[0].IsActive {
		t.Error("key still active after revoke endpoint")
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/apikeys/not-a-number", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("revoke with bad id: status = %d, want %d", w.Code, http.StatusBadRequest)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/apikeys/999", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("revoke unknown id: status = %d, want %d", w.Code, http.StatusNotFound)
	}
}
