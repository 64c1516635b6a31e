package memstorage

import (
	"context"
	"strings"
	"sync"

	"github.com/cinevault/movie-catalog-api/internal/domain/user"
	"github.com/cinevault/movie-catalog-api/internal/ierr"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// UserRepository keeps accounts in memory. The catalog only needs a couple of
// editor accounts for write endpoints, so there is no user table yet.
type UserRepository struct {
	mu    sync.RWMutex
	users map[string]*user.User
}

func NewUserRepository(adminUsername, adminPassword string) *UserRepository {
	repo := &UserRepository{
		users: make(map[string]*user.User),
	}

	if adminUsername != "" && adminPassword != "" {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
		adminUser := &user.User{
			ID:           uuid.New(),
			Username:     adminUsername,
			PasswordHash: string(hashedPassword),
			Role:         user.RoleAdmin,
		}
		repo.users[strings.ToLower(adminUser.Username)] = adminUser
	}

	return repo
}

var _ user.Repository = (*UserRepository)(nil)

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[strings.ToLower(username)]
	if !ok {
		return nil, ierr.ErrUserNotFound
	}

	userCopy := *u
	return &userCopy, nil
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := strings.ToLower(u.Username)
	if _, exists := r.users[key]; exists {
		return ierr.ErrUserAlreadyExists
	}

	userCopy := *u
	r.users[key] = &userCopy
	return nil
}

func CheckPassword(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}
