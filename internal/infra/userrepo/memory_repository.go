package userrepo

import (
	"context"
	"sync"
	"time"

	"github.com/sameer-hoda/mynextpr-sub001/internal/domain/auth"
)

// MemoryRepository keeps accounts in process memory. It backs local runs
// and tests when no postgres DSN is configured.
type MemoryRepository struct {
	mu      sync.RWMutex
	byEmail map[string]auth.User
	byID    map[int64]auth.User
	nextID  int64
}

// NewMemoryRepository is a wire provider for the in-memory user store.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byEmail: make(map[string]auth.User),
		byID:    make(map[int64]auth.User),
	}
}

var _ auth.Repository = (*MemoryRepository)(nil)

// Create inserts the account, enforcing email uniqueness the way the
// postgres unique index does.
func (r *MemoryRepository) Create(_ context.Context, email, nickname, passwordHash string) (auth.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byEmail[email]; taken {
		return auth.User{}, auth.ErrEmailExists
	}
	r.nextID++
	user := auth.User{
		ID:           r.nextID,
		Email:        email,
		Nickname:     nickname,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	r.byEmail[email] = user
	r.byID[user.ID] = user
	return user, nil
}

func (r *MemoryRepository) GetByEmail(_ context.Context, email string) (auth.User, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.byEmail[email]
	return user, ok, nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id int64) (auth.User, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.byID[id]
	return user, ok, nil
}
