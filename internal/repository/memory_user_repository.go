package repository

import (
	"context"
	"creai_edu_backend/internal/model"
	"strings"
	"sync"
	"time"
)

type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]model.User
	order []string
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[string]model.User)}
}

// Create 邮箱唯一性检查与写入在同一把锁内完成
func (r *MemoryUserRepository) Create(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Email, user.Email) {
			return ErrDuplicate
		}
	}

	now := time.Now()
	if user.ID == "" {
		user.ID = model.GenerateUUID()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	r.users[user.ID] = *user
	r.order = append(r.order, user.ID)
	return nil
}

func (r *MemoryUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (r *MemoryUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryUserRepository) FindAll(ctx context.Context, params PageParams) (Page[model.User], error) {
	r.mu.RLock()
	users := make([]model.User, 0, len(r.order))
	for _, id := range r.order {
		users = append(users, r.users[id])
	}
	r.mu.RUnlock()

	return paginate(users, params, userKey), nil
}
