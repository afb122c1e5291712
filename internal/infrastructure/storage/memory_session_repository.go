// Package storage — хранилище сессий и запись готовых изображений.
package storage

import (
	"context"
	"sync"

	"uidiff-bot/internal/domain/entity"
	"uidiff-bot/internal/domain/port"
)

type stashedImage struct {
	name string
	data []byte
}

// MemorySessionRepository — потокобезопасное хранилище пользователей и
// отложенных первых скриншотов в памяти процесса.
type MemorySessionRepository struct {
	mu      sync.RWMutex
	users   map[int64]*entity.User
	pending map[int64]stashedImage
}

// NewMemorySessionRepository создаёт пустое хранилище.
func NewMemorySessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{
		users:   make(map[int64]*entity.User),
		pending: make(map[int64]stashedImage),
	}
}

var _ port.SessionRepository = (*MemorySessionRepository)(nil)

// Get возвращает пользователя по ID, создаёт нового если не найден.
func (r *MemorySessionRepository) Get(_ context.Context, userID, chatID int64) (*entity.User, error) {
	r.mu.RLock()
	user, ok := r.users[userID]
	r.mu.RUnlock()
	if ok {
		return user, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if user, ok := r.users[userID]; ok {
		return user, nil
	}
	user = entity.NewUser(userID, chatID)
	r.users[userID] = user
	return user, nil
}

// Save сохраняет состояние пользователя.
func (r *MemorySessionRepository) Save(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = user
	return nil
}

// StashImage запоминает первый скриншот начатого сравнения.
func (r *MemorySessionRepository) StashImage(_ context.Context, userID int64, name string, data []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending[userID] = stashedImage{name: name, data: data}
	return nil
}

// TakeImage забирает отложенный скриншот и очищает его.
func (r *MemorySessionRepository) TakeImage(_ context.Context, userID int64) (string, []byte, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.pending[userID]
	if !ok {
		return "", nil, false
	}
	delete(r.pending, userID)
	return s.name, s.data, true
}
