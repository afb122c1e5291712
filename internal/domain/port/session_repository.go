package port

import (
	"context"

	"uidiff-bot/internal/domain/entity"
)

// SessionRepository интерфейс хранилища пользователей и незавершённых сравнений
type SessionRepository interface {
	// Get возвращает пользователя по ID, создаёт нового если не найден
	Get(ctx context.Context, userID, chatID int64) (*entity.User, error)

	// Save сохраняет состояние пользователя
	Save(ctx context.Context, user *entity.User) error

	// StashImage запоминает первый скриншот начатого сравнения
	StashImage(ctx context.Context, userID int64, name string, data []byte) error

	// TakeImage забирает отложенный скриншот и очищает его
	TakeImage(ctx context.Context, userID int64) (name string, data []byte, ok bool)
}
