// Package middlewarectx содержит HTTP middleware сайта: загрузку сессии,
// проверки доступа, ограничение частоты запросов и метрики.
package middlewarectx

import (
	"context"

	"github.com/magabrotheeeer/cirec-website/internal/models"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// User ключ текущего пользователя в контексте.
const User Key = "user"

// WithUser кладет пользователя в контекст.
func WithUser(ctx context.Context, u *models.User) context.Context {
	return context.WithValue(ctx, User, u)
}

// UserFromContext возвращает пользователя текущей сессии, если он есть.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	u, ok := ctx.Value(User).(*models.User)
	return u, ok && u != nil
}
