package utils

import (
	"context"

	"repair-crm/pkg/contextkeys"
	apperrors "repair-crm/pkg/errors"
)

// GetTokenFromCtx возвращает bearer-токен, положенный в контекст middleware.
// Токен не наш: мы лишь проксируем его в CMS как есть.
func GetTokenFromCtx(ctx context.Context) (string, error) {
	token, ok := ctx.Value(contextkeys.TokenKey).(string)
	if !ok || token == "" {
		return "", apperrors.ErrTokenNotFoundInContext
	}
	return token, nil
}

// GetUserIDFromCtx возвращает subject токена, если middleware сумела его
// разобрать.
func GetUserIDFromCtx(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(contextkeys.UserIDKey).(string)
	return id, ok
}
