package middleware

import (
	"context"
	"strings"
	"time"

	"repair-crm/pkg/contextkeys"
	apperrors "repair-crm/pkg/errors"
	"repair-crm/pkg/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type AuthMiddleware struct {
	logger *zap.Logger
}

func NewAuthMiddleware(logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{logger: logger}
}

// Auth извлекает bearer-токен и кладёт его в контекст запроса.
// Подпись мы проверить не можем - секрет знает только CMS, она и является
// последней инстанцией. Здесь только формат заголовка и срок действия,
// чтобы не гонять заведомо протухшие токены по сети.
func (m *AuthMiddleware) Auth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			m.logger.Warn("AuthMiddleware: Пустой заголовок Authorization")
			return utils.ErrorResponse(c, apperrors.ErrEmptyAuthHeader, m.logger)
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			m.logger.Warn("AuthMiddleware: Неверный формат заголовка Authorization")
			return utils.ErrorResponse(c, apperrors.ErrInvalidAuthHeader, m.logger)
		}

		tokenString := parts[1]

		ctx := context.WithValue(c.Request().Context(), contextkeys.TokenKey, tokenString)

		parser := jwt.NewParser()
		token, _, err := parser.ParseUnverified(tokenString, jwt.MapClaims{})
		if err != nil {
			m.logger.Warn("AuthMiddleware: Токен не разбирается как JWT", zap.Error(err))
			return utils.ErrorResponse(c, apperrors.ErrUnauthorized, m.logger)
		}

		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			if exp, expErr := claims.GetExpirationTime(); expErr == nil && exp != nil {
				if exp.Before(time.Now()) {
					m.logger.Warn("AuthMiddleware: Токен просрочен")
					return utils.ErrorResponse(c, apperrors.ErrTokenExpired, m.logger)
				}
			}
			if sub, subErr := claims.GetSubject(); subErr == nil && sub != "" {
				ctx = context.WithValue(ctx, contextkeys.UserIDKey, sub)
			}
		}

		c.SetRequest(c.Request().WithContext(ctx))
		return next(c)
	}
}
