// Package middlewarectx содержит HTTP middleware аутентификации и авторизации.
//
// JWTMiddleware проверяет bearer-токен в заголовке Authorization, находит
// пользователя и кладёт его вместе с claims токена в контекст запроса.
// AdminOnly пропускает только администраторов, RateLimitMiddleware
// ограничивает частоту запросов.
package middlewarectx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/primetrade/internal/http/response"
	"github.com/magabrotheeeer/primetrade/internal/lib/jwt"
	"github.com/magabrotheeeer/primetrade/internal/lib/sl"
	"github.com/magabrotheeeer/primetrade/internal/models"
	"github.com/magabrotheeeer/primetrade/internal/services/auth"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

const (
	// User ключ для *models.User в контексте
	User Key = "user"
	// Claims ключ для *jwt.CustomClaims в контексте
	Claims Key = "claims"
)

// Сообщения ответов middleware.
const (
	MsgNoToken         = "Not authorized to access this route"
	MsgTokenFailed     = "Not authorized, token failed"
	MsgUserNotFound    = "Not authorized, user not found"
	MsgDeactivated     = "Account has been deactivated"
	MsgAuthServerError = "Server error in authentication"
)

// Service описывает проверку токена и поиск пользователя.
type Service interface {
	Authenticate(ctx context.Context, token string) (*models.User, *jwt.CustomClaims, error)
}

// JWTMiddleware возвращает HTTP middleware, который проверяет JWT в заголовке Authorization.
//
// Каждая ветка проверки завершает запрос, хранилище пользователей не изменяется.
func JWTMiddleware(svc Service, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.JWTMiddleware"
			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			tokenStr, ok := bearerToken(r)
			if !ok {
				log.Info("missing or invalid authorization header")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error(MsgNoToken))
				return
			}

			user, claims, err := svc.Authenticate(r.Context(), tokenStr)
			if err != nil {
				status, msg := http.StatusInternalServerError, MsgAuthServerError
				switch {
				case errors.Is(err, auth.ErrUnauthenticated):
					status, msg = http.StatusUnauthorized, MsgTokenFailed
				case errors.Is(err, auth.ErrUserNotFound):
					status, msg = http.StatusUnauthorized, MsgUserNotFound
				case errors.Is(err, auth.ErrUserDeactivated):
					status, msg = http.StatusUnauthorized, MsgDeactivated
				}
				if status == http.StatusInternalServerError {
					log.Error("failed to authenticate request", sl.Err(err))
				} else {
					log.Info("request rejected", slog.String("reason", msg))
				}
				render.Status(r, status)
				render.JSON(w, r, response.Error(msg))
				return
			}

			ctx := context.WithValue(r.Context(), User, user)
			ctx = context.WithValue(ctx, Claims, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	return token, token != ""
}

// UserFromContext возвращает пользователя, положенного в контекст JWTMiddleware.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	u, ok := ctx.Value(User).(*models.User)
	return u, ok && u != nil
}

// ClaimsFromContext возвращает claims токена текущего запроса.
func ClaimsFromContext(ctx context.Context) (*jwt.CustomClaims, bool) {
	c, ok := ctx.Value(Claims).(*jwt.CustomClaims)
	return c, ok && c != nil
}
