// Package logout завершает сессию пользователя.
//
// Токен отзывается до истечения срока действия, если включён список отозванных
// токенов. Ответ всегда успешный, клиент в любом случае удаляет свой токен.
package logout

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/primetrade/internal/http/middlewarectx"
	"github.com/magabrotheeeer/primetrade/internal/http/response"
	"github.com/magabrotheeeer/primetrade/internal/lib/jwt"
	"github.com/magabrotheeeer/primetrade/internal/lib/sl"
)

// Service описывает отзыв токена.
type Service interface {
	Logout(ctx context.Context, claims *jwt.CustomClaims) error
}

// Handler обрабатывает POST /api/auth/logout.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Выход из системы
// @Description Отзывает текущий токен.
// @Tags Auth
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.MessageResponse
// @Failure 401 {object} response.ErrorResponse "Нет токена или токен недействителен"
// @Router /auth/logout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	claims, ok := middlewarectx.ClaimsFromContext(r.Context())
	if !ok {
		log.Warn("claims missing in context")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error(middlewarectx.MsgNoToken))
		return
	}

	if err := h.service.Logout(r.Context(), claims); err != nil {
		log.Error("failed to revoke token", sl.Err(err), slog.String("jti", claims.ID))
	} else {
		log.Info("user logged out", slog.String("user_uid", claims.UserUID()))
	}

	render.JSON(w, r, response.MessageResponse{Message: "Logged out successfully"})
}
