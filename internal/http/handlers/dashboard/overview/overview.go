// Package overview отдаёт сводные данные торгового дашборда текущего пользователя.
package overview

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/primetrade/internal/http/middlewarectx"
	"github.com/magabrotheeeer/primetrade/internal/http/response"
	"github.com/magabrotheeeer/primetrade/internal/lib/sl"
	"github.com/magabrotheeeer/primetrade/internal/models"
)

// Response ответ с данными дашборда.
type Response struct {
	Success bool                  `json:"success" example:"true"`
	Data    *models.DashboardData `json:"data"`
}

// Service формирует данные дашборда.
type Service interface {
	Overview(ctx context.Context, user *models.User) (*models.DashboardData, error)
}

// Handler обрабатывает GET /api/dashboard.
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
// @Summary Дашборд
// @Description Возвращает торговую статистику, портфель, последние действия и быстрые действия.
// @Tags Dashboard
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} Response
// @Failure 401 {object} response.ErrorResponse "Нет токена или токен недействителен"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /dashboard [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.dashboard.overview"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	user, ok := middlewarectx.UserFromContext(r.Context())
	if !ok {
		log.Warn("user missing in context")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error(middlewarectx.MsgNoToken))
		return
	}

	data, err := h.service.Overview(r.Context(), user)
	if err != nil {
		log.Error("failed to build dashboard", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Server error getting dashboard data"))
		return
	}

	render.JSON(w, r, Response{Success: true, Data: data})
}
