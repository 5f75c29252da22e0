// Package me возвращает данные текущего аутентифицированного пользователя.
package me

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/primetrade/internal/http/middlewarectx"
	"github.com/magabrotheeeer/primetrade/internal/http/response"
	"github.com/magabrotheeeer/primetrade/internal/models"
)

// Response ответ с данными пользователя.
type Response struct {
	User models.UserView `json:"user"`
}

// Handler обрабатывает GET /api/auth/me.
type Handler struct {
	log *slog.Logger
}

// New создает новый Handler.
func New(log *slog.Logger) *Handler {
	return &Handler{log: log}
}

// ServeHTTP godoc
// @Summary Текущий пользователь
// @Description Возвращает профиль пользователя, которому принадлежит токен.
// @Tags Auth
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} Response
// @Failure 401 {object} response.ErrorResponse "Нет токена или токен недействителен"
// @Router /auth/me [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.me"

	user, ok := middlewarectx.UserFromContext(r.Context())
	if !ok {
		h.log.Warn("user missing in context",
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error(middlewarectx.MsgNoToken))
		return
	}

	render.JSON(w, r, Response{User: user.View()})
}
