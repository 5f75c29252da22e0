// Package setactive позволяет администратору включать и отключать учётные записи.
package setactive

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/primetrade/internal/http/response"
	"github.com/magabrotheeeer/primetrade/internal/lib/sl"
	"github.com/magabrotheeeer/primetrade/internal/models"
	"github.com/magabrotheeeer/primetrade/internal/services/auth"
)

// Request новое состояние учётной записи.
type Request struct {
	IsActive *bool `json:"isActive" validate:"required"`
}

// Response ответ с обновлённым пользователем.
type Response struct {
	Message string          `json:"message" example:"User status updated"`
	User    models.UserView `json:"user"`
}

// Service меняет состояние учётной записи.
type Service interface {
	SetActive(ctx context.Context, userUID string, active bool) (*models.User, error)
}

// Handler обрабатывает PATCH /api/admin/users/{id}/active.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Включение и отключение пользователя
// @Description Меняет признак активности учётной записи. Только для администраторов.
// @Tags Admin
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param id path string true "UID пользователя"
// @Param request body Request true "Новое состояние"
// @Success 200 {object} Response
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Нет токена или токен недействителен"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /admin/users/{id}/active [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.setactive"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID := chi.URLParam(r, "id")
	if userUID == "" {
		log.Info("empty user id")
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("user id is required"))
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Info("validation failed", sl.Err(err))
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			render.Status(r, http.StatusUnprocessableEntity)
			render.JSON(w, r, response.ValidationError(verrs))
			return
		}
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	user, err := h.service.SetActive(r.Context(), userUID, *req.IsActive)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			log.Info("user not found", slog.String("user_uid", userUID))
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("User not found"))
			return
		}
		log.Error("failed to update user status", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Server error updating user"))
		return
	}

	log.Info("user status updated",
		slog.String("user_uid", user.UUID),
		slog.Bool("is_active", user.IsActive),
	)
	render.JSON(w, r, Response{
		Message: "User status updated",
		User:    user.View(),
	})
}
