// Package profile реализует обновление имени и email текущего пользователя.
package profile

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/primetrade/internal/http/middlewarectx"
	"github.com/magabrotheeeer/primetrade/internal/http/response"
	"github.com/magabrotheeeer/primetrade/internal/lib/sl"
	"github.com/magabrotheeeer/primetrade/internal/models"
	"github.com/magabrotheeeer/primetrade/internal/services/auth"
)

// Request новые данные профиля.
type Request struct {
	Name  string `json:"name" validate:"required,min=2,max=50"`
	Email string `json:"email" validate:"required,email,max=255"`
}

// Response ответ при успешном обновлении профиля.
type Response struct {
	Message string          `json:"message" example:"Profile updated successfully"`
	User    models.UserView `json:"user"`
}

// Service описывает обновление профиля.
type Service interface {
	UpdateProfile(ctx context.Context, userUID, name, email string) (*models.User, error)
}

// Handler обрабатывает PUT /api/auth/profile.
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
		validate: response.NewValidator(),
	}
}

// ServeHTTP godoc
// @Summary Обновление профиля
// @Description Меняет имя и email текущего пользователя.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body Request true "Новые данные профиля"
// @Success 200 {object} Response
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или email уже занят"
// @Failure 401 {object} response.ErrorResponse "Нет токена или токен недействителен"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /auth/profile [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.profile"

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

	updated, err := h.service.UpdateProfile(r.Context(), user.UUID, req.Name, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrDuplicateIdentity):
			log.Info("email already in use")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Email already in use"))
		case errors.Is(err, auth.ErrUserNotFound):
			log.Info("user not found", slog.String("user_uid", user.UUID))
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("User not found"))
		default:
			log.Error("failed to update profile", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Server error updating profile"))
		}
		return
	}

	log.Info("profile updated", slog.String("user_uid", updated.UUID))
	render.JSON(w, r, Response{
		Message: "Profile updated successfully",
		User:    updated.View(),
	})
}
