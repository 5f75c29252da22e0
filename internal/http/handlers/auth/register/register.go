// Package register реализует HTTP-обработчик регистрации пользователя.
//
// Обработчик декодирует и валидирует тело запроса, создает учётную запись
// через Service и сразу возвращает токен сессии вместе с данными пользователя.
package register

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/primetrade/internal/http/response"
	"github.com/magabrotheeeer/primetrade/internal/lib/sl"
	"github.com/magabrotheeeer/primetrade/internal/models"
	"github.com/magabrotheeeer/primetrade/internal/services/auth"
)

// Request входные данные для регистрации.
//
// Вместо username можно передать name, тогда оно используется и как username.
type Request struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Name     string `json:"name" validate:"omitempty,min=2,max=50"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=72,maxbytes=72"`
}

// Response ответ при успешной регистрации.
type Response struct {
	Message string          `json:"message" example:"User registered successfully"`
	Token   string          `json:"token"`
	User    models.UserView `json:"user"`
}

// Service описывает регистрацию пользователя.
type Service interface {
	Register(ctx context.Context, in auth.RegisterInput) (*auth.Session, error)
}

// Handler обрабатывает HTTP-запросы регистрации.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: response.NewValidator(),
	}
}

// ServeHTTP godoc
// @Summary Регистрация пользователя
// @Description Создает учётную запись и возвращает JWT сессии.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Данные нового пользователя"
// @Success 201 {object} Response
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или пользователь уже существует"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 429 {object} response.ErrorResponse "Слишком много запросов"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /auth/register [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.register"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Name = strings.TrimSpace(req.Name)
	if req.Username == "" {
		req.Username = req.Name
	}
	log.Info("request body decoded", slog.String("username", req.Username))

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

	session, err := h.service.Register(r.Context(), auth.RegisterInput{
		Username: req.Username,
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, auth.ErrDuplicateIdentity) {
			log.Info("user already exists", slog.String("username", req.Username))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("User already exists"))
			return
		}
		log.Error("registration failed", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Server error during registration"))
		return
	}

	log.Info("user registered", slog.String("user_uid", session.User.UUID))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, Response{
		Message: "User registered successfully",
		Token:   session.Token,
		User:    session.User.View(),
	})
}
