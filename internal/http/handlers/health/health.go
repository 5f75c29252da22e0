// Package health содержит служебные обработчики: корневой маршрут и проверку состояния.
package health

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/primetrade/internal/http/response"
	"github.com/magabrotheeeer/primetrade/internal/lib/sl"
)

// IndexResponse ответ корневого маршрута.
type IndexResponse struct {
	Message   string    `json:"message" example:"PrimeTrade API is running!"`
	Timestamp time.Time `json:"timestamp"`
}

// Response ответ проверки состояния.
type Response struct {
	Status    string    `json:"status" example:"OK"`
	Timestamp time.Time `json:"timestamp"`
}

// Pinger проверяет доступность зависимости, например базы данных.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Handler обрабатывает GET /api/health.
type Handler struct {
	log    *slog.Logger
	pinger Pinger
	now    func() time.Time
}

// New создает Handler. pinger может быть nil, тогда проверяется только сам процесс.
func New(log *slog.Logger, pinger Pinger) *Handler {
	return &Handler{
		log:    log,
		pinger: pinger,
		now:    time.Now,
	}
}

// ServeHTTP godoc
// @Summary Проверка состояния
// @Description Сообщает, что сервис запущен и база данных доступна.
// @Tags Service
// @Produce  json
// @Success 200 {object} Response
// @Failure 503 {object} response.ErrorResponse "База данных недоступна"
// @Router /health [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.health"

	if h.pinger != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.pinger.PingContext(ctx); err != nil {
			h.log.Error("database is unavailable",
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
				sl.Err(err),
			)
			render.Status(r, http.StatusServiceUnavailable)
			render.JSON(w, r, response.Error("Database unavailable"))
			return
		}
	}

	render.JSON(w, r, Response{
		Status:    "OK",
		Timestamp: h.now().UTC(),
	})
}

// Index возвращает обработчик корневого маршрута.
func (h *Handler) Index() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, IndexResponse{
			Message:   "PrimeTrade API is running!",
			Timestamp: h.now().UTC(),
		})
	}
}
