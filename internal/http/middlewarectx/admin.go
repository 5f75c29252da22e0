package middlewarectx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/primetrade/internal/http/response"
	"github.com/magabrotheeeer/primetrade/internal/lib/sl"
	"github.com/magabrotheeeer/primetrade/internal/services/auth"
)

// MsgNotAdmin ответ на запрос без прав администратора.
const MsgNotAdmin = "Not authorized as an admin"

// AdminOnly пропускает запрос дальше только для пользователя с ролью admin.
// Должен стоять после JWTMiddleware.
func AdminOnly(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, _ := UserFromContext(r.Context())
			if err := auth.RequireAdmin(user); err != nil {
				log.Info("admin access denied",
					slog.String("op", "middlewarectx.AdminOnly"),
					slog.String("request_id", middleware.GetReqID(r.Context())),
					sl.Err(err),
				)
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error(MsgNotAdmin))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
