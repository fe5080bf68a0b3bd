// Package logout реализует HTTP-обработчик выхода из аккаунта.
package logout

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/cirec-website/internal/http/flash"
	"github.com/magabrotheeeer/cirec-website/internal/lib/sl"
)

const msgLoggedOut = "You have been logged out"

// Service отзывает токен сессии.
type Service interface {
	Logout(ctx context.Context, token string) error
}

// Cookie cookie сессии.
type Cookie interface {
	Token(r *http.Request) string
	Clear(w http.ResponseWriter)
}

// Handler обрабатывает выход пользователя.
type Handler struct {
	log     *slog.Logger
	service Service
	cookie  Cookie
}

// New создает Handler выхода.
func New(log *slog.Logger, service Service, cookie Cookie) *Handler {
	return &Handler{
		log:     log,
		service: service,
		cookie:  cookie,
	}
}

// ServeHTTP godoc
// @Summary Выход
// @Description Отзывает текущую сессию, удаляет cookie и перенаправляет на главную.
// @Tags Auth
// @Success 303 "Перенаправление на /"
// @Router /auth/logout [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if err := h.service.Logout(r.Context(), h.cookie.Token(r)); err != nil {
		log.Error("failed to revoke session", sl.Err(err))
	}
	h.cookie.Clear(w)

	flash.Add(w, r, flash.Info, msgLoggedOut)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
