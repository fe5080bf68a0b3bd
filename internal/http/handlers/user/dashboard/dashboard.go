// Package dashboard реализует личный кабинет пользователя.
package dashboard

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/cirec-website/internal/http/flash"
	"github.com/magabrotheeeer/cirec-website/internal/http/middlewarectx"
	"github.com/magabrotheeeer/cirec-website/internal/http/response"
	"github.com/magabrotheeeer/cirec-website/internal/lib/sl"
	"github.com/magabrotheeeer/cirec-website/internal/models"
)

// Service возвращает последние опубликованные статьи.
type Service interface {
	Recent(ctx context.Context) ([]*models.Article, error)
}

// Handler обрабатывает /user/dashboard.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Личный кабинет
// @Description Данные пользователя и 10 последних опубликованных статей.
// @Tags User
// @Produce  json
// @Success 200 {object} response.Response
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /user/dashboard [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.dashboard"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	user, _ := middlewarectx.UserFromContext(r.Context())

	res, err := h.service.Recent(r.Context())
	if err != nil {
		log.Error("failed to load recent articles", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}
	if res == nil {
		res = []*models.Article{}
	}
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"user":     user,
		"articles": res,
	}).WithFlashes(flash.Pop(w, r)))
}
