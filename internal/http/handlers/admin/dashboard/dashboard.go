// Package dashboard реализует сводку панели администратора.
package dashboard

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/cirec-website/internal/http/flash"
	"github.com/magabrotheeeer/cirec-website/internal/http/response"
	"github.com/magabrotheeeer/cirec-website/internal/lib/sl"
	"github.com/magabrotheeeer/cirec-website/internal/services/admin"
)

// Service возвращает сводку.
type Service interface {
	Dashboard(ctx context.Context) (*admin.Dashboard, error)
}

// Handler обрабатывает /admin/dashboard.
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
// @Summary Панель администратора
// @Description Число пользователей и статей, пять последних регистраций.
// @Tags Admin
// @Produce  json
// @Success 200 {object} response.Response{data=admin.Dashboard}
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /admin/dashboard [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.dashboard"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	res, err := h.service.Dashboard(r.Context())
	if err != nil {
		log.Error("failed to build dashboard", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}
	render.JSON(w, r, response.StatusOKWithData(res).WithFlashes(flash.Pop(w, r)))
}
