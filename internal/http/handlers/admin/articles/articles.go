// Package articles реализует список всех статей, включая неопубликованные.
package articles

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/cirec-website/internal/http/response"
	"github.com/magabrotheeeer/cirec-website/internal/lib/sl"
	"github.com/magabrotheeeer/cirec-website/internal/models"
)

type Service interface {
	Articles(ctx context.Context) ([]*models.Article, error)
}

type Handler struct {
	log     *slog.Logger
	service Service
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Все статьи
// @Tags Admin
// @Produce  json
// @Success 200 {object} response.Response
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /admin/articles [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.articles"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	res, err := h.service.Articles(r.Context())
	if err != nil {
		log.Error("failed to list articles", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}
	if res == nil {
		res = []*models.Article{}
	}
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"articles": res,
	}))
}
