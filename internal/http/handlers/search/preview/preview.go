// Package preview реализует публичный просмотр сокращенной версии статьи.
package preview

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/cirec-website/internal/http/response"
	"github.com/magabrotheeeer/cirec-website/internal/lib/sl"
	"github.com/magabrotheeeer/cirec-website/internal/models"
	"github.com/magabrotheeeer/cirec-website/internal/services/articles"
)

// Service возвращает превью статьи.
type Service interface {
	Preview(ctx context.Context, id int64) (*models.Preview, error)
}

// Handler обрабатывает запросы превью.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает Handler превью.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Превью статьи
// @Description Аннотация до 200 символов и текст до 300 символов. Доступно без входа.
// @Tags Search
// @Produce  json
// @Param id path int true "ID статьи"
// @Success 200 {object} models.Preview
// @Failure 404 {object} response.ErrorResponse "Статья не найдена"
// @Router /search/preview/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.search.preview"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		log.Info("invalid article id", sl.Err(err))
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("Article not found"))
		return
	}

	res, err := h.service.Preview(r.Context(), id)
	if errors.Is(err, articles.ErrArticleNotFound) {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("Article not found"))
		return
	}
	if err != nil {
		log.Error("failed to load preview", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	render.JSON(w, r, res)
}
