// Package apisearch реализует JSON API поиска для внешних клиентов.
package apisearch

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

// Service ищет статьи по заголовку и тексту.
type Service interface {
	APISearch(ctx context.Context, q string) ([]models.APIResult, error)
}

// Result тело ответа.
type Result struct {
	Results []models.APIResult `json:"results"`
}

// Handler обрабатывает /api/search.
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
// @Summary API поиска
// @Description До 20 опубликованных статей, заголовок или текст которых содержит q.
// @Tags API
// @Produce  json
// @Param q query string false "Строка поиска"
// @Success 200 {object} Result
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/search [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.api.apisearch"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	res, err := h.service.APISearch(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		log.Error("api search failed", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("search failed"))
		return
	}
	if res == nil {
		res = []models.APIResult{}
	}
	render.JSON(w, r, Result{Results: res})
}
