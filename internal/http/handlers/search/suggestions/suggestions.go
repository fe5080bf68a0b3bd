// Package suggestions реализует подсказки для строки поиска.
package suggestions

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/cirec-website/internal/lib/sl"
)

// Service возвращает подсказки по началу запроса.
type Service interface {
	Suggestions(ctx context.Context, q string) ([]string, error)
}

// Handler отдает подсказки массивом строк.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает Handler подсказок.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Подсказки поиска
// @Description Не более 8 строк: заголовки статей и фиксированные темы. Для запроса короче 2 символов пустой массив.
// @Tags Search
// @Produce  json
// @Param q query string false "Начало запроса"
// @Success 200 {array} string
// @Router /search/suggestions [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.search.suggestions"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	res, err := h.service.Suggestions(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		// подсказки не критичны, при ошибке отдаем пустой список
		log.Error("failed to build suggestions", sl.Err(err))
		res = nil
	}
	if res == nil {
		res = []string{}
	}
	render.JSON(w, r, res)
}
