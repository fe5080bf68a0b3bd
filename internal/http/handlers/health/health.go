// Package health реализует проверку живости сервиса.
package health

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/cirec-website/internal/http/response"
	"github.com/magabrotheeeer/cirec-website/internal/lib/sl"
)

// Pinger проверяет доступность зависимости.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	log      *slog.Logger
	database Pinger
	cache    Pinger
}

// New создает Handler. Без базы сайт не работает, без redis работает
// с деградацией, поэтому недоступный кэш только отмечается в ответе.
func New(log *slog.Logger, database, cache Pinger) *Handler {
	return &Handler{
		log:      log,
		database: database,
		cache:    cache,
	}
}

// ServeHTTP godoc
// @Summary Проверка живости
// @Tags Main
// @Produce  json
// @Success 200 {object} response.Response
// @Failure 503 {object} response.ErrorResponse "База данных недоступна"
// @Router /health [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.health"

	if err := h.database.Ping(r.Context()); err != nil {
		h.log.Error("database is unavailable", slog.String("op", op), sl.Err(err))
		render.Status(r, http.StatusServiceUnavailable)
		render.JSON(w, r, response.Error("database unavailable"))
		return
	}

	cacheStatus := "ok"
	if err := h.cache.Ping(r.Context()); err != nil {
		h.log.Warn("cache is unavailable", slog.String("op", op), sl.Err(err))
		cacheStatus = "unavailable"
	}
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"status": "ok",
		"cache":  cacheStatus,
	}))
}
