// Package search реализует HTTP-обработчик поиска по опубликованным статьям.
//
// Параметры берутся из строки запроса: q, date_range, company и product.
// Без q поиск не выполняется и возвращается пустой список.
package search

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/cirec-website/internal/http/flash"
	"github.com/magabrotheeeer/cirec-website/internal/http/response"
	"github.com/magabrotheeeer/cirec-website/internal/lib/sl"
	"github.com/magabrotheeeer/cirec-website/internal/models"
)

// Service описывает бизнес-логику поиска.
type Service interface {
	Search(ctx context.Context, f models.SearchFilter) ([]*models.Article, error)
}

// Result ответ страницы поиска.
type Result struct {
	Query     string            `json:"query"`
	DateRange string            `json:"date_range,omitempty"`
	Company   string            `json:"company,omitempty"`
	Product   string            `json:"product,omitempty"`
	Results   []*models.Article `json:"results"`
}

// Handler обрабатывает поисковые запросы.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает Handler поиска.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Поиск статей
// @Description Ищет подстроку в заголовке, тексте и аннотации опубликованных статей, новые первыми, не более 50.
// @Tags Search
// @Produce  json
// @Param q query string false "Строка поиска"
// @Param date_range query string false "1_month, 3_months, 6_months или 1_year"
// @Param company query string false "Компания"
// @Param product query string false "Продукт"
// @Success 200 {object} response.Response{data=Result}
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /search/ [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.search.search"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	q := r.URL.Query()
	filter := models.SearchFilter{
		Query:     q.Get("q"),
		DateRange: q.Get("date_range"),
		Company:   q.Get("company"),
		Product:   q.Get("product"),
	}

	res, err := h.service.Search(r.Context(), filter)
	if err != nil {
		log.Error("search failed", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("search failed"))
		return
	}
	if res == nil {
		res = []*models.Article{}
	}

	log.Info("search completed", slog.Int("results", len(res)))
	render.JSON(w, r, response.StatusOKWithData(Result{
		Query:     filter.Query,
		DateRange: filter.DateRange,
		Company:   filter.Company,
		Product:   filter.Product,
		Results:   res,
	}).WithFlashes(flash.Pop(w, r)))
}
