// Package article реализует чтение статьи с учетом просмотра.
//
// Каждый успешный запрос увеличивает view_count ровно на единицу.
package article

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/cirec-website/internal/http/middlewarectx"
	"github.com/magabrotheeeer/cirec-website/internal/http/response"
	"github.com/magabrotheeeer/cirec-website/internal/lib/sl"
	"github.com/magabrotheeeer/cirec-website/internal/models"
	"github.com/magabrotheeeer/cirec-website/internal/services/articles"
)

// Service засчитывает просмотр и возвращает статью.
type Service interface {
	View(ctx context.Context, id int64, viewer *models.User) (*models.Article, error)
}

// Handler обрабатывает /user/article/{id}.
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
// @Summary Статья
// @Description Полный текст статьи. Увеличивает счетчик просмотров.
// @Tags User
// @Produce  json
// @Param id path int true "ID статьи"
// @Success 200 {object} response.Response{data=models.Article}
// @Failure 404 {object} response.ErrorResponse "Статья не найдена"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /user/article/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.article"

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

	viewer, _ := middlewarectx.UserFromContext(r.Context())
	res, err := h.service.View(r.Context(), id, viewer)
	if errors.Is(err, articles.ErrArticleNotFound) {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("Article not found"))
		return
	}
	if err != nil {
		log.Error("failed to view article", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(res))
}
