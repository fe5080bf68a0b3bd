// Package upload реализует загрузку документа администратором.
//
// Документ приходит в multipart-форме в поле file вместе с title, summary, author
// и is_published. По документу создается статья.
package upload

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/cirec-website/internal/http/flash"
	"github.com/magabrotheeeer/cirec-website/internal/http/response"
	"github.com/magabrotheeeer/cirec-website/internal/lib/sl"
	"github.com/magabrotheeeer/cirec-website/internal/models"
	"github.com/magabrotheeeer/cirec-website/internal/services/admin"
)

const (
	// DashboardPath страница, на которую возвращается администратор.
	DashboardPath = "/admin/dashboard"

	msgUploaded = "Article uploaded successfully!"

	// запас на поля формы сверх размера файла
	formOverhead = 1 << 20
)

// Service сохраняет документ и создает статью.
type Service interface {
	Upload(ctx context.Context, req admin.UploadRequest) (int64, error)
}

// Handler обрабатывает загрузку.
type Handler struct {
	log         *slog.Logger
	service     Service
	maxFileSize int64
}

// New создает Handler. maxFileSize ограничивает размер тела запроса.
func New(log *slog.Logger, service Service, maxFileSize int64) *Handler {
	return &Handler{
		log:         log,
		service:     service,
		maxFileSize: maxFileSize,
	}
}

// ServeHTTP godoc
// @Summary Загрузка документа
// @Description Сохраняет файл (.txt, .md, .pdf, .doc, .docx) и создает по нему статью.
// @Tags Admin
// @Accept  multipart/form-data
// @Produce  json
// @Param file formData file true "Документ"
// @Param title formData string true "Заголовок"
// @Param summary formData string false "Аннотация"
// @Param author formData string false "Автор"
// @Param is_published formData bool false "Опубликовать сразу"
// @Success 303 "Перенаправление на /admin/dashboard"
// @Failure 400 {object} response.ErrorResponse "Нет файла"
// @Failure 413 {object} response.ErrorResponse "Файл слишком большой"
// @Failure 422 {object} response.ErrorResponse "Неподдерживаемый тип, пустой или слишком длинный заголовок"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /admin/content/upload [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.upload"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	r.Body = http.MaxBytesReader(w, r.Body, h.maxFileSize+formOverhead)
	if err := r.ParseMultipartForm(formOverhead); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			render.Status(r, http.StatusRequestEntityTooLarge)
			render.JSON(w, r, response.Error("File too large"))
			return
		}
		log.Error("failed to parse multipart form", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid multipart form"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		log.Info("no file in upload", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("No file selected"))
		return
	}
	defer file.Close()

	id, err := h.service.Upload(r.Context(), admin.UploadRequest{
		Title:       r.FormValue("title"),
		Summary:     r.FormValue("summary"),
		Author:      r.FormValue("author"),
		Filename:    header.Filename,
		File:        file,
		IsPublished: r.FormValue("is_published") == "" || models.Checked(r.FormValue("is_published")),
	})
	switch {
	case errors.Is(err, admin.ErrFileTooLarge):
		render.Status(r, http.StatusRequestEntityTooLarge)
		render.JSON(w, r, response.Error("File too large"))
		return
	case errors.Is(err, admin.ErrUnsupportedFile):
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error("Unsupported file type"))
		return
	case errors.Is(err, admin.ErrEmptyTitle):
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error("Title is required"))
		return
	case errors.Is(err, admin.ErrFieldTooLong):
		log.Info("upload rejected", sl.Err(err))
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error("Title or author is too long"))
		return
	case err != nil:
		log.Error("upload failed", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Upload failed"))
		return
	}

	log.Info("document uploaded", slog.Int64("article_id", id))
	flash.Add(w, r, flash.Success, msgUploaded)
	http.Redirect(w, r, DashboardPath, http.StatusSeeOther)
}
