// Package forgotpassword реализует запрос ссылки для сброса пароля.
//
// Ответ не зависит от того, существует ли аккаунт с указанным email.
package forgotpassword

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/cirec-website/internal/http/flash"
	"github.com/magabrotheeeer/cirec-website/internal/http/middlewarectx"
	"github.com/magabrotheeeer/cirec-website/internal/http/response"
	"github.com/magabrotheeeer/cirec-website/internal/lib/sl"
)

const msgResetSent = "If an account with that email exists, a password reset link has been sent."

// Request email аккаунта.
type Request struct {
	Email string `json:"email" form:"email" validate:"required,email"`
}

// Service создает токен сброса пароля.
type Service interface {
	ForgotPassword(ctx context.Context, email string) error
}

// Handler обрабатывает запрос сброса пароля.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Запрос сброса пароля
// @Description Отправляет событие со ссылкой сброса, если аккаунт существует. Ответ одинаков для любого email.
// @Tags Auth
// @Accept  x-www-form-urlencoded,json
// @Produce  json
// @Param request body Request true "Email аккаунта"
// @Success 303 "Перенаправление на /auth/login"
// @Failure 400 {object} response.ErrorResponse "Некорректное тело запроса"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /auth/forgot-password [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.forgotpassword"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := render.Decode(r, &req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	if err := h.service.ForgotPassword(r.Context(), req.Email); err != nil {
		log.Error("failed to issue reset token", sl.Err(err))
	}

	flash.Add(w, r, flash.Info, msgResetSent)
	http.Redirect(w, r, middlewarectx.LoginPath, http.StatusSeeOther)
}
