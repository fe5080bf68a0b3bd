// Package resetpassword реализует смену пароля по одноразовому токену из письма.
package resetpassword

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/cirec-website/internal/http/flash"
	"github.com/magabrotheeeer/cirec-website/internal/http/middlewarectx"
	"github.com/magabrotheeeer/cirec-website/internal/http/response"
	"github.com/magabrotheeeer/cirec-website/internal/lib/sl"
	"github.com/magabrotheeeer/cirec-website/internal/services/auth"
)

const msgPasswordReset = "Your password has been reset successfully"

// Request новый пароль и его подтверждение.
type Request struct {
	Password        string `json:"password" form:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password" validate:"required"`
}

// Service меняет пароль по токену.
type Service interface {
	ResetPassword(ctx context.Context, token, password, confirm string) error
}

// Handler обрабатывает смену пароля.
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
// @Summary Сброс пароля
// @Tags Auth
// @Accept  x-www-form-urlencoded,json
// @Produce  json
// @Param token path string true "Токен из письма"
// @Param request body Request true "Новый пароль"
// @Success 303 "Перенаправление на /auth/login"
// @Failure 400 {object} response.ErrorResponse "Недействительный токен"
// @Failure 422 {object} response.ErrorResponse "Пароли не совпадают"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /auth/reset-password/{token} [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.resetpassword"

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

	err := h.service.ResetPassword(r.Context(), chi.URLParam(r, "token"), req.Password, req.ConfirmPassword)
	switch {
	case errors.Is(err, auth.ErrPasswordMismatch):
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error("Passwords do not match"))
		return
	case errors.Is(err, auth.ErrInvalidResetToken):
		log.Info("invalid reset token")
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("Invalid or expired reset link"))
		return
	case err != nil:
		log.Error("failed to reset password", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	flash.Add(w, r, flash.Success, msgPasswordReset)
	http.Redirect(w, r, middlewarectx.LoginPath, http.StatusSeeOther)
}
