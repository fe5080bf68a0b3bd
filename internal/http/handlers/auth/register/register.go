// Package register реализует HTTP-обработчик регистрации нового пользователя.
package register

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/cirec-website/internal/http/flash"
	"github.com/magabrotheeeer/cirec-website/internal/http/middlewarectx"
	"github.com/magabrotheeeer/cirec-website/internal/http/response"
	"github.com/magabrotheeeer/cirec-website/internal/lib/sl"
	"github.com/magabrotheeeer/cirec-website/internal/models"
	"github.com/magabrotheeeer/cirec-website/internal/services/auth"
)

const msgRegistered = "Registration successful! Please check your email for account activation."

// Service описывает бизнес-логику регистрации.
type Service interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.User, error)
}

// Handler обрабатывает запросы на регистрацию.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает Handler регистрации.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Регистрация пользователя
// @Description Создает аккаунт со статусом подписки pending и перенаправляет на страницу входа.
// @Tags Auth
// @Accept  x-www-form-urlencoded,json
// @Produce  json
// @Param request body models.RegisterRequest true "Данные формы регистрации"
// @Success 303 "Перенаправление на /auth/login"
// @Failure 400 {object} response.ErrorResponse "Некорректное тело запроса"
// @Failure 409 {object} response.ErrorResponse "Email или username заняты"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации или пароли не совпадают"
// @Failure 500 {object} response.ErrorResponse "Ошибка сохранения"
// @Router /auth/register [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.register"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.RegisterRequest
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

	user, err := h.service.Register(r.Context(), req)
	var fieldErrs validator.ValidationErrors
	if errors.Is(err, auth.ErrInvalidRegistration) && errors.As(err, &fieldErrs) {
		log.Info("registration rejected", sl.Err(err))
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(fieldErrs))
		return
	}
	if err != nil {
		code, msg := errorStatus(err)
		if code == http.StatusInternalServerError {
			log.Error("registration failed", sl.Err(err))
		} else {
			log.Info("registration rejected", sl.Err(err))
		}
		render.Status(r, code)
		render.JSON(w, r, response.Error(msg))
		return
	}

	log.Info("user registered", slog.Int64("user_id", user.ID))
	flash.Add(w, r, flash.Success, msgRegistered)
	http.Redirect(w, r, middlewarectx.LoginPath, http.StatusSeeOther)
}

func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, auth.ErrEmailTaken):
		return http.StatusConflict, "Email already registered"
	case errors.Is(err, auth.ErrUsernameTaken):
		return http.StatusConflict, "Username already taken"
	case errors.Is(err, auth.ErrPasswordMismatch):
		return http.StatusUnprocessableEntity, "Passwords do not match"
	case errors.Is(err, auth.ErrInvalidRegistration):
		return http.StatusUnprocessableEntity, "Invalid registration data"
	default:
		return http.StatusInternalServerError, "Registration failed. Please try again."
	}
}
