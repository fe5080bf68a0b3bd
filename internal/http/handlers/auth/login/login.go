// Package login реализует HTTP-обработчик входа пользователя по email и паролю.
//
// При успешной аутентификации токен сессии записывается в HttpOnly cookie,
// а пользователь перенаправляется на страницу из параметра next или в личный кабинет.
package login

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/cirec-website/internal/http/response"
	"github.com/magabrotheeeer/cirec-website/internal/lib/sl"
	"github.com/magabrotheeeer/cirec-website/internal/services/auth"
)

// DefaultRedirect страница после входа, если next не задан.
const DefaultRedirect = "/user/dashboard"

// Request входные данные формы входа.
type Request struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
	Next     string `json:"next,omitempty" form:"next"`
}

// Service описывает бизнес-логику входа.
type Service interface {
	Login(ctx context.Context, email, password string) (*auth.Session, error)
}

// Cookie записывает токен сессии в ответ.
type Cookie interface {
	Set(w http.ResponseWriter, token string, expiresAt time.Time)
}

// Handler обрабатывает запросы на вход.
type Handler struct {
	log      *slog.Logger
	service  Service
	cookie   Cookie
	validate *validator.Validate
}

// New создает Handler входа.
func New(log *slog.Logger, service Service, cookie Cookie) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		cookie:   cookie,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Вход пользователя
// @Description Проверяет email и пароль, выставляет cookie сессии и перенаправляет на next или /user/dashboard.
// @Tags Auth
// @Accept  x-www-form-urlencoded,json
// @Produce  json
// @Param next query string false "Локальный путь для перенаправления после входа"
// @Param request body Request true "Учетные данные"
// @Success 303 "Перенаправление после входа"
// @Failure 400 {object} response.ErrorResponse "Некорректное тело запроса"
// @Failure 401 {object} response.ErrorResponse "Неверный email или пароль"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /auth/login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"

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

	session, err := h.service.Login(r.Context(), req.Email, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		log.Info("invalid credentials")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("Invalid email or password"))
		return
	}
	if err != nil {
		log.Error("login failed", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	h.cookie.Set(w, session.Token, session.ExpiresAt)
	log.Info("login success", slog.Int64("user_id", session.User.ID))

	next := r.URL.Query().Get("next")
	if next == "" {
		next = req.Next
	}
	http.Redirect(w, r, SafeNext(next), http.StatusSeeOther)
}

// SafeNext возвращает next, если это локальный путь, иначе DefaultRedirect.
func SafeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.Contains(next, `\`) {
		return DefaultRedirect
	}
	return next
}
