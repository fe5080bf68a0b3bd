// Package form отдает страницы форм входа, регистрации и восстановления пароля
// вместе с ожидающими flash-сообщениями.
package form

import (
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/cirec-website/internal/http/flash"
	"github.com/magabrotheeeer/cirec-website/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/cirec-website/internal/http/response"
)

// Имена форм.
const (
	Login          = "login"
	Register       = "register"
	ForgotPassword = "forgot_password"
	ResetPassword  = "reset_password"
)

// Handler отдает данные одной формы.
type Handler struct {
	name string
}

// New создает Handler для формы name.
func New(name string) *Handler {
	return &Handler{name: name}
}

// ServeHTTP godoc
// @Summary Страница формы
// @Description Возвращает имя формы, локальный next и токен сброса, если они есть, и flash-сообщения.
// @Tags Auth
// @Produce  json
// @Param next query string false "Куда перейти после входа"
// @Success 200 {object} response.Response
// @Router /auth/login [get]
// @Router /auth/register [get]
// @Router /auth/forgot-password [get]
// @Router /auth/reset-password/{token} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	data := map[string]any{
		"form": h.name,
	}
	if next := r.URL.Query().Get("next"); next != "" && login.SafeNext(next) == next {
		data["next"] = next
	}
	if token := chi.URLParam(r, "token"); token != "" {
		data["token"] = token
	}
	render.JSON(w, r, response.StatusOKWithData(data).WithFlashes(flash.Pop(w, r)))
}
