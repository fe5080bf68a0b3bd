// Package profile отдает профиль текущего пользователя.
package profile

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/cirec-website/internal/http/flash"
	"github.com/magabrotheeeer/cirec-website/internal/http/middlewarectx"
	"github.com/magabrotheeeer/cirec-website/internal/http/response"
)

type Handler struct{}

func New() *Handler {
	return &Handler{}
}

// ServeHTTP godoc
// @Summary Профиль
// @Tags User
// @Produce  json
// @Success 200 {object} response.Response{data=models.User}
// @Router /user/profile [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	user, _ := middlewarectx.UserFromContext(r.Context())
	render.JSON(w, r, response.StatusOKWithData(user).WithFlashes(flash.Pop(w, r)))
}
