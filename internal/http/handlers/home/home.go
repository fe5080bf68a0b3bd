// Package home реализует главную страницу.
package home

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
// @Summary Главная
// @Tags Main
// @Produce  json
// @Success 200 {object} response.Response
// @Router / [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	user, ok := middlewarectx.UserFromContext(r.Context())
	data := map[string]any{
		"authenticated": ok,
	}
	if ok {
		data["user"] = user
	}
	render.JSON(w, r, response.StatusOKWithData(data).WithFlashes(flash.Pop(w, r)))
}
