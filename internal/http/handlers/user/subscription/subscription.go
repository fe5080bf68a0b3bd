// Package subscription отдает состояние подписки текущего пользователя.
package subscription

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/cirec-website/internal/http/flash"
	"github.com/magabrotheeeer/cirec-website/internal/http/middlewarectx"
	"github.com/magabrotheeeer/cirec-website/internal/http/response"
	"github.com/magabrotheeeer/cirec-website/internal/models"
	"github.com/magabrotheeeer/cirec-website/internal/services/subscription"
)

// Service вычисляет состояние подписки.
type Service interface {
	Overview(user *models.User) subscription.Overview
}

type Handler struct {
	service Service
}

func New(service Service) *Handler {
	return &Handler{service: service}
}

// ServeHTTP godoc
// @Summary Подписка
// @Description Статус подписки, даты начала и окончания и текущая дата.
// @Tags User
// @Produce  json
// @Success 200 {object} response.Response{data=subscription.Overview}
// @Router /user/subscription [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	user, _ := middlewarectx.UserFromContext(r.Context())
	render.JSON(w, r, response.StatusOKWithData(h.service.Overview(user)).WithFlashes(flash.Pop(w, r)))
}
