// Package upgrade реализует смену тарифа подписки.
//
// Оплата не проводится: подписка активируется сразу.
package upgrade

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/cirec-website/internal/http/flash"
	"github.com/magabrotheeeer/cirec-website/internal/http/middlewarectx"
	"github.com/magabrotheeeer/cirec-website/internal/http/response"
	"github.com/magabrotheeeer/cirec-website/internal/lib/sl"
	"github.com/magabrotheeeer/cirec-website/internal/models"
	"github.com/magabrotheeeer/cirec-website/internal/services/subscription"
)

const (
	// SubscriptionPath страница подписки.
	SubscriptionPath = "/user/subscription"

	msgUpgraded = "Subscription upgraded successfully!"
)

// Request форма смены тарифа.
type Request struct {
	PlanType      string `json:"plan_type" form:"plan_type"`
	PaymentMethod string `json:"payment_method" form:"payment_method"`
}

// Service активирует подписку.
type Service interface {
	Upgrade(ctx context.Context, user *models.User, plan, paymentMethod string) (*models.User, error)
}

// Handler обрабатывает /user/subscription/upgrade.
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
// @Summary Смена тарифа
// @Description basic продлевает подписку на 3 месяца, любой другой план на год.
// @Tags User
// @Accept  x-www-form-urlencoded,json
// @Produce  json
// @Param request body Request true "План и способ оплаты"
// @Success 303 "Перенаправление на /user/subscription"
// @Failure 400 {object} response.ErrorResponse "Некорректное тело запроса"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /user/subscription/upgrade [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.upgrade"

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

	user, _ := middlewarectx.UserFromContext(r.Context())
	updated, err := h.service.Upgrade(r.Context(), user, req.PlanType, req.PaymentMethod)
	if errors.Is(err, subscription.ErrUserNotFound) {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("user not found"))
		return
	}
	if err != nil {
		log.Error("failed to upgrade subscription", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	log.Info("subscription upgraded", slog.Int64("user_id", updated.ID), slog.String("plan", req.PlanType))
	flash.Add(w, r, flash.Success, msgUpgraded)
	http.Redirect(w, r, SubscriptionPath, http.StatusSeeOther)
}
