// Package subscription реализует переходы статуса подписки пользователя.
package subscription

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/cirec-website/internal/lib/metrics"
	"github.com/magabrotheeeer/cirec-website/internal/lib/period"
	"github.com/magabrotheeeer/cirec-website/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/cirec-website/internal/lib/sl"
	"github.com/magabrotheeeer/cirec-website/internal/models"
	"github.com/magabrotheeeer/cirec-website/internal/storage"
)

var ErrUserNotFound = errors.New("user not found")

// UserStore хранилище пользователей.
type UserStore interface {
	UpdateSubscription(ctx context.Context, id int64, status string, start, end time.Time) error
}

// Publisher публикует события подписки.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, message any) error
}

// UpgradedEvent публикуется после смены тарифа.
type UpgradedEvent struct {
	UserID        int64     `json:"user_id"`
	Plan          string    `json:"plan"`
	PaymentMethod string    `json:"payment_method"`
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
}

// Overview состояние подписки для страницы пользователя.
type Overview struct {
	Status          string     `json:"subscription_status"`
	EffectiveStatus string     `json:"effective_status"`
	Start           *time.Time `json:"subscription_start,omitempty"`
	End             *time.Time `json:"subscription_end,omitempty"`
	CurrentDate     time.Time  `json:"current_date"`
}

// Service сервис подписок.
type Service struct {
	log     *slog.Logger
	users   UserStore
	events  Publisher
	metrics *metrics.Metrics
	now     func() time.Time
}

// New создает сервис подписок. metrics может быть nil.
func New(log *slog.Logger, users UserStore, events Publisher, m *metrics.Metrics) *Service {
	return &Service{
		log:     log,
		users:   users,
		events:  events,
		metrics: m,
		now:     time.Now,
	}
}

// Upgrade активирует подписку без оплаты. Начало и конец считаются от одного момента:
// basic продлевает на три календарных месяца, остальные планы на год.
func (s *Service) Upgrade(ctx context.Context, user *models.User, plan, paymentMethod string) (*models.User, error) {
	const op = "subscription.Upgrade"
	log := s.log.With(slog.String("op", op), slog.Int64("user_id", user.ID))

	start := s.now().UTC()
	end := period.PlanEnd(start, plan)

	err := s.users.UpdateSubscription(ctx, user.ID, models.SubscriptionActive, start, end)
	if errors.Is(err, storage.ErrUserNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	updated := *user
	updated.SubscriptionStatus = models.SubscriptionActive
	updated.SubscriptionStart = &start
	updated.SubscriptionEnd = &end

	s.metrics.SubscriptionUpgraded(plan)
	log.Info("subscription upgraded", slog.String("plan", plan), slog.Time("end", end))

	event := UpgradedEvent{UserID: user.ID, Plan: plan, PaymentMethod: paymentMethod, Start: start, End: end}
	if err := s.events.Publish(ctx, rabbitmq.EventSubscriptionUpgraded, event); err != nil {
		log.Warn("failed to publish upgrade event", sl.Err(err))
	}
	return &updated, nil
}

// Effective возвращает статус с учетом даты окончания.
// Активная подписка с прошедшей датой окончания считается expired.
func Effective(user *models.User, now time.Time) string {
	if user.SubscriptionStatus == models.SubscriptionActive &&
		user.SubscriptionEnd != nil && user.SubscriptionEnd.Before(now) {
		return models.SubscriptionExpired
	}
	return user.SubscriptionStatus
}

// Overview возвращает состояние подписки пользователя на текущий момент.
func (s *Service) Overview(user *models.User) Overview {
	now := s.now().UTC()
	return Overview{
		Status:          user.SubscriptionStatus,
		EffectiveStatus: Effective(user, now),
		Start:           user.SubscriptionStart,
		End:             user.SubscriptionEnd,
		CurrentDate:     now,
	}
}
