// Package access реализует проверку доступа по подписке: загружает снимок
// подписки пользователя, применяет правила entitlement и возвращает решение
// с причиной отказа. Каждая проверка журналируется в режиме best-effort.
package access

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fambudgeteer/family-budget/internal/entitlement"
	"github.com/fambudgeteer/family-budget/internal/lib/sl"
	"github.com/fambudgeteer/family-budget/internal/metrics"
	"github.com/fambudgeteer/family-budget/internal/models"
	"github.com/fambudgeteer/family-budget/internal/rabbitmq"
)

// Ошибки проверки доступа. Обе означают отказ без решения по существу:
// проверка не дошла до правил entitlement.
var (
	// ErrNoUser нет аутентифицированного пользователя, запрос к хранилищу не выполнялся.
	ErrNoUser = errors.New("no authenticated user")
	// ErrSubscriptionFetch не удалось загрузить подписку, доступ закрыт.
	ErrSubscriptionFetch = errors.New("failed to load subscription")
)

// SubscriptionProvider определяет доступ к подписке пользователя в хранилище.
type SubscriptionProvider interface {
	// GetSubscription возвращает подписку пользователя или ошибку, если строки нет.
	GetSubscription(ctx context.Context, userUID string) (*models.Subscription, error)
}

// EventPublisher публикует события журнала доступа.
type EventPublisher interface {
	Publish(routingKey string, message any) error
}

// Clock возвращает текущее время; подменяется в тестах.
type Clock func() time.Time

// Service проверяет доступ пользователя к возможностям, требующим подписки.
// Вызовы независимы и идемпотентны, общего изменяемого состояния нет.
type Service struct {
	subs   SubscriptionProvider
	events EventPublisher
	log    *slog.Logger
	now    Clock
}

// New создает новый экземпляр Service.
func New(subs SubscriptionProvider, events EventPublisher, log *slog.Logger, now Clock) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		subs:   subs,
		events: events,
		log:    log,
		now:    now,
	}
}

// ValidateAccess решает, разрешён ли пользователю доступ к возможности,
// требующей план requiredPlan.
//
// Отсутствие пользователя и ошибка загрузки подписки закрывают доступ
// без обращения к правилам entitlement. Решение по существу журналируется
// через LogAccess; ошибка журнала никогда не меняет результат.
func (s *Service) ValidateAccess(ctx context.Context, userUID, requiredPlan, action, resource string) (entitlement.Decision, error) {
	const op = "access.ValidateAccess"

	if userUID == "" {
		metrics.AccessDecisions.WithLabelValues("deny_no_user").Inc()
		return entitlement.Decision{}, ErrNoUser
	}

	sub, err := s.subs.GetSubscription(ctx, userUID)
	if err != nil {
		metrics.AccessDecisions.WithLabelValues("deny_fetch_error").Inc()
		s.log.Error("failed to load subscription", slog.String("user_uid", userUID), sl.Err(err))
		return entitlement.Decision{}, fmt.Errorf("%s: %w", op, ErrSubscriptionFetch)
	}

	decision := entitlement.Decide(*sub, requiredPlan, s.now())
	switch {
	case decision.Allowed:
		metrics.AccessDecisions.WithLabelValues("allow").Inc()
	case decision.Reason == entitlement.ReasonExpired:
		metrics.AccessDecisions.WithLabelValues("deny_expired").Inc()
	default:
		metrics.AccessDecisions.WithLabelValues("deny_insufficient_plan").Inc()
	}

	s.LogAccess(userUID, action, resource, sub.Plan, decision.Allowed)

	return decision, nil
}

// LogAccess публикует запись журнала доступа в режиме fire-and-forget.
// Любая ошибка публикации логируется и подавляется: журнал не должен
// блокировать действие, которое его вызвало.
func (s *Service) LogAccess(userUID, action, resource, plan string, entitled bool) {
	entry := models.AccessLogEntry{
		UserUID:  userUID,
		Action:   action,
		Resource: resource,
		Plan:     plan,
		Entitled: entitled,
	}
	if err := s.events.Publish(rabbitmq.AccessLogKey, entry); err != nil {
		s.log.Warn("failed to publish access log entry", sl.Err(err))
	}
}
