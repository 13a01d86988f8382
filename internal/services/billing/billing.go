// Package billing обрабатывает события внешней биллинговой интеграции.
// Запись подписки пользователя изменяется только здесь: приложение само
// никогда не повышает и не понижает тарифный план.
package billing

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fambudgeteer/family-budget/internal/models"
)

// SubscriptionRepository описывает сохранение записи подписки.
type SubscriptionRepository interface {
	UpsertSubscription(ctx context.Context, sub models.Subscription) error
}

// Service реализует применение событий биллинга к хранилищу.
type Service struct {
	repo SubscriptionRepository
	log  *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo SubscriptionRepository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log,
	}
}

// ProcessSubscriptionEvent применяет событие биллинга: запись подписки
// пользователя заменяется присланными планом и статусом.
func (s *Service) ProcessSubscriptionEvent(ctx context.Context, event models.DummySubscriptionEvent) error {
	sub := models.Subscription{
		UserUID: event.UserUID,
		Plan:    event.Plan,
		Status:  event.Status,
	}
	if event.TrialEnd != "" {
		trialEnd, err := time.Parse(time.RFC3339, event.TrialEnd)
		if err != nil {
			return fmt.Errorf("invalid trial end: %w", err)
		}
		sub.TrialEnd = &trialEnd
	}

	if err := s.repo.UpsertSubscription(ctx, sub); err != nil {
		return err
	}
	s.log.Info("applied subscription event",
		slog.String("user_uid", event.UserUID),
		slog.String("plan", event.Plan),
		slog.String("status", event.Status))
	return nil
}
