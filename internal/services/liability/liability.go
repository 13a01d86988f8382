// Package liability содержит бизнес-логику для обязательств пользователя.
// Каждая мутация публикует событие изменения: его потребляет лента
// изменений, сбрасывающая кеш списка и чистого капитала.
package liability

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fambudgeteer/family-budget/internal/lib/sl"
	"github.com/fambudgeteer/family-budget/internal/models"
	"github.com/fambudgeteer/family-budget/internal/rabbitmq"
)

// Repository определяет методы для работы с обязательствами в хранилище.
type Repository interface {
	CreateLiability(ctx context.Context, liability models.Liability) (string, error)
	ListLiabilities(ctx context.Context, userUID string) ([]*models.Liability, error)
	UpdateLiability(ctx context.Context, liability models.Liability, id, userUID string) (int, error)
	RemoveLiability(ctx context.Context, id, userUID string) (int, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// EventPublisher публикует события изменения обязательств.
type EventPublisher interface {
	Publish(routingKey string, message any) error
}

// ChangeEvent уведомление об изменении обязательств пользователя.
type ChangeEvent struct {
	UserUID string `json:"user_uid"`
}

// Service реализует бизнес-логику работы с обязательствами.
type Service struct {
	repo   Repository
	cache  Cache
	events EventPublisher
	log    *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, cache Cache, events EventPublisher, log *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		cache:  cache,
		events: events,
		log:    log,
	}
}

// ListKey ключ кеша списка обязательств пользователя.
func ListKey(userUID string) string {
	return fmt.Sprintf("liabilities:%s", userUID)
}

// Create создает обязательство пользователя, сбрасывает кеш списка
// и публикует событие изменения.
func (s *Service) Create(ctx context.Context, userUID string, req models.DummyLiability) (string, error) {
	liability := models.Liability{
		UserUID:      userUID,
		Name:         req.Name,
		Balance:      req.Balance,
		InterestRate: req.InterestRate,
	}
	if req.DueDate != "" {
		dueDate, err := time.Parse("02-01-2006", req.DueDate)
		if err != nil {
			return "", fmt.Errorf("invalid due date: %w", err)
		}
		liability.DueDate = &dueDate
	}

	id, err := s.repo.CreateLiability(ctx, liability)
	if err != nil {
		return "", err
	}
	s.log.Info("created new liability", slog.String("id", id))

	s.invalidateAndNotify(userUID)
	return id, nil
}

// List возвращает обязательства пользователя, используя кеш или репозиторий.
// Порядок определяет хранилище: по сроку платежа, без срока — в конце.
func (s *Service) List(ctx context.Context, userUID string) ([]*models.Liability, error) {
	var result []*models.Liability
	found, err := s.cache.Get(ListKey(userUID), &result)
	if err != nil {
		s.log.Warn("failed to read liabilities cache", sl.Err(err))
	}
	if found {
		return result, nil
	}

	result, err = s.repo.ListLiabilities(ctx, userUID)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ListKey(userUID), result, time.Minute); err != nil {
		s.log.Warn("failed to cache liabilities", sl.Err(err))
	}
	return result, nil
}

// Update обновляет обязательство по ID, проверяя владельца.
func (s *Service) Update(ctx context.Context, userUID, id string, req models.DummyLiability) (int, error) {
	liability := models.Liability{
		Name:         req.Name,
		Balance:      req.Balance,
		InterestRate: req.InterestRate,
	}
	if req.DueDate != "" {
		dueDate, err := time.Parse("02-01-2006", req.DueDate)
		if err != nil {
			return 0, fmt.Errorf("invalid due date: %w", err)
		}
		liability.DueDate = &dueDate
	}

	count, err := s.repo.UpdateLiability(ctx, liability, id, userUID)
	if err != nil {
		return 0, err
	}

	s.invalidateAndNotify(userUID)
	return count, nil
}

// Remove удаляет обязательство по ID, проверяя владельца.
func (s *Service) Remove(ctx context.Context, userUID, id string) (int, error) {
	count, err := s.repo.RemoveLiability(ctx, id, userUID)
	if err != nil {
		return 0, err
	}

	s.invalidateAndNotify(userUID)
	return count, nil
}

// invalidateAndNotify сбрасывает кеш списка и публикует событие изменения.
// Ошибка публикации логируется и подавляется: уведомление best-effort.
func (s *Service) invalidateAndNotify(userUID string) {
	if err := s.cache.Invalidate(ListKey(userUID)); err != nil {
		s.log.Warn("failed to invalidate liabilities cache", sl.Err(err))
	}
	if err := s.events.Publish(rabbitmq.LiabilityChangedKey, ChangeEvent{UserUID: userUID}); err != nil {
		s.log.Warn("failed to publish liability change event", sl.Err(err))
	}
}
