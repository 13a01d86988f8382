// Package networth содержит бизнес-логику расчёта чистого капитала.
// Сама агрегация делегирована хранимой функции calculate_net_worth.
package networth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fambudgeteer/family-budget/internal/lib/sl"
	"github.com/fambudgeteer/family-budget/internal/models"
)

// Repository определяет вызов агрегации в хранилище.
type Repository interface {
	CalculateNetWorth(ctx context.Context, userUID string) (*models.NetWorth, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// Service реализует получение чистого капитала с коротким кешем.
type Service struct {
	repo  Repository
	cache Cache
	log   *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, cache Cache, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// Key ключ кеша чистого капитала пользователя.
func Key(userUID string) string {
	return fmt.Sprintf("networth:%s", userUID)
}

// Get возвращает агрегат активов, обязательств и чистого капитала пользователя.
func (s *Service) Get(ctx context.Context, userUID string) (*models.NetWorth, error) {
	var result *models.NetWorth
	found, err := s.cache.Get(Key(userUID), &result)
	if err != nil {
		s.log.Warn("failed to read net worth cache", sl.Err(err))
	}
	if found {
		return result, nil
	}

	result, err = s.repo.CalculateNetWorth(ctx, userUID)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(Key(userUID), result, 30*time.Second); err != nil {
		s.log.Warn("failed to cache net worth", sl.Err(err))
	}
	return result, nil
}
