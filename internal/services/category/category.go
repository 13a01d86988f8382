// Package category содержит бизнес-логику для категорий доходов и расходов.
package category

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fambudgeteer/family-budget/internal/lib/sl"
	"github.com/fambudgeteer/family-budget/internal/models"
)

// Repository определяет методы для работы с категориями в хранилище.
type Repository interface {
	CreateCategory(ctx context.Context, category models.Category) (string, error)
	ListCategories(ctx context.Context, userUID string) ([]*models.Category, error)
	UpdateCategory(ctx context.Context, category models.Category, id, userUID string) (int, error)
	RemoveCategory(ctx context.Context, id, userUID string) (int, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// Service реализует бизнес-логику работы с категориями.
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

func listKey(userUID string) string {
	return fmt.Sprintf("categories:%s", userUID)
}

// Create создает категорию пользователя и сбрасывает кеш списка.
func (s *Service) Create(ctx context.Context, userUID string, req models.DummyCategory) (string, error) {
	category := models.Category{
		UserUID: userUID,
		Name:    req.Name,
		Kind:    req.Kind,
	}
	id, err := s.repo.CreateCategory(ctx, category)
	if err != nil {
		return "", err
	}
	s.log.Info("created new category", slog.String("id", id))

	if err := s.cache.Invalidate(listKey(userUID)); err != nil {
		s.log.Warn("failed to invalidate categories cache", sl.Err(err))
	}
	return id, nil
}

// List возвращает категории пользователя, используя кеш или репозиторий.
func (s *Service) List(ctx context.Context, userUID string) ([]*models.Category, error) {
	var result []*models.Category
	found, err := s.cache.Get(listKey(userUID), &result)
	if err != nil {
		s.log.Warn("failed to read categories cache", sl.Err(err))
	}
	if found {
		return result, nil
	}

	result, err = s.repo.ListCategories(ctx, userUID)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(listKey(userUID), result, time.Minute); err != nil {
		s.log.Warn("failed to cache categories", sl.Err(err))
	}
	return result, nil
}

// Update обновляет категорию по ID, проверяя владельца, и сбрасывает кеш списка.
func (s *Service) Update(ctx context.Context, userUID, id string, req models.DummyCategory) (int, error) {
	category := models.Category{
		Name: req.Name,
		Kind: req.Kind,
	}
	count, err := s.repo.UpdateCategory(ctx, category, id, userUID)
	if err != nil {
		return 0, err
	}

	if err := s.cache.Invalidate(listKey(userUID)); err != nil {
		s.log.Warn("failed to invalidate categories cache", sl.Err(err))
	}
	return count, nil
}

// Remove удаляет категорию по ID, проверяя владельца, и сбрасывает кеш списка.
func (s *Service) Remove(ctx context.Context, userUID, id string) (int, error) {
	count, err := s.repo.RemoveCategory(ctx, id, userUID)
	if err != nil {
		return 0, err
	}

	if err := s.cache.Invalidate(listKey(userUID)); err != nil {
		s.log.Warn("failed to invalidate categories cache", sl.Err(err))
	}
	return count, nil
}
