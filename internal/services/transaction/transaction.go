// Package transaction содержит бизнес-логику для записей доходов и расходов.
package transaction

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fambudgeteer/family-budget/internal/lib/sl"
	"github.com/fambudgeteer/family-budget/internal/models"
)

// Repository определяет методы для работы с записями в хранилище.
// Каждый метод принимает владеющий ключ и не выполняет операций вне его.
type Repository interface {
	// CreateTransaction добавляет новую запись и возвращает её ID.
	CreateTransaction(ctx context.Context, tx models.Transaction) (string, error)
	// ListTransactions возвращает записи пользователя с пагинацией.
	ListTransactions(ctx context.Context, userUID string, limit, offset int) ([]*models.Transaction, error)
	// UpdateTransaction обновляет запись по ID и владельцу.
	UpdateTransaction(ctx context.Context, tx models.Transaction, id, userUID string) (int, error)
	// RemoveTransaction удаляет запись по ID и владельцу.
	RemoveTransaction(ctx context.Context, id, userUID string) (int, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// Service реализует бизнес-логику работы с записями, включая кеширование.
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

// DefaultListLimit размер страницы по умолчанию. Кешируется только
// первая страница этого размера: у кеша один ключ на пользователя,
// и мутации сбрасывают именно его.
const DefaultListLimit = 10

func listKey(userUID string) string {
	return fmt.Sprintf("transactions:%s", userUID)
}

// Create создает новую запись пользователя и сбрасывает кеш списка,
// чтобы следующее чтение выполнило свежую выборку.
func (s *Service) Create(ctx context.Context, userUID string, req models.DummyTransaction) (string, error) {
	occurredAt, err := time.Parse("02-01-2006", req.OccurredAt)
	if err != nil {
		return "", fmt.Errorf("invalid occurred date: %w", err)
	}

	tx := models.Transaction{
		UserUID:     userUID,
		CategoryID:  req.CategoryID,
		Amount:      req.Amount,
		Kind:        req.Kind,
		Description: req.Description,
		OccurredAt:  occurredAt,
	}

	id, err := s.repo.CreateTransaction(ctx, tx)
	if err != nil {
		return "", err
	}
	s.log.Info("created new transaction", slog.String("id", id))

	if err := s.cache.Invalidate(listKey(userUID)); err != nil {
		s.log.Warn("failed to invalidate transactions cache", sl.Err(err))
	}
	return id, nil
}

// List возвращает записи пользователя, используя кеш для первой страницы
// размера по умолчанию. Запросы с другим limit или offset всегда идут
// в хранилище, чтобы кеш не подменял размер страницы.
func (s *Service) List(ctx context.Context, userUID string, limit, offset int) ([]*models.Transaction, error) {
	var result []*models.Transaction
	useCache := offset == 0 && limit == DefaultListLimit
	if useCache {
		found, err := s.cache.Get(listKey(userUID), &result)
		if err != nil {
			s.log.Warn("failed to read transactions cache", sl.Err(err))
		}
		if found {
			return result, nil
		}
	}

	result, err := s.repo.ListTransactions(ctx, userUID, limit, offset)
	if err != nil {
		return nil, err
	}
	if useCache {
		if err := s.cache.Set(listKey(userUID), result, time.Minute); err != nil {
			s.log.Warn("failed to cache transactions", sl.Err(err))
		}
	}
	return result, nil
}

// Update обновляет запись по ID, проверяя владельца, и сбрасывает кеш списка.
// Возвращает количество изменённых строк: ноль означает чужую или
// несуществующую запись.
func (s *Service) Update(ctx context.Context, userUID, id string, req models.DummyTransaction) (int, error) {
	occurredAt, err := time.Parse("02-01-2006", req.OccurredAt)
	if err != nil {
		return 0, fmt.Errorf("invalid occurred date: %w", err)
	}

	tx := models.Transaction{
		CategoryID:  req.CategoryID,
		Amount:      req.Amount,
		Kind:        req.Kind,
		Description: req.Description,
		OccurredAt:  occurredAt,
	}
	count, err := s.repo.UpdateTransaction(ctx, tx, id, userUID)
	if err != nil {
		return 0, err
	}

	if err := s.cache.Invalidate(listKey(userUID)); err != nil {
		s.log.Warn("failed to invalidate transactions cache", sl.Err(err))
	}
	return count, nil
}

// Remove удаляет запись по ID, проверяя владельца, и сбрасывает кеш списка.
func (s *Service) Remove(ctx context.Context, userUID, id string) (int, error) {
	count, err := s.repo.RemoveTransaction(ctx, id, userUID)
	if err != nil {
		return 0, err
	}

	if err := s.cache.Invalidate(listKey(userUID)); err != nil {
		s.log.Warn("failed to invalidate transactions cache", sl.Err(err))
	}
	return count, nil
}
