// Package admin содержит бизнес-логику административной панели:
// список пользователей с подписками, сводка по тарифам и журнал
// последних проверок доступа.
package admin

import (
	"context"
	"log/slog"

	"github.com/fambudgeteer/family-budget/internal/models"
)

// Количество записей журнала доступа в сводке панели.
const recentAccessLimit = 50

// Repository определяет выборки хранилища для административной панели.
type Repository interface {
	ListUsersWithSubscriptions(ctx context.Context, limit, offset int) ([]*models.UserWithSubscription, error)
	CountSubscriptions(ctx context.Context) ([]*models.SubscriptionStat, error)
	ListRecentAccessLogs(ctx context.Context, limit int) ([]*models.AccessLogEntry, error)
}

// Dashboard сводка административной панели.
type Dashboard struct {
	Subscriptions []*models.SubscriptionStat `json:"subscriptions"`
	RecentAccess  []*models.AccessLogEntry   `json:"recent_access"`
}

// Service реализует операции административной панели.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log,
	}
}

// ListUsers возвращает пользователей с данными их подписок.
func (s *Service) ListUsers(ctx context.Context, limit, offset int) ([]*models.UserWithSubscription, error) {
	return s.repo.ListUsersWithSubscriptions(ctx, limit, offset)
}

// GetDashboard возвращает сводку по тарифам и последние проверки доступа.
func (s *Service) GetDashboard(ctx context.Context) (*Dashboard, error) {
	stats, err := s.repo.CountSubscriptions(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := s.repo.ListRecentAccessLogs(ctx, recentAccessLimit)
	if err != nil {
		return nil, err
	}
	return &Dashboard{
		Subscriptions: stats,
		RecentAccess:  recent,
	}, nil
}
