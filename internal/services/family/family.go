// Package family содержит бизнес-логику для семей и их участников.
// Владеющий ключ участников — family_id — всегда берётся из записи
// аутентифицированного пользователя, а не из запроса.
package family

import (
	"context"
	"errors"
	"log/slog"

	"github.com/fambudgeteer/family-budget/internal/models"
)

// ErrNoFamily пользователь не состоит в семье.
var ErrNoFamily = errors.New("user has no family")

// Repository определяет методы для работы с семьями и участниками в хранилище.
type Repository interface {
	CreateFamily(ctx context.Context, family models.Family) (string, error)
	GetFamily(ctx context.Context, familyID string) (*models.Family, error)
	GetUser(ctx context.Context, userUID string) (*models.User, error)
	SetUserFamily(ctx context.Context, userUID, familyID string) error
	CreateMember(ctx context.Context, member models.FamilyMember) (string, error)
	ListMembers(ctx context.Context, familyID string) ([]*models.FamilyMember, error)
	UpdateMember(ctx context.Context, member models.FamilyMember, id, familyID string) (int, error)
	RemoveMember(ctx context.Context, id, familyID string) (int, error)
}

// Service реализует бизнес-логику работы с семьями.
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

// CreateFamily создает семью и привязывает к ней создателя.
func (s *Service) CreateFamily(ctx context.Context, ownerUID string, req models.DummyFamily) (string, error) {
	family := models.Family{
		Name:     req.Name,
		OwnerUID: ownerUID,
	}
	id, err := s.repo.CreateFamily(ctx, family)
	if err != nil {
		return "", err
	}
	if err := s.repo.SetUserFamily(ctx, ownerUID, id); err != nil {
		return "", err
	}
	s.log.Info("created new family", slog.String("id", id))
	return id, nil
}

// GetMyFamily возвращает семью аутентифицированного пользователя.
func (s *Service) GetMyFamily(ctx context.Context, userUID string) (*models.Family, error) {
	familyID, err := s.familyID(ctx, userUID)
	if err != nil {
		return nil, err
	}
	return s.repo.GetFamily(ctx, familyID)
}

// AddMember добавляет участника в семью пользователя.
func (s *Service) AddMember(ctx context.Context, userUID string, req models.DummyFamilyMember) (string, error) {
	familyID, err := s.familyID(ctx, userUID)
	if err != nil {
		return "", err
	}
	member := models.FamilyMember{
		FamilyID:     familyID,
		Name:         req.Name,
		Relationship: req.Relationship,
	}
	id, err := s.repo.CreateMember(ctx, member)
	if err != nil {
		return "", err
	}
	s.log.Info("added family member", slog.String("id", id))
	return id, nil
}

// ListMembers возвращает участников семьи пользователя.
func (s *Service) ListMembers(ctx context.Context, userUID string) ([]*models.FamilyMember, error) {
	familyID, err := s.familyID(ctx, userUID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListMembers(ctx, familyID)
}

// UpdateMember обновляет участника семьи пользователя по ID.
// Возвращает количество изменённых строк: ноль означает чужую
// или несуществующую запись.
func (s *Service) UpdateMember(ctx context.Context, userUID, id string, req models.DummyFamilyMember) (int, error) {
	familyID, err := s.familyID(ctx, userUID)
	if err != nil {
		return 0, err
	}
	member := models.FamilyMember{
		Name:         req.Name,
		Relationship: req.Relationship,
	}
	return s.repo.UpdateMember(ctx, member, id, familyID)
}

// RemoveMember удаляет участника семьи пользователя по ID.
func (s *Service) RemoveMember(ctx context.Context, userUID, id string) (int, error) {
	familyID, err := s.familyID(ctx, userUID)
	if err != nil {
		return 0, err
	}
	return s.repo.RemoveMember(ctx, id, familyID)
}

// familyID возвращает владеющий ключ семьи из записи пользователя.
func (s *Service) familyID(ctx context.Context, userUID string) (string, error) {
	user, err := s.repo.GetUser(ctx, userUID)
	if err != nil {
		return "", err
	}
	if user.FamilyID == nil {
		return "", ErrNoFamily
	}
	return *user.FamilyID, nil
}
