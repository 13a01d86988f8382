package repository

import (
	"context"
	"fmt"

	"github.com/fambudgeteer/family-budget/internal/models"
)

// CreateFamily создаёт семью и возвращает её ID.
func (s *Storage) CreateFamily(ctx context.Context, family models.Family) (string, error) {
	const op = "storage.CreateFamily"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newID string
	query := `INSERT INTO families (name, owner_uid)
			  VALUES ($1, $2)
			  RETURNING id`
	if err := s.DB.QueryRowContext(ctx, query, family.Name, family.OwnerUID).Scan(&newID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetFamily возвращает семью по её ID.
func (s *Storage) GetFamily(ctx context.Context, familyID string) (*models.Family, error) {
	const op = "storage.GetFamily"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, owner_uid, created_at
			  FROM families
			  WHERE id = $1`
	f := &models.Family{}
	row := s.DB.QueryRowContext(ctx, query, familyID)
	if err := row.Scan(&f.ID, &f.Name, &f.OwnerUID, &f.CreatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return f, nil
}
