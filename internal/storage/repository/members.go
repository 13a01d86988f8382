package repository

import (
	"context"
	"fmt"

	"github.com/fambudgeteer/family-budget/internal/models"
)

// CreateMember добавляет участника семьи и возвращает его ID.
// Владеющий ключ family_id берётся из аутентифицированной сессии, не из запроса.
func (s *Storage) CreateMember(ctx context.Context, member models.FamilyMember) (string, error) {
	const op = "storage.CreateMember"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newID string
	query := `INSERT INTO family_members (family_id, name, relationship)
			  VALUES ($1, $2, $3)
			  RETURNING id`
	if err := s.DB.QueryRowContext(ctx, query,
		member.FamilyID, member.Name, member.Relationship).Scan(&newID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListMembers возвращает участников семьи.
func (s *Storage) ListMembers(ctx context.Context, familyID string) ([]*models.FamilyMember, error) {
	const op = "storage.ListMembers"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, family_id, name, relationship, created_at, updated_at
			  FROM family_members
			  WHERE family_id = $1
			  ORDER BY created_at`
	rows, err := s.DB.QueryContext(ctx, query, familyID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.FamilyMember
	for rows.Next() {
		var item models.FamilyMember
		if err := rows.Scan(&item.ID, &item.FamilyID, &item.Name, &item.Relationship,
			&item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateMember обновляет участника по ID и семье, возвращает количество
// изменённых строк. Чужая семья — ноль строк, запрос без эффекта.
func (s *Storage) UpdateMember(ctx context.Context, member models.FamilyMember, id, familyID string) (int, error) {
	const op = "storage.UpdateMember"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE family_members
			  SET name = $1, relationship = $2, updated_at = now()
			  WHERE id = $3 AND family_id = $4`
	result, err := s.DB.ExecContext(ctx, query, member.Name, member.Relationship, id, familyID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// RemoveMember удаляет участника по ID и семье, возвращает количество удалённых строк.
func (s *Storage) RemoveMember(ctx context.Context, id, familyID string) (int, error) {
	const op = "storage.RemoveMember"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM family_members WHERE id = $1 AND family_id = $2`
	result, err := s.DB.ExecContext(ctx, query, id, familyID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
