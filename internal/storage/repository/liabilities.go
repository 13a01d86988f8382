package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fambudgeteer/family-budget/internal/models"
)

// CreateLiability создаёт обязательство пользователя и возвращает его ID.
func (s *Storage) CreateLiability(ctx context.Context, liability models.Liability) (string, error) {
	const op = "storage.CreateLiability"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newID string
	query := `INSERT INTO liabilities (user_uid, name, balance, interest_rate, due_date)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id`
	if err := s.DB.QueryRowContext(ctx, query,
		liability.UserUID, liability.Name, liability.Balance,
		liability.InterestRate, liability.DueDate).Scan(&newID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListLiabilities возвращает обязательства пользователя, отсортированные
// по сроку платежа по возрастанию, записи без срока — в конце.
func (s *Storage) ListLiabilities(ctx context.Context, userUID string) ([]*models.Liability, error) {
	const op = "storage.ListLiabilities"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, name, balance, interest_rate, due_date, created_at, updated_at
			  FROM liabilities
			  WHERE user_uid = $1
			  ORDER BY due_date ASC NULLS LAST`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Liability
	for rows.Next() {
		var item models.Liability
		var dueDate sql.NullTime
		if err := rows.Scan(&item.ID, &item.UserUID, &item.Name, &item.Balance,
			&item.InterestRate, &dueDate, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if dueDate.Valid {
			item.DueDate = &dueDate.Time
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateLiability обновляет обязательство по ID и владельцу, возвращает
// количество изменённых строк.
func (s *Storage) UpdateLiability(ctx context.Context, liability models.Liability, id, userUID string) (int, error) {
	const op = "storage.UpdateLiability"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE liabilities
			  SET name = $1, balance = $2, interest_rate = $3, due_date = $4, updated_at = now()
			  WHERE id = $5 AND user_uid = $6`
	result, err := s.DB.ExecContext(ctx, query,
		liability.Name, liability.Balance, liability.InterestRate, liability.DueDate, id, userUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// RemoveLiability удаляет обязательство по ID и владельцу, возвращает
// количество удалённых строк.
func (s *Storage) RemoveLiability(ctx context.Context, id, userUID string) (int, error) {
	const op = "storage.RemoveLiability"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM liabilities WHERE id = $1 AND user_uid = $2`
	result, err := s.DB.ExecContext(ctx, query, id, userUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
