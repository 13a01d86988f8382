package repository

import (
	"context"
	"fmt"

	"github.com/fambudgeteer/family-budget/internal/models"
)

// CreateTransaction создаёт запись дохода или расхода и возвращает её ID.
// Владеющий ключ user_uid берётся из аутентифицированной сессии, не из запроса.
func (s *Storage) CreateTransaction(ctx context.Context, tx models.Transaction) (string, error) {
	const op = "storage.CreateTransaction"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newID string
	query := `INSERT INTO transactions (user_uid, category_id, amount, kind, description, occurred_at)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id`
	if err := s.DB.QueryRowContext(ctx, query,
		tx.UserUID, tx.CategoryID, tx.Amount, tx.Kind, tx.Description, tx.OccurredAt).Scan(&newID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListTransactions возвращает записи пользователя с пагинацией,
// отсортированные по дате операции от новых к старым.
func (s *Storage) ListTransactions(ctx context.Context, userUID string, limit, offset int) ([]*models.Transaction, error) {
	const op = "storage.ListTransactions"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, category_id, amount, kind, description, occurred_at, created_at, updated_at
			  FROM transactions
			  WHERE user_uid = $1
			  ORDER BY occurred_at DESC
			  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, userUID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Transaction
	for rows.Next() {
		var item models.Transaction
		if err := rows.Scan(&item.ID, &item.UserUID, &item.CategoryID, &item.Amount,
			&item.Kind, &item.Description, &item.OccurredAt, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateTransaction обновляет запись по ID и владельцу, возвращает
// количество изменённых строк. Чужая запись — ноль строк, без эффекта.
func (s *Storage) UpdateTransaction(ctx context.Context, tx models.Transaction, id, userUID string) (int, error) {
	const op = "storage.UpdateTransaction"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE transactions
			  SET category_id = $1, amount = $2, kind = $3, description = $4,
			      occurred_at = $5, updated_at = now()
			  WHERE id = $6 AND user_uid = $7`
	result, err := s.DB.ExecContext(ctx, query,
		tx.CategoryID, tx.Amount, tx.Kind, tx.Description, tx.OccurredAt, id, userUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// RemoveTransaction удаляет запись по ID и владельцу, возвращает
// количество удалённых строк.
func (s *Storage) RemoveTransaction(ctx context.Context, id, userUID string) (int, error) {
	const op = "storage.RemoveTransaction"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM transactions WHERE id = $1 AND user_uid = $2`
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
