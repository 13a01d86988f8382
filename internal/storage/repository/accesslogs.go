package repository

import (
	"context"
	"fmt"

	"github.com/fambudgeteer/family-budget/internal/models"
)

// InsertAccessLog добавляет запись в журнал проверок доступа.
// Журнал append-only, записи никогда не изменяются.
func (s *Storage) InsertAccessLog(ctx context.Context, entry models.AccessLogEntry) error {
	const op = "storage.InsertAccessLog"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO access_logs (user_uid, action, resource, plan, entitled)
			  VALUES ($1, $2, $3, $4, $5)`
	_, err := s.DB.ExecContext(ctx, query,
		entry.UserUID, entry.Action, entry.Resource, entry.Plan, entry.Entitled)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListRecentAccessLogs возвращает последние записи журнала доступа
// для административной панели.
func (s *Storage) ListRecentAccessLogs(ctx context.Context, limit int) ([]*models.AccessLogEntry, error) {
	const op = "storage.ListRecentAccessLogs"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, action, resource, plan, entitled, created_at
			  FROM access_logs
			  ORDER BY created_at DESC
			  LIMIT $1`
	rows, err := s.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.AccessLogEntry
	for rows.Next() {
		var item models.AccessLogEntry
		if err := rows.Scan(&item.ID, &item.UserUID, &item.Action, &item.Resource,
			&item.Plan, &item.Entitled, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
