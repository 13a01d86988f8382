package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fambudgeteer/family-budget/internal/models"
)

// CalculateNetWorth вызывает хранимую функцию calculate_net_worth
// и возвращает агрегат активов, обязательств и чистого капитала.
// Пустой результат означает нулевые значения по всем трём полям.
func (s *Storage) CalculateNetWorth(ctx context.Context, userUID string) (*models.NetWorth, error) {
	const op = "storage.CalculateNetWorth"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT total_assets, total_liabilities, net_worth
			  FROM calculate_net_worth($1)`
	row := s.DB.QueryRowContext(ctx, query, userUID)

	var result models.NetWorth
	if err := row.Scan(&result.TotalAssets, &result.TotalLiabilities, &result.NetWorth); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &models.NetWorth{}, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}
