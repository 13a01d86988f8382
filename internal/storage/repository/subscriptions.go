package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fambudgeteer/family-budget/internal/models"
)

// CreateSubscription создаёт запись подписки пользователя.
// На пользователя приходится ровно одна строка.
func (s *Storage) CreateSubscription(ctx context.Context, sub models.Subscription) error {
	const op = "storage.CreateSubscription"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO subscriptions (user_uid, plan, status, trial_end)
			  VALUES ($1, $2, $3, $4)`
	_, err := s.DB.ExecContext(ctx, query, sub.UserUID, sub.Plan, sub.Status, sub.TrialEnd)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetSubscription возвращает подписку пользователя по его UID.
func (s *Storage) GetSubscription(ctx context.Context, userUID string) (*models.Subscription, error) {
	const op = "storage.GetSubscription"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT user_uid, plan, status, trial_end, updated_at
			  FROM subscriptions
			  WHERE user_uid = $1`
	sub := &models.Subscription{}
	row := s.DB.QueryRowContext(ctx, query, userUID)

	var trialEnd sql.NullTime
	if err := row.Scan(&sub.UserUID, &sub.Plan, &sub.Status, &trialEnd, &sub.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if trialEnd.Valid {
		sub.TrialEnd = &trialEnd.Time
	}
	return sub, nil
}

// UpsertSubscription обновляет подписку пользователя по событию биллинга,
// создавая строку при её отсутствии.
func (s *Storage) UpsertSubscription(ctx context.Context, sub models.Subscription) error {
	const op = "storage.UpsertSubscription"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO subscriptions (user_uid, plan, status, trial_end)
			  VALUES ($1, $2, $3, $4)
			  ON CONFLICT (user_uid) DO UPDATE
			  SET plan = EXCLUDED.plan,
			      status = EXCLUDED.status,
			      trial_end = EXCLUDED.trial_end,
			      updated_at = now()`
	_, err := s.DB.ExecContext(ctx, query, sub.UserUID, sub.Plan, sub.Status, sub.TrialEnd)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// CountSubscriptions возвращает количество подписок по планам и статусам
// для административной панели.
func (s *Storage) CountSubscriptions(ctx context.Context) ([]*models.SubscriptionStat, error) {
	const op = "storage.CountSubscriptions"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT plan, status, COUNT(*)
			  FROM subscriptions
			  GROUP BY plan, status
			  ORDER BY plan, status`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.SubscriptionStat
	for rows.Next() {
		var item models.SubscriptionStat
		if err := rows.Scan(&item.Plan, &item.Status, &item.Count); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
