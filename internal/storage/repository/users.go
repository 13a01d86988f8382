package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fambudgeteer/family-budget/internal/models"
)

// RegisterUser сохраняет нового пользователя в базу данных и возвращает его UID.
func (s *Storage) RegisterUser(ctx context.Context, user models.User) (string, error) {
	const op = "storage.RegisterUser"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newUID string
	query := `INSERT INTO users (email, username, password_hash, role)
			  VALUES ($1, $2, $3, $4)
			  RETURNING uid;`
	if err := s.DB.QueryRowContext(ctx, query,
		user.Email, user.Username, user.PasswordHash, user.Role).Scan(&newUID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newUID, nil
}

// GetUserByUsername возвращает пользователя по его username.
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	const op = "storage.GetUserByUsername"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, email, username, password_hash, role, family_id, created_at
			  FROM users
			  WHERE username = $1`
	u := &models.User{}
	row := s.DB.QueryRowContext(ctx, query, username)

	var familyID sql.NullString
	if err := row.Scan(&u.UID, &u.Email, &u.Username, &u.PasswordHash,
		&u.Role, &familyID, &u.CreatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if familyID.Valid {
		u.FamilyID = &familyID.String
	}
	return u, nil
}

// GetUser возвращает пользователя по его UID.
func (s *Storage) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	const op = "storage.GetUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, email, username, password_hash, role, family_id, created_at
			  FROM users
			  WHERE uid = $1`
	u := &models.User{}
	row := s.DB.QueryRowContext(ctx, query, userUID)

	var familyID sql.NullString
	if err := row.Scan(&u.UID, &u.Email, &u.Username, &u.PasswordHash,
		&u.Role, &familyID, &u.CreatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if familyID.Valid {
		u.FamilyID = &familyID.String
	}
	return u, nil
}

// SetUserFamily привязывает пользователя к семье.
func (s *Storage) SetUserFamily(ctx context.Context, userUID, familyID string) error {
	const op = "storage.SetUserFamily"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET family_id = $1
			  WHERE uid = $2`
	_, err := s.DB.ExecContext(ctx, query, familyID, userUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListUsersWithSubscriptions возвращает пользователей вместе с данными подписки
// для административной панели, с пагинацией.
func (s *Storage) ListUsersWithSubscriptions(ctx context.Context, limit, offset int) ([]*models.UserWithSubscription, error) {
	const op = "storage.ListUsersWithSubscriptions"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT u.uid, u.email, u.username, u.role, u.created_at,
			      s.plan, s.status, s.trial_end
			  FROM users u
			  LEFT JOIN subscriptions s ON s.user_uid = u.uid
			  ORDER BY u.created_at
			  LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.UserWithSubscription
	for rows.Next() {
		var item models.UserWithSubscription
		var plan, status sql.NullString
		var trialEnd sql.NullTime
		if err := rows.Scan(&item.UID, &item.Email, &item.Username, &item.Role,
			&item.CreatedAt, &plan, &status, &trialEnd); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		item.Plan = plan.String
		item.Status = status.String
		if trialEnd.Valid {
			item.TrialEnd = &trialEnd.Time
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
