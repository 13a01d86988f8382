package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/fambudgeteer/family-budget/internal/migrations"
	"github.com/fambudgeteer/family-budget/internal/models"
)

// TestDataFactory содержит методы для создания тестовых данных
type TestDataFactory struct {
	storage *Storage
}

// NewTestDataFactory создает новую фабрику тестовых данных
func NewTestDataFactory(storage *Storage) *TestDataFactory {
	return &TestDataFactory{storage: storage}
}

// CreateUser создает тестового пользователя и возвращает его UID
func (f *TestDataFactory) CreateUser(t *testing.T, username, email string) string {
	var uid string
	err := f.storage.DB.QueryRow(`INSERT INTO users (email, username, password_hash, role)
		VALUES ($1, $2, $3, $4) RETURNING uid`,
		email, username, "hashedpassword", "user").Scan(&uid)
	require.NoError(t, err)
	return uid
}

// CreateFamily создает тестовую семью и привязывает к ней владельца
func (f *TestDataFactory) CreateFamily(t *testing.T, name, ownerUID string) string {
	var id string
	err := f.storage.DB.QueryRow(`INSERT INTO families (name, owner_uid)
		VALUES ($1, $2) RETURNING id`,
		name, ownerUID).Scan(&id)
	require.NoError(t, err)
	_, err = f.storage.DB.Exec(`UPDATE users SET family_id = $1 WHERE uid = $2`, id, ownerUID)
	require.NoError(t, err)
	return id
}

// CreateCategory создает тестовую категорию
func (f *TestDataFactory) CreateCategory(t *testing.T, userUID, name, kind string) string {
	var id string
	err := f.storage.DB.QueryRow(`INSERT INTO categories (user_uid, name, kind)
		VALUES ($1, $2, $3) RETURNING id`,
		userUID, name, kind).Scan(&id)
	require.NoError(t, err)
	return id
}

// CreateTransaction создает тестовую запись дохода или расхода
func (f *TestDataFactory) CreateTransaction(t *testing.T, userUID, categoryID string, amount float64, kind string, occurredAt time.Time) string {
	var id string
	err := f.storage.DB.QueryRow(`INSERT INTO transactions (user_uid, category_id, amount, kind, description, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		userUID, categoryID, amount, kind, "test transaction", occurredAt).Scan(&id)
	require.NoError(t, err)
	return id
}

// CreateLiability создает тестовое обязательство
func (f *TestDataFactory) CreateLiability(t *testing.T, userUID, name string, balance float64, dueDate *time.Time) string {
	var id string
	err := f.storage.DB.QueryRow(`INSERT INTO liabilities (user_uid, name, balance, interest_rate, due_date)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		userUID, name, balance, 10.5, dueDate).Scan(&id)
	require.NoError(t, err)
	return id
}

// CreateMember создает тестового участника семьи
func (f *TestDataFactory) CreateMember(t *testing.T, familyID, name, relationship string) string {
	var id string
	err := f.storage.DB.QueryRow(`INSERT INTO family_members (family_id, name, relationship)
		VALUES ($1, $2, $3) RETURNING id`,
		familyID, name, relationship).Scan(&id)
	require.NoError(t, err)
	return id
}

// CreateSubscriptionRow создает запись подписки пользователя
func (f *TestDataFactory) CreateSubscriptionRow(t *testing.T, sub models.Subscription) {
	err := f.storage.CreateSubscription(context.Background(), sub)
	require.NoError(t, err)
}

// setupTestDatabase создает тестовую БД с контейнером PostgreSQL
// и прогоняет миграции проекта.
func setupTestDatabase(t *testing.T) (*Storage, func()) {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(3*time.Minute),
		),
	)
	require.NoError(t, err, "failed to start container")

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	var storage *Storage
	for range 10 {
		storage, err = New(dsn)
		if err == nil {
			err = storage.DB.Ping()
			if err == nil {
				break
			}
		}
		time.Sleep(1 * time.Second)
	}
	require.NoError(t, err, "failed to create storage after retries")

	migrationsPath, err := filepath.Abs("../../../migrations")
	require.NoError(t, err)
	require.NoError(t, migrations.Run(storage.DB, migrationsPath))

	cleanup := func() {
		storage.DB.Close()
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}
	return storage, cleanup
}
