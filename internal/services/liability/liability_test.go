package liability_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fambudgeteer/family-budget/internal/models"
	"github.com/fambudgeteer/family-budget/internal/rabbitmq"
	"github.com/fambudgeteer/family-budget/internal/services/liability"
)

type mockRepo struct {
	CreateFunc func(ctx context.Context, l models.Liability) (string, error)
	ListFunc   func(ctx context.Context, userUID string) ([]*models.Liability, error)
	UpdateFunc func(ctx context.Context, l models.Liability, id, userUID string) (int, error)
	RemoveFunc func(ctx context.Context, id, userUID string) (int, error)
}

func (m *mockRepo) CreateLiability(ctx context.Context, l models.Liability) (string, error) {
	return m.CreateFunc(ctx, l)
}

func (m *mockRepo) ListLiabilities(ctx context.Context, userUID string) ([]*models.Liability, error) {
	return m.ListFunc(ctx, userUID)
}

func (m *mockRepo) UpdateLiability(ctx context.Context, l models.Liability, id, userUID string) (int, error) {
	return m.UpdateFunc(ctx, l, id, userUID)
}

func (m *mockRepo) RemoveLiability(ctx context.Context, id, userUID string) (int, error) {
	return m.RemoveFunc(ctx, id, userUID)
}

type mockCache struct {
	invalidated []string
}

func (m *mockCache) Get(_ string, _ any) (bool, error)          { return false, nil }
func (m *mockCache) Set(_ string, _ any, _ time.Duration) error { return nil }

func (m *mockCache) Invalidate(key string) error {
	m.invalidated = append(m.invalidated, key)
	return nil
}

type mockPublisher struct {
	PublishFunc func(routingKey string, message any) error
	keys        []string
}

func (m *mockPublisher) Publish(routingKey string, message any) error {
	m.keys = append(m.keys, routingKey)
	if m.PublishFunc != nil {
		return m.PublishFunc(routingKey, message)
	}
	return nil
}

type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return discardHandler{} }
func (discardHandler) WithGroup(string) slog.Handler             { return discardHandler{} }

func makeLogger() *slog.Logger {
	return slog.New(discardHandler{})
}

func TestCreate(t *testing.T) {
	repo := &mockRepo{
		CreateFunc: func(_ context.Context, l models.Liability) (string, error) {
			assert.Equal(t, "uid-1", l.UserUID)
			require.NotNil(t, l.DueDate)
			return "liab-1", nil
		},
	}
	cache := &mockCache{}
	events := &mockPublisher{}
	svc := liability.New(repo, cache, events, makeLogger())

	id, err := svc.Create(context.Background(), "uid-1", models.DummyLiability{
		Name:    "mortgage",
		Balance: 250000,
		DueDate: "01-09-2025",
	})

	require.NoError(t, err)
	assert.Equal(t, "liab-1", id)
	assert.Contains(t, cache.invalidated, liability.ListKey("uid-1"))
	assert.Contains(t, events.keys, rabbitmq.LiabilityChangedKey)
}

func TestUpdatePassesBothPredicates(t *testing.T) {
	repo := &mockRepo{
		UpdateFunc: func(_ context.Context, _ models.Liability, id, userUID string) (int, error) {
			assert.Equal(t, "liab-1", id)
			assert.Equal(t, "uid-1", userUID)
			return 1, nil
		},
	}
	svc := liability.New(repo, &mockCache{}, &mockPublisher{}, makeLogger())

	count, err := svc.Update(context.Background(), "uid-1", "liab-1", models.DummyLiability{
		Name:    "mortgage",
		Balance: 240000,
	})

	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestRemovePublishFailureDoesNotFailOperation(t *testing.T) {
	repo := &mockRepo{
		RemoveFunc: func(_ context.Context, _, _ string) (int, error) {
			return 1, nil
		},
	}
	events := &mockPublisher{
		PublishFunc: func(_ string, _ any) error {
			return errors.New("broker unavailable")
		},
	}
	svc := liability.New(repo, &mockCache{}, events, makeLogger())

	count, err := svc.Remove(context.Background(), "uid-1", "liab-1")

	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestListUsesRepositoryOnCacheMiss(t *testing.T) {
	due := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	repo := &mockRepo{
		ListFunc: func(_ context.Context, userUID string) ([]*models.Liability, error) {
			assert.Equal(t, "uid-1", userUID)
			return []*models.Liability{{ID: "liab-1", UserUID: userUID, DueDate: &due}}, nil
		},
	}
	svc := liability.New(repo, &mockCache{}, &mockPublisher{}, makeLogger())

	got, err := svc.List(context.Background(), "uid-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "liab-1", got[0].ID)
}
