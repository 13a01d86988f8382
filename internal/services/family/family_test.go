package family_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fambudgeteer/family-budget/internal/models"
	"github.com/fambudgeteer/family-budget/internal/services/family"
)

type mockRepo struct {
	CreateFamilyFunc  func(ctx context.Context, f models.Family) (string, error)
	GetFamilyFunc     func(ctx context.Context, familyID string) (*models.Family, error)
	GetUserFunc       func(ctx context.Context, userUID string) (*models.User, error)
	SetUserFamilyFunc func(ctx context.Context, userUID, familyID string) error
	CreateMemberFunc  func(ctx context.Context, m models.FamilyMember) (string, error)
	ListMembersFunc   func(ctx context.Context, familyID string) ([]*models.FamilyMember, error)
	UpdateMemberFunc  func(ctx context.Context, m models.FamilyMember, id, familyID string) (int, error)
	RemoveMemberFunc  func(ctx context.Context, id, familyID string) (int, error)
}

func (m *mockRepo) CreateFamily(ctx context.Context, f models.Family) (string, error) {
	return m.CreateFamilyFunc(ctx, f)
}

func (m *mockRepo) GetFamily(ctx context.Context, familyID string) (*models.Family, error) {
	return m.GetFamilyFunc(ctx, familyID)
}

func (m *mockRepo) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	return m.GetUserFunc(ctx, userUID)
}

func (m *mockRepo) SetUserFamily(ctx context.Context, userUID, familyID string) error {
	return m.SetUserFamilyFunc(ctx, userUID, familyID)
}

func (m *mockRepo) CreateMember(ctx context.Context, mem models.FamilyMember) (string, error) {
	return m.CreateMemberFunc(ctx, mem)
}

func (m *mockRepo) ListMembers(ctx context.Context, familyID string) ([]*models.FamilyMember, error) {
	return m.ListMembersFunc(ctx, familyID)
}

func (m *mockRepo) UpdateMember(ctx context.Context, mem models.FamilyMember, id, familyID string) (int, error) {
	return m.UpdateMemberFunc(ctx, mem, id, familyID)
}

func (m *mockRepo) RemoveMember(ctx context.Context, id, familyID string) (int, error) {
	return m.RemoveMemberFunc(ctx, id, familyID)
}

type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return discardHandler{} }
func (discardHandler) WithGroup(string) slog.Handler             { return discardHandler{} }

func makeLogger() *slog.Logger {
	return slog.New(discardHandler{})
}

func userInFamily(familyID string) func(ctx context.Context, userUID string) (*models.User, error) {
	return func(_ context.Context, userUID string) (*models.User, error) {
		return &models.User{UID: userUID, FamilyID: &familyID}, nil
	}
}

func TestCreateFamilyLinksOwner(t *testing.T) {
	var linkedUID, linkedFamily string
	repo := &mockRepo{
		CreateFamilyFunc: func(_ context.Context, f models.Family) (string, error) {
			assert.Equal(t, "uid-1", f.OwnerUID)
			return "fam-1", nil
		},
		SetUserFamilyFunc: func(_ context.Context, userUID, familyID string) error {
			linkedUID, linkedFamily = userUID, familyID
			return nil
		},
	}
	svc := family.New(repo, makeLogger())

	id, err := svc.CreateFamily(context.Background(), "uid-1", models.DummyFamily{Name: "Ivanovy"})

	require.NoError(t, err)
	assert.Equal(t, "fam-1", id)
	assert.Equal(t, "uid-1", linkedUID)
	assert.Equal(t, "fam-1", linkedFamily)
}

func TestAddMemberResolvesFamilyFromUserRecord(t *testing.T) {
	repo := &mockRepo{
		GetUserFunc: userInFamily("fam-1"),
		CreateMemberFunc: func(_ context.Context, m models.FamilyMember) (string, error) {
			// Владеющий ключ берётся из записи пользователя, не из запроса.
			assert.Equal(t, "fam-1", m.FamilyID)
			return "mem-1", nil
		},
	}
	svc := family.New(repo, makeLogger())

	id, err := svc.AddMember(context.Background(), "uid-1", models.DummyFamilyMember{
		Name:         "Masha",
		Relationship: "child",
	})

	require.NoError(t, err)
	assert.Equal(t, "mem-1", id)
}

func TestAddMemberWithoutFamily(t *testing.T) {
	repo := &mockRepo{
		GetUserFunc: func(_ context.Context, userUID string) (*models.User, error) {
			return &models.User{UID: userUID}, nil
		},
		CreateMemberFunc: func(_ context.Context, _ models.FamilyMember) (string, error) {
			t.Fatal("storage should not be called without a family")
			return "", nil
		},
	}
	svc := family.New(repo, makeLogger())

	_, err := svc.AddMember(context.Background(), "uid-1", models.DummyFamilyMember{
		Name:         "Masha",
		Relationship: "child",
	})

	require.ErrorIs(t, err, family.ErrNoFamily)
}

func TestUpdateMemberPassesBothPredicates(t *testing.T) {
	repo := &mockRepo{
		GetUserFunc: userInFamily("fam-1"),
		UpdateMemberFunc: func(_ context.Context, _ models.FamilyMember, id, familyID string) (int, error) {
			assert.Equal(t, "mem-1", id)
			assert.Equal(t, "fam-1", familyID)
			return 1, nil
		},
	}
	svc := family.New(repo, makeLogger())

	count, err := svc.UpdateMember(context.Background(), "uid-1", "mem-1", models.DummyFamilyMember{
		Name:         "Masha",
		Relationship: "child",
	})

	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestRemoveMemberPassesBothPredicates(t *testing.T) {
	repo := &mockRepo{
		GetUserFunc: userInFamily("fam-1"),
		RemoveMemberFunc: func(_ context.Context, id, familyID string) (int, error) {
			assert.Equal(t, "mem-1", id)
			assert.Equal(t, "fam-1", familyID)
			return 1, nil
		},
	}
	svc := family.New(repo, makeLogger())

	count, err := svc.RemoveMember(context.Background(), "uid-1", "mem-1")

	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
