package user_test

import (
	"context"
	"testing"

	"github.com/studylog/studylog/internal/domain/user"
	"github.com/studylog/studylog/internal/stats"
	"github.com/studylog/studylog/internal/storage"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *user.Service {
	t.Helper()
	db, err := storage.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return user.NewService(storage.NewStore(db, nil), nil)
}

func TestUserService_Create(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, user.CreateRequest{Name: "Sam", Email: "sam@example.com"})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.Equal(t, "Sam", created.Name)
	require.Zero(t, created.DailyGoalMinutes)

	_, err = svc.Create(ctx, user.CreateRequest{Name: "  "})
	require.ErrorIs(t, err, user.ErrInvalidInput)
}

func TestUserService_GetNotFound(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Get(context.Background(), "missing")
	require.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestUserService_SetGoalsAndTargets(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, user.CreateRequest{Name: "Sam"})
	require.NoError(t, err)

	updated, err := svc.SetGoals(ctx, created.ID, stats.GoalTargets{
		DailyMinutes:   60,
		WeeklyMinutes:  300,
		MonthlyMinutes: 1200,
	})
	require.NoError(t, err)
	require.Equal(t, 60, updated.DailyGoalMinutes)
	require.Equal(t, 300, updated.WeeklyGoalMinutes)
	require.Equal(t, 1200, updated.MonthlyGoalMinutes)

	targets, err := svc.Targets(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, stats.GoalTargets{DailyMinutes: 60, WeeklyMinutes: 300, MonthlyMinutes: 1200}, targets)

	_, err = svc.SetGoals(ctx, created.ID, stats.GoalTargets{DailyMinutes: -1})
	require.ErrorIs(t, err, user.ErrInvalidInput)

	_, err = svc.SetGoals(ctx, "missing", stats.GoalTargets{DailyMinutes: 30})
	require.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestUserService_ListAndDelete(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, user.CreateRequest{Name: "a"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, user.CreateRequest{Name: "b"})
	require.NoError(t, err)

	users, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	require.Equal(t, "a", users[0].Name)

	require.NoError(t, svc.Delete(ctx, first.ID))
	require.ErrorIs(t, svc.Delete(ctx, first.ID), user.ErrUserNotFound)
}
