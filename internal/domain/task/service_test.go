package task_test

import (
	"context"
	"testing"
	"time"

	"github.com/studylog/studylog/internal/domain/task"
	"github.com/studylog/studylog/internal/storage"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *task.Service {
	t.Helper()
	db, err := storage.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return task.NewService(storage.NewStore(db, nil), nil)
}

func TestTaskService_CreateDefaults(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, task.CreateRequest{
		UserID: "u1",
		Title:  "Read chapter 3",
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.Equal(t, task.StatusTodo, created.Status)
	require.Equal(t, task.PriorityMedium, created.Priority)
	require.False(t, created.CreatedAt.IsZero())
	require.Nil(t, created.DueDate)
}

func TestTaskService_CreateValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, task.CreateRequest{Title: "   "})
	require.ErrorIs(t, err, task.ErrInvalidInput)

	_, err = svc.Create(ctx, task.CreateRequest{Title: "t", Priority: "urgent"})
	require.ErrorIs(t, err, task.ErrInvalidInput)

	_, err = svc.Create(ctx, task.CreateRequest{Title: "t", EstimatedMinutes: -5})
	require.ErrorIs(t, err, task.ErrInvalidInput)
}

func TestTaskService_GetNotFound(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Get(context.Background(), "missing")
	require.ErrorIs(t, err, task.ErrTaskNotFound)
}

func TestTaskService_UpdatePartial(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, task.CreateRequest{
		UserID:      "u1",
		Title:       "Original",
		Description: "keep me",
		Subject:     "math",
	})
	require.NoError(t, err)

	status := task.StatusInProgress
	due := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	updated, err := svc.Update(ctx, created.ID, task.UpdateRequest{
		Status:  &status,
		DueDate: &due,
	})
	require.NoError(t, err)
	require.Equal(t, task.StatusInProgress, updated.Status)
	require.Equal(t, "keep me", updated.Description)
	require.Equal(t, "math", updated.Subject)
	require.NotNil(t, updated.DueDate)
	require.True(t, updated.DueDate.Equal(due))
	require.Equal(t, created.CreatedAt, updated.CreatedAt)
	require.False(t, updated.UpdatedAt.IsZero())

	bad := task.Status("paused")
	_, err = svc.Update(ctx, created.ID, task.UpdateRequest{Status: &bad})
	require.ErrorIs(t, err, task.ErrInvalidInput)

	_, err = svc.Update(ctx, "missing", task.UpdateRequest{Status: &status})
	require.ErrorIs(t, err, task.ErrTaskNotFound)
}

func TestTaskService_Complete(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, task.CreateRequest{Title: "finish me"})
	require.NoError(t, err)

	done, err := svc.Complete(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, task.StatusDone, done.Status)
}

func TestTaskService_ListFiltersByUser(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, task.CreateRequest{UserID: "u1", Title: "a"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, task.CreateRequest{UserID: "u2", Title: "b"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, task.CreateRequest{UserID: "u1", Title: "c"})
	require.NoError(t, err)

	mine, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	require.Equal(t, "a", mine[0].Title)
	require.Equal(t, "c", mine[1].Title)

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
}

func TestTaskService_Delete(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, task.CreateRequest{Title: "gone"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.Get(ctx, created.ID)
	require.ErrorIs(t, err, task.ErrTaskNotFound)

	require.ErrorIs(t, svc.Delete(ctx, created.ID), task.ErrTaskNotFound)
}

func TestTaskService_Search(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, task.CreateRequest{UserID: "u1", Title: "Linear algebra drills"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, task.CreateRequest{UserID: "u2", Title: "Algebra homework"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, task.CreateRequest{UserID: "u1", Title: "History essay", Subject: "history"})
	require.NoError(t, err)

	hits, err := svc.Search(ctx, "", "ALGEBRA")
	require.NoError(t, err)
	require.Len(t, hits, 2)

	hits, err = svc.Search(ctx, "u1", "algebra")
	require.NoError(t, err)
	require.Len(t, hits, 1)
	require.Equal(t, "Linear algebra drills", hits[0].Title)

	// Subject participates in the search.
	hits, err = svc.Search(ctx, "", "history")
	require.NoError(t, err)
	require.Len(t, hits, 1)
}

func TestTaskService_Exists(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, task.CreateRequest{Title: "referenced"})
	require.NoError(t, err)

	ok, err := svc.Exists(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = svc.Exists(ctx, "missing")
	require.NoError(t, err)
	require.False(t, ok)
}
