package repo

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BuzzLyutic/todo-list/internal/model"
	"github.com/BuzzLyutic/todo-list/internal/testutil"
)

func date(y int, m time.Month, d int) *time.Time {
	v := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &v
}

func TestMemoryRepo(t *testing.T) {
	runRepositoryTests(t, func(t *testing.T) TodoRepository {
		return NewMemoryRepo(nil)
	})
}

func TestTodoRepo_Postgres(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}
	pool := testutil.SetupTestDB(t)

	runRepositoryTests(t, func(t *testing.T) TodoRepository {
		testutil.TruncateTables(t, pool)
		return NewTodoRepo(pool)
	})
}

// runRepositoryTests exercises the persistence contract shared by every store.
func runRepositoryTests(t *testing.T, newRepo func(t *testing.T) TodoRepository) {
	ctx := context.Background()

	t.Run("create sets defaults and timestamps", func(t *testing.T) {
		r := newRepo(t)

		created, err := r.Create(ctx, model.TodoInput{Title: "Sample"})
		require.NoError(t, err)

		assert.NotZero(t, created.ID)
		assert.Equal(t, "Sample", created.Title)
		assert.Empty(t, created.Description)
		assert.Nil(t, created.DueDate)
		assert.False(t, created.IsResolved)
		assert.False(t, created.CreatedAt.IsZero())
		assert.True(t, created.CreatedAt.Equal(created.UpdatedAt))
	})

	t.Run("get round-trips every field", func(t *testing.T) {
		r := newRepo(t)

		created, err := r.Create(ctx, model.TodoInput{
			Title:       "Task",
			Description: "Details",
			DueDate:     date(2025, 1, 1),
			IsResolved:  true,
		})
		require.NoError(t, err)

		got, err := r.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, "Task", got.Title)
		assert.Equal(t, "Details", got.Description)
		require.NotNil(t, got.DueDate)
		assert.Equal(t, "2025-01-01", got.DueDate.Format(model.DateLayout))
		assert.True(t, got.IsResolved)
	})

	t.Run("get missing", func(t *testing.T) {
		r := newRepo(t)

		_, err := r.Get(ctx, 999)
		assert.ErrorIs(t, err, ErrorNotFound)
	})

	t.Run("list ordering", func(t *testing.T) {
		r := newRepo(t)
		today := date(2025, 3, 10)
		tomorrow := date(2025, 3, 11)

		noDue, err := r.Create(ctx, model.TodoInput{Title: "No due date"})
		require.NoError(t, err)
		resolved, err := r.Create(ctx, model.TodoInput{Title: "Resolved", DueDate: today, IsResolved: true})
		require.NoError(t, err)
		second, err := r.Create(ctx, model.TodoInput{Title: "Second", DueDate: tomorrow})
		require.NoError(t, err)
		olderToday, err := r.Create(ctx, model.TodoInput{Title: "Older today", DueDate: today})
		require.NoError(t, err)
		first, err := r.Create(ctx, model.TodoInput{Title: "First", DueDate: today})
		require.NoError(t, err)

		list, err := r.List(ctx)
		require.NoError(t, err)

		ids := make([]int64, 0, len(list))
		for _, td := range list {
			ids = append(ids, td.ID)
		}
		assert.Equal(t, []int64{first.ID, olderToday.ID, second.ID, noDue.ID, resolved.ID}, ids)
	})

	t.Run("list empty", func(t *testing.T) {
		r := newRepo(t)

		list, err := r.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("update replaces fields and bumps updated_at", func(t *testing.T) {
		r := newRepo(t)
		created, err := r.Create(ctx, model.TodoInput{Title: "Task", DueDate: date(2025, 1, 1)})
		require.NoError(t, err)

		updated, err := r.Update(ctx, created.ID, model.TodoInput{Title: "Updated", Description: "New", IsResolved: true})
		require.NoError(t, err)

		assert.Equal(t, "Updated", updated.Title)
		assert.Equal(t, "New", updated.Description)
		assert.Nil(t, updated.DueDate)
		assert.True(t, updated.IsResolved)
		assert.True(t, updated.CreatedAt.Equal(created.CreatedAt))
		assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
	})

	t.Run("update missing", func(t *testing.T) {
		r := newRepo(t)

		_, err := r.Update(ctx, 999, model.TodoInput{Title: "x"})
		assert.ErrorIs(t, err, ErrorNotFound)
	})

	t.Run("toggle twice restores flag", func(t *testing.T) {
		r := newRepo(t)
		created, err := r.Create(ctx, model.TodoInput{Title: "Task", Description: "Keep"})
		require.NoError(t, err)

		once, err := r.Toggle(ctx, created.ID)
		require.NoError(t, err)
		assert.True(t, once.IsResolved)
		assert.True(t, once.UpdatedAt.After(created.UpdatedAt))
		assert.Equal(t, "Keep", once.Description)

		twice, err := r.Toggle(ctx, created.ID)
		require.NoError(t, err)
		assert.False(t, twice.IsResolved)
		assert.True(t, twice.UpdatedAt.After(once.UpdatedAt))
		assert.True(t, twice.CreatedAt.Equal(created.CreatedAt))
	})

	t.Run("toggle missing", func(t *testing.T) {
		r := newRepo(t)

		_, err := r.Toggle(ctx, 999)
		assert.ErrorIs(t, err, ErrorNotFound)
	})

	t.Run("concurrent toggles are not lost", func(t *testing.T) {
		r := newRepo(t)
		created, err := r.Create(ctx, model.TodoInput{Title: "Task"})
		require.NoError(t, err)

		const goroutines = 10
		var wg sync.WaitGroup
		for i := 0; i < goroutines; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _ = r.Toggle(ctx, created.ID)
			}()
		}
		wg.Wait()

		got, err := r.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.False(t, got.IsResolved, "an even number of toggles must cancel out")
	})

	t.Run("delete", func(t *testing.T) {
		r := newRepo(t)
		created, err := r.Create(ctx, model.TodoInput{Title: "To delete"})
		require.NoError(t, err)

		require.NoError(t, r.Delete(ctx, created.ID))

		_, err = r.Get(ctx, created.ID)
		assert.ErrorIs(t, err, ErrorNotFound)
		assert.ErrorIs(t, r.Delete(ctx, created.ID), ErrorNotFound)
	})

	t.Run("ping", func(t *testing.T) {
		assert.NoError(t, newRepo(t).Ping(ctx))
	})
}

func TestMemoryRepo_SameTickStillAdvances(t *testing.T) {
	frozen := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	r := NewMemoryRepo(func() time.Time { return frozen })
	ctx := context.Background()

	created, err := r.Create(ctx, model.TodoInput{Title: "Task"})
	require.NoError(t, err)

	toggled, err := r.Toggle(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, toggled.UpdatedAt.After(created.UpdatedAt))
}

func TestMemoryRepo_ReturnsCopies(t *testing.T) {
	r := NewMemoryRepo(nil)
	ctx := context.Background()

	created, err := r.Create(ctx, model.TodoInput{Title: "Task", DueDate: date(2025, 1, 1)})
	require.NoError(t, err)

	*created.DueDate = created.DueDate.AddDate(1, 0, 0)

	got, err := r.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 2025, got.DueDate.Year())
}
