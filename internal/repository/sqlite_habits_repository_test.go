package repository_test

import (
	"context"
	"path/filepath"
	"testing"

	errorvalues "github.com/limbo/streak/internal/error_values"
	"github.com/limbo/streak/internal/repository"
	"github.com/limbo/streak/pkg/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteRepo(t *testing.T, path string) *repository.SQLiteHabitsRepository {
	t.Helper()
	repo, err := repository.NewSQLiteHabitsRepo(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestSQLiteCRUD(t *testing.T) {
	ctx := context.Background()
	repo := newSQLiteRepo(t, ":memory:")

	habits, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, habits)

	read, err := repo.Create(ctx, &readDraft)
	require.NoError(t, err)
	run, err := repo.Create(ctx, &entity.HabitDraft{Name: "Run", Date: "2024-06-01"})
	require.NoError(t, err)
	assert.Greater(t, run.ID, read.ID)

	got, err := repo.GetByID(ctx, read.ID)
	require.NoError(t, err)
	assert.Equal(t, readDraft.ToHabit(read.ID), *got)

	habits, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []entity.Habit{*read, *run}, habits)

	require.NoError(t, repo.Delete(ctx, read.ID))
	assert.ErrorIs(t, repo.Delete(ctx, read.ID), errorvalues.ErrHabitNotFound)
	_, err = repo.GetByID(ctx, read.ID)
	assert.ErrorIs(t, err, errorvalues.ErrHabitNotFound)
}

func TestSQLiteIDsAreNotReused(t *testing.T) {
	ctx := context.Background()
	repo := newSQLiteRepo(t, ":memory:")
	first, err := repo.Create(ctx, &readDraft)
	require.NoError(t, err)
	require.NoError(t, repo.Delete(ctx, first.ID))
	second, err := repo.Create(ctx, &readDraft)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestSQLiteFileIsLocked(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "streak.db")
	repo := newSQLiteRepo(t, path)

	_, err := repository.NewSQLiteHabitsRepo(ctx, path)
	assert.ErrorIs(t, err, errorvalues.ErrStorageLocked)

	created, err := repo.Create(ctx, &readDraft)
	require.NoError(t, err)
	require.NoError(t, repo.Close())

	reopened := newSQLiteRepo(t, path)
	habits, err := reopened.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []entity.Habit{*created}, habits)
}
