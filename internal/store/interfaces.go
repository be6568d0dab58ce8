package store

import (
	"context"

	"github.com/limbo/streak/pkg/entity"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_remote.go -package=mocks

type RemoteCollection interface {
	// Fetches the whole collection
	List(ctx context.Context) ([]entity.Habit, error)
	// Persists draft, returns the record with its assigned id
	Create(ctx context.Context, draft entity.HabitDraft) (*entity.Habit, error)
	// Deletes habit with id. Missing habit is reported as ErrHabitNotFound
	Delete(ctx context.Context, id int) error
}
