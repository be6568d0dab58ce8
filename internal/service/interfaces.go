package service

import (
	"context"

	"github.com/limbo/streak/pkg/entity"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_service.go -package=mocks

type HabitsServiceI interface {
	// Validates draft and stores it. Returns the habit with its new id
	CreateHabit(ctx context.Context, draft *entity.HabitDraft) (*entity.Habit, error)
	// Lists the whole collection
	ListHabits(ctx context.Context) ([]entity.Habit, error)
	GetHabit(ctx context.Context, id int) (*entity.Habit, error)
	DeleteHabit(ctx context.Context, id int) error
}
