package service

import (
	"context"
	"errors"
	"log"

	errorvalues "github.com/limbo/streak/internal/error_values"
	"github.com/limbo/streak/internal/repository"
	"github.com/limbo/streak/internal/validation"
	"github.com/limbo/streak/pkg/entity"
)

type HabitsService struct {
	repo repository.HabitsRepositoryI
}

func NewHabitsService(habitsRepo repository.HabitsRepositoryI) *HabitsService {
	if habitsRepo == nil {
		log.Fatal("provided nil habitsRepo")
	}
	return &HabitsService{
		repo: habitsRepo,
	}
}

func (hs *HabitsService) CreateHabit(ctx context.Context, draft *entity.HabitDraft) (*entity.Habit, error) {
	if err := validation.Draft(draft); err != nil {
		return nil, err
	}
	habit, err := hs.repo.Create(ctx, draft)
	if err != nil {
		return nil, errors.New("habits repository error: " + err.Error())
	}
	return habit, nil
}

func (hs *HabitsService) ListHabits(ctx context.Context) ([]entity.Habit, error) {
	habits, err := hs.repo.List(ctx)
	if err != nil {
		return nil, errors.New("habits repository error: " + err.Error())
	}
	return habits, nil
}

func (hs *HabitsService) GetHabit(ctx context.Context, id int) (*entity.Habit, error) {
	habit, err := hs.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrHabitNotFound) {
			return nil, err
		}
		return nil, errors.New("habits repository error: " + err.Error())
	}
	return habit, nil
}

func (hs *HabitsService) DeleteHabit(ctx context.Context, id int) error {
	err := hs.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrHabitNotFound) {
			return err
		}
		return errors.New("habits repository error: " + err.Error())
	}
	return nil
}
