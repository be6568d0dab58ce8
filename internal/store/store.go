package store

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"slices"
	"sync"
	"time"

	errorvalues "github.com/limbo/streak/internal/error_values"
	"github.com/limbo/streak/internal/validation"
	"github.com/limbo/streak/pkg/entity"
)

// Store is the local source of truth for habits. The list only changes
// after the remote collection confirms a request.
type Store struct {
	remote RemoteCollection
	clock  func() time.Time
	logger *slog.Logger

	mu     sync.RWMutex
	habits []entity.Habit
}

type Option func(*Store)

func WithClock(clock func() time.Time) Option {
	return func(s *Store) { s.clock = clock }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

func New(remote RemoteCollection, opts ...Option) *Store {
	if remote == nil {
		log.Fatal("provided nil remote collection")
	}
	s := &Store{
		remote: remote,
		clock:  time.Now,
		logger: slog.Default(),
		habits: make([]entity.Habit, 0),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns a copy of the current list.
func (s *Store) Snapshot() []entity.Habit {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.habits)
}

// Load replaces the list with the remote collection. On failure the prior
// list stays and is returned with the error.
func (s *Store) Load(ctx context.Context) ([]entity.Habit, error) {
	habits, err := s.remote.List(ctx)
	if err != nil {
		s.logger.Error("loading habits failed", slog.String("error", err.Error()))
		return s.Snapshot(), err
	}
	s.mu.Lock()
	s.habits = dedupe(habits)
	out := slices.Clone(s.habits)
	s.mu.Unlock()
	s.logger.Info("habits loaded", slog.Int("count", len(out)))
	return out, nil
}

// Add validates the draft, creates it remotely and appends the confirmed
// record. Invalid drafts never reach the remote collection.
func (s *Store) Add(ctx context.Context, draft entity.HabitDraft) ([]entity.Habit, error) {
	if err := validation.Draft(&draft); err != nil {
		s.logger.Error("adding habit failed", slog.String("error", err.Error()))
		return s.Snapshot(), err
	}
	created, err := s.remote.Create(ctx, draft)
	if err != nil {
		s.logger.Error("adding habit failed", slog.String("name", draft.Name), slog.String("error", err.Error()))
		return s.Snapshot(), err
	}
	s.mu.Lock()
	if i := s.indexOf(created.ID); i >= 0 {
		// Keep ids unique if the collection reuses one we still hold
		s.habits[i] = *created
	} else {
		s.habits = append(s.habits, *created)
	}
	out := slices.Clone(s.habits)
	s.mu.Unlock()
	s.logger.Info("habit added", slog.Int("id", created.ID), slog.String("name", created.Name))
	return out, nil
}

// Remove deletes id remotely, then locally. A habit the collection no
// longer has counts as removed.
func (s *Store) Remove(ctx context.Context, id int) ([]entity.Habit, error) {
	err := s.remote.Delete(ctx, id)
	if err != nil && !errors.Is(err, errorvalues.ErrHabitNotFound) {
		s.logger.Error("removing habit failed", slog.Int("id", id), slog.String("error", err.Error()))
		return s.Snapshot(), err
	}
	if err != nil {
		s.logger.Warn("habit already gone from collection", slog.Int("id", id))
	}
	s.mu.Lock()
	s.habits = slices.DeleteFunc(s.habits, func(h entity.Habit) bool { return h.ID == id })
	out := slices.Clone(s.habits)
	s.mu.Unlock()
	s.logger.Info("habit removed", slog.Int("id", id))
	return out, nil
}

// Now reads the store clock.
func (s *Store) Now() time.Time {
	return s.clock()
}

// StreakDays is the number of whole days between the habit's start date
// and the store clock. It is recomputed on every call.
func (s *Store) StreakDays(h entity.Habit) (int, error) {
	now := s.Now()
	start, err := h.StartDate(now.Location())
	if err != nil {
		return 0, err
	}
	return entity.DaysSince(start, now), nil
}

func (s *Store) indexOf(id int) int {
	return slices.IndexFunc(s.habits, func(h entity.Habit) bool { return h.ID == id })
}

// dedupe keeps the last record for each id, in first-seen order.
func dedupe(habits []entity.Habit) []entity.Habit {
	out := make([]entity.Habit, 0, len(habits))
	pos := make(map[int]int, len(habits))
	for _, h := range habits {
		if i, ok := pos[h.ID]; ok {
			out[i] = h
			continue
		}
		pos[h.ID] = len(out)
		out = append(out, h)
	}
	return out
}
