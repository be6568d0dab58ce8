package repository

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	errorvalues "github.com/limbo/streak/internal/error_values"
	"github.com/limbo/streak/pkg/cleanup"
	"github.com/limbo/streak/pkg/entity"
)

type HabitsRepository struct {
	conn PgConnection
}

// NewHabitsRepo connects to Postgres, applies migrations and registers
// the pool for closing on shutdown.
func NewHabitsRepo(ctx context.Context, cfg DBConfig) (*HabitsRepository, error) {
	if err := MigratePostgres(ctx, cfg.ConnString()); err != nil {
		return nil, err
	}
	pool, err := pgxpool.New(ctx, cfg.ConnString())
	if err != nil {
		return nil, errors.New("creating connection for habitsRepo error: " + err.Error())
	}
	err = pool.Ping(ctx)
	if err != nil {
		pool.Close()
		return nil, errors.New("error while pinging connection for habitsRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &HabitsRepository{
		conn: pool,
	}, nil
}

func NewHabitsRepoWithConn(conn PgConnection) *HabitsRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for habitsRepo: " + err.Error())
	}
	return &HabitsRepository{
		conn: conn,
	}
}

func (hr *HabitsRepository) Create(ctx context.Context, draft *entity.HabitDraft) (*entity.Habit, error) {
	if draft == nil {
		return nil, errors.New("draft is nil")
	}
	var id int
	row := hr.conn.QueryRow(ctx,
		`INSERT INTO habits (icon, name, description, start_date) VALUES ($1, $2, $3, $4) RETURNING id;`,
		draft.Icon,
		draft.Name,
		draft.Description,
		draft.Date,
	)
	if err := row.Scan(&id); err != nil {
		return nil, errors.New("creating habit db error: " + err.Error())
	}
	habit := draft.ToHabit(id)
	return &habit, nil
}

func (hr *HabitsRepository) GetByID(ctx context.Context, id int) (*entity.Habit, error) {
	habit := entity.Habit{ID: id}
	row := hr.conn.QueryRow(ctx, `SELECT icon, name, description, start_date FROM habits WHERE id = $1;`, id)
	if err := row.Scan(&habit.Icon, &habit.Name, &habit.Description, &habit.Date); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrHabitNotFound
		}
		return nil, errors.New("getting habit by id error: " + err.Error())
	}
	return &habit, nil
}

func (hr *HabitsRepository) List(ctx context.Context) ([]entity.Habit, error) {
	habits := make([]entity.Habit, 0)
	rows, err := hr.conn.Query(ctx, `SELECT id, icon, name, description, start_date FROM habits ORDER BY id;`)
	if err != nil {
		return nil, errors.New("listing habits error: " + err.Error())
	}
	defer rows.Close()
	for rows.Next() {
		h := entity.Habit{}
		err = rows.Scan(&h.ID, &h.Icon, &h.Name, &h.Description, &h.Date)
		if err != nil {
			return nil, errors.New("unmarshalling habit error: " + err.Error())
		}
		habits = append(habits, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected error after scanning: %w", err)
	}
	return habits, nil
}

func (hr *HabitsRepository) Delete(ctx context.Context, id int) error {
	ct, err := hr.conn.Exec(ctx, `DELETE FROM habits WHERE id = $1;`, id)
	if err != nil {
		return errors.New("error deleting habit: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrHabitNotFound
	}
	return nil
}
