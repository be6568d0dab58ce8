package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	errorvalues "github.com/limbo/streak/internal/error_values"
	"github.com/limbo/streak/pkg/cleanup"
	"github.com/limbo/streak/pkg/entity"
	_ "modernc.org/sqlite"
)

const inMemory = ":memory:"

// SQLiteHabitsRepository keeps habits in a local SQLite file. The file is
// locked for the lifetime of the repository so only one server uses it.
type SQLiteHabitsRepository struct {
	db   *sql.DB
	lock *flock.Flock
}

func NewSQLiteHabitsRepo(ctx context.Context, path string) (*SQLiteHabitsRepository, error) {
	repo := &SQLiteHabitsRepository{}
	dsn := inMemory
	if path != inMemory {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
		repo.lock = flock.New(path + ".lock")
		locked, err := repo.lock.TryLock()
		if err != nil {
			return nil, fmt.Errorf("acquiring storage lock: %w", err)
		}
		if !locked {
			return nil, fmt.Errorf("%w: %s", errorvalues.ErrStorageLocked, path)
		}
		dsn = fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		repo.unlock()
		return nil, fmt.Errorf("opening sqlite: %w", err)
	}
	// SQLite only supports one writer, and :memory: is per connection
	db.SetMaxOpenConns(1)
	repo.db = db
	if err := db.PingContext(ctx); err != nil {
		repo.Close()
		return nil, fmt.Errorf("pinging sqlite: %w", err)
	}
	if err := Migrate(ctx, db, "sqlite3"); err != nil {
		repo.Close()
		return nil, err
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing sqlite",
		F:    repo.Close,
	})
	return repo, nil
}

func (r *SQLiteHabitsRepository) Close() error {
	var err error
	if r.db != nil {
		err = r.db.Close()
		r.db = nil
	}
	r.unlock()
	return err
}

func (r *SQLiteHabitsRepository) unlock() {
	if r.lock != nil {
		r.lock.Unlock()
	}
}

func (r *SQLiteHabitsRepository) Create(ctx context.Context, draft *entity.HabitDraft) (*entity.Habit, error) {
	if draft == nil {
		return nil, errors.New("draft is nil")
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO habits (icon, name, description, start_date) VALUES (?, ?, ?, ?);`,
		draft.Icon, draft.Name, draft.Description, draft.Date,
	)
	if err != nil {
		return nil, errors.New("creating habit db error: " + err.Error())
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, errors.New("reading habit id error: " + err.Error())
	}
	habit := draft.ToHabit(int(id))
	return &habit, nil
}

func (r *SQLiteHabitsRepository) GetByID(ctx context.Context, id int) (*entity.Habit, error) {
	habit := entity.Habit{ID: id}
	row := r.db.QueryRowContext(ctx, `SELECT icon, name, description, start_date FROM habits WHERE id = ?;`, id)
	if err := row.Scan(&habit.Icon, &habit.Name, &habit.Description, &habit.Date); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errorvalues.ErrHabitNotFound
		}
		return nil, errors.New("getting habit by id error: " + err.Error())
	}
	return &habit, nil
}

func (r *SQLiteHabitsRepository) List(ctx context.Context) ([]entity.Habit, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, icon, name, description, start_date FROM habits ORDER BY id;`)
	if err != nil {
		return nil, errors.New("listing habits error: " + err.Error())
	}
	defer rows.Close()
	habits := make([]entity.Habit, 0)
	for rows.Next() {
		h := entity.Habit{}
		if err := rows.Scan(&h.ID, &h.Icon, &h.Name, &h.Description, &h.Date); err != nil {
			return nil, errors.New("unmarshalling habit error: " + err.Error())
		}
		habits = append(habits, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected error after scanning: %w", err)
	}
	return habits, nil
}

func (r *SQLiteHabitsRepository) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM habits WHERE id = ?;`, id)
	if err != nil {
		return errors.New("error deleting habit: " + err.Error())
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.New("error deleting habit: " + err.Error())
	}
	if n == 0 {
		return errorvalues.ErrHabitNotFound
	}
	return nil
}
