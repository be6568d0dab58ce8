package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/limbo/streak/pkg/entity"
)

type HabitsRepositoryI interface {
	// Stores draft and returns the habit with its generated id
	Create(ctx context.Context, draft *entity.HabitDraft) (*entity.Habit, error)
	// Searches habit with given id
	GetByID(ctx context.Context, id int) (*entity.Habit, error)
	// Lists every habit ordered by id
	List(ctx context.Context) ([]entity.Habit, error)
	// Deletes habit with id
	Delete(ctx context.Context, id int) error
}

type DBConfig interface {
	ConnString() string
}

type PgConnection interface {
	Ping(ctx context.Context) error
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PGCfg struct {
	Address  string
	Username string
	Password string
	DB       string
	// Appended as query string, e.g. "sslmode=disable"
	Params string
}

func (pgcfg *PGCfg) ConnString() string {
	conn := fmt.Sprintf("postgresql://%s:%s@%s/%s", pgcfg.Username, pgcfg.Password, pgcfg.Address, pgcfg.DB)
	if pgcfg.Params != "" {
		conn += "?" + pgcfg.Params
	}
	return conn
}
