package repository

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/limbo/streak/migrations"
)

// goose keeps dialect and base FS in package globals
var gooseMu sync.Mutex

// Migrate applies the embedded migrations for dialect ("postgres" or
// "sqlite3") to db.
func Migrate(ctx context.Context, db *sql.DB, dialect string) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()
	goose.SetLogger(log.New(io.Discard, "", 0))
	goose.SetBaseFS(migrations.FS)
	defer goose.SetBaseFS(nil)
	if err := goose.SetDialect(dialect); err != nil {
		return errors.New("setting migrations dialect error: " + err.Error())
	}
	dir := "postgres"
	if dialect == "sqlite3" {
		dir = "sqlite"
	}
	if err := goose.UpContext(ctx, db, dir); err != nil {
		return errors.New("applying migrations error: " + err.Error())
	}
	return nil
}

func MigratePostgres(ctx context.Context, connString string) error {
	db, err := sql.Open("pgx", connString)
	if err != nil {
		return errors.New("opening migrations connection error: " + err.Error())
	}
	defer db.Close()
	return Migrate(ctx, db, "postgres")
}
