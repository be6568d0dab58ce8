// @title Streak habit collection API
// @description Collection of habits for the streak widget
// @BasePath /
// @schemes http
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/limbo/streak/internal/api"
	"github.com/limbo/streak/internal/repository"
	"github.com/limbo/streak/internal/service"
	"github.com/limbo/streak/internal/validation"
	"github.com/limbo/streak/pkg/cleanup"
	"github.com/limbo/streak/pkg/config"
	"github.com/limbo/streak/pkg/logger"
)

func init() {
	validation.Init()
}

func main() {
	cfg := config.New()
	logg, _, err := logger.New(logger.Config{
		Level:  cfg.GetStringOr("STREAK_LOG_LEVEL", "info"),
		Prefix: "api",
	})
	if err != nil {
		log.Fatal("logger setup error: ", err)
	}
	slog.SetDefault(logg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, err := openRepository(ctx, cfg)
	if err != nil {
		log.Fatal("storage setup error: ", err)
	}
	serv := api.New(&api.ServicesList{
		HabitsService: service.NewHabitsService(repo),
	})
	err = serv.Run(ctx, cfg.GetStringOr("API_ADDRESS", ":3000"))
	if err != nil {
		slog.Error("server error", slog.String("error", err.Error()))
	}
	if failed := cleanup.CleanUp(); failed > 0 || err != nil {
		os.Exit(1)
	}
}

func openRepository(ctx context.Context, cfg *config.Config) (repository.HabitsRepositoryI, error) {
	switch driver := strings.ToLower(cfg.GetStringOr("STORAGE_DRIVER", "sqlite")); driver {
	case "postgres":
		slog.Info("using postgres storage")
		return repository.NewHabitsRepo(ctx, &repository.PGCfg{
			Address:  cfg.GetString("POSTGRES_DB_ADDRESS"),
			Username: cfg.GetString("POSTGRES_USER"),
			Password: cfg.GetString("POSTGRES_PASSWORD"),
			DB:       cfg.GetString("POSTGRES_DB"),
			Params:   cfg.GetString("POSTGRES_PARAMS"),
		})
	case "sqlite":
		path := cfg.GetStringOr("SQLITE_PATH", "streak.db")
		slog.Info("using sqlite storage", slog.String("path", path))
		return repository.NewSQLiteHabitsRepo(ctx, path)
	default:
		log.Fatalf("unknown STORAGE_DRIVER %q", driver)
		return nil, nil
	}
}
