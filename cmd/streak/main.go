package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/alecthomas/kong"

	"github.com/limbo/streak/internal/cli"
	"github.com/limbo/streak/internal/remote"
	"github.com/limbo/streak/internal/store"
	"github.com/limbo/streak/pkg/config"
	"github.com/limbo/streak/pkg/logger"
)

var CLI struct {
	APIURL        string        `name:"api-url" help:"Base URL of the habit collection." default:"${api_url}"`
	Timeout       time.Duration `help:"Timeout of a single request." default:"${timeout}"`
	ConfirmDelete bool          `name:"confirm-delete" help:"Ask before deleting in the TUI." default:"${confirm_delete}" negatable:""`
	LogFile       string        `name:"log-file" help:"Log file, rotated." type:"path" default:"${log_file}"`
	LogLevel      string        `name:"log-level" help:"debug, info, warn or error." default:"${log_level}"`

	Tui  cli.TuiCmd  `cmd:"" help:"Launch the interactive habit list." default:"1"`
	List cli.ListCmd `cmd:"" help:"Print habits with their streaks."`
	Add  cli.AddCmd  `cmd:"" help:"Add a habit."`
	Rm   cli.RmCmd   `cmd:"" help:"Delete a habit."`
}

func main() {
	cfg := config.New()
	ctx := kong.Parse(&CLI,
		kong.Name("streak"),
		kong.Description("Track how long you've kept your habits going."),
		kong.UsageOnError(),
		kong.Vars{
			"api_url":        cfg.GetStringOr("STREAK_API_URL", "http://localhost:3000"),
			"timeout":        cfg.GetDuration("STREAK_HTTP_TIMEOUT", 10*time.Second).String(),
			"confirm_delete": strconv.FormatBool(cfg.GetBool("STREAK_CONFIRM_DELETE", true)),
			"log_file":       cfg.GetStringOr("STREAK_LOG_FILE", "streak.log"),
			"log_level":      cfg.GetStringOr("STREAK_LOG_LEVEL", "info"),
		},
	)

	// The terminal belongs to the UI, so logs always go to the file
	logg, closer, err := logger.New(logger.Config{
		Level:  CLI.LogLevel,
		File:   CLI.LogFile,
		Prefix: "streak",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: opening log file: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()
	slog.SetDefault(logg)

	client := remote.New(CLI.APIURL, remote.WithTimeout(CLI.Timeout), remote.WithLogger(logg))
	appCtx := &cli.Context{
		Store:          store.New(client, store.WithLogger(logg)),
		Out:            os.Stdout,
		Logger:         logg,
		RequestTimeout: CLI.Timeout,
		ConfirmDelete:  CLI.ConfirmDelete,
	}

	if err := ctx.Run(appCtx); err != nil {
		closer.Close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
