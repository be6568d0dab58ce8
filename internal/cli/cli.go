package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/limbo/streak/internal/store"
	"github.com/limbo/streak/internal/view"
	"github.com/limbo/streak/pkg/entity"
)

// Context is handed to every command's Run by kong.
type Context struct {
	Store          *store.Store
	Out            io.Writer
	Logger         *slog.Logger
	RequestTimeout time.Duration
	ConfirmDelete  bool
}

func (c *Context) requestCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), c.RequestTimeout)
}

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *Context) error {
	m := view.New(ctx.Store, view.Options{
		ConfirmDelete:  ctx.ConfirmDelete,
		RequestTimeout: ctx.RequestTimeout,
		Logger:         ctx.Logger,
	})
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running tui: %w", err)
	}
	return nil
}

type ListCmd struct{}

func (c *ListCmd) Run(ctx *Context) error {
	reqCtx, cancel := ctx.requestCtx()
	defer cancel()
	habits, err := ctx.Store.Load(reqCtx)
	if err != nil {
		return err
	}
	if len(habits) == 0 {
		fmt.Fprintln(ctx.Out, "No habits yet. Add one with `streak add`.")
		return nil
	}
	return view.WritePlain(ctx.Out, view.Render(habits, ctx.Store.StreakDays))
}

type AddCmd struct {
	Name        string `short:"n" help:"Habit name." required:""`
	Date        string `short:"d" help:"Start date (YYYY-MM-DD)." required:""`
	Description string `short:"D" help:"Optional description."`
	Icon        string `short:"i" help:"Icon identifier, e.g. book or water."`
}

func (c *AddCmd) Run(ctx *Context) error {
	reqCtx, cancel := ctx.requestCtx()
	defer cancel()
	before := len(ctx.Store.Snapshot())
	habits, err := ctx.Store.Add(reqCtx, entity.HabitDraft{
		Icon:        c.Icon,
		Name:        c.Name,
		Description: c.Description,
		Date:        c.Date,
	})
	if err != nil {
		return err
	}
	if len(habits) <= before {
		return nil
	}
	h := habits[len(habits)-1]
	days, err := ctx.Store.StreakDays(h)
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.Out, "Added #%d %s (streak %d)\n", h.ID, h.Name, days)
	return nil
}

type RmCmd struct {
	ID int `arg:"" help:"Id of the habit to delete."`
}

func (c *RmCmd) Validate() error {
	if c.ID <= 0 {
		return fmt.Errorf("id must be positive")
	}
	return nil
}

func (c *RmCmd) Run(ctx *Context) error {
	reqCtx, cancel := ctx.requestCtx()
	defer cancel()
	if _, err := ctx.Store.Remove(reqCtx, c.ID); err != nil {
		return err
	}
	fmt.Fprintf(ctx.Out, "Removed #%d\n", c.ID)
	return nil
}
