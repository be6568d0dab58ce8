package view

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	errorvalues "github.com/limbo/streak/internal/error_values"
	"github.com/limbo/streak/internal/store"
	"github.com/limbo/streak/pkg/entity"
)

type modalState int

const (
	modalClosed modalState = iota
	modalOpen
	// The form is complete and its draft is with the store
	modalSubmitting
)

type habitsLoadedMsg struct {
	habits []entity.Habit
	err    error
}

type habitAddedMsg struct {
	habits []entity.Habit
	err    error
}

type habitRemovedMsg struct {
	id     int
	habits []entity.Habit
	err    error
}

type Options struct {
	ConfirmDelete  bool
	RequestTimeout time.Duration
	Logger         *slog.Logger
}

// Model presents the store's habits and turns key presses into store
// calls. It owns no habit state besides the last rendered cards.
type Model struct {
	store   *store.Store
	opts    Options
	logger  *slog.Logger
	keys    keyMap
	help    help.Model
	spinner spinner.Model

	cards  []Card
	cursor int

	modal modalState
	form  *huh.Form
	draft *entity.HabitDraft

	pendingDelete *Card
	inFlight      int
	status        string
	statusIsError bool

	width  int
	height int
}

func New(s *store.Store, opts Options) Model {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 10 * time.Second
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	m := Model{
		store:   s,
		opts:    opts,
		logger:  logger,
		keys:    defaultKeyMap(),
		help:    help.New(),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
	// Init always starts with a load
	m.inFlight = 1
	m.rerender(s.Snapshot())
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case habitsLoadedMsg:
		m.finishRequest()
		m.rerender(msg.habits)
		if msg.err != nil {
			m.setError("Couldn't load habits", msg.err)
		}
		return m, nil
	case habitAddedMsg:
		m.finishRequest()
		m.rerender(msg.habits)
		if msg.err != nil {
			m.setError("Couldn't add habit", msg.err)
			if m.modal == modalSubmitting {
				// Keep typed values so the user can fix and resubmit
				m.modal = modalOpen
				m.form = newHabitForm(m.draft)
				return m, m.form.Init()
			}
			return m, nil
		}
		m.closeModal()
		m.setStatus("Habit added")
		m.cursor = len(m.cards) - 1
		return m, nil
	case habitRemovedMsg:
		m.finishRequest()
		m.rerender(msg.habits)
		if msg.err != nil {
			m.setError("Couldn't delete habit", msg.err)
			return m, nil
		}
		m.setStatus("Habit deleted")
		return m, nil
	}

	if m.modal != modalClosed {
		return m.updateModal(msg)
	}
	if m.pendingDelete != nil {
		return m.updateConfirm(msg)
	}
	if msg, ok := msg.(tea.KeyMsg); ok {
		return m.updateList(msg)
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.cards)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Add):
		return m.openModal()
	case key.Matches(msg, m.keys.Select):
		if m.selected().Kind == KindAdd {
			return m.openModal()
		}
	case key.Matches(msg, m.keys.Delete):
		card := m.selected()
		if card.Kind != KindHabit {
			return m, nil
		}
		if m.opts.ConfirmDelete {
			m.pendingDelete = &card
			return m, nil
		}
		return m.startRemove(card.HabitID)
	case key.Matches(msg, m.keys.Reload):
		m.inFlight++
		return m, m.loadCmd()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m Model) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Confirm):
		id := m.pendingDelete.HabitID
		m.pendingDelete = nil
		return m.startRemove(id)
	case key.Matches(keyMsg, m.keys.Cancel):
		m.pendingDelete = nil
	}
	return m, nil
}

func (m Model) updateModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	// A completed form keeps reporting StateCompleted, so nothing reaches
	// it until the store answers.
	if m.modal == modalSubmitting {
		return m, nil
	}
	if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, m.keys.Close) {
		m.closeModal()
		return m, nil
	}
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	switch m.form.State {
	case huh.StateCompleted:
		next, addCmd := m.submit(*m.draft)
		return next, tea.Batch(cmd, addCmd)
	case huh.StateAborted:
		m.closeModal()
	}
	return m, cmd
}

func (m Model) openModal() (tea.Model, tea.Cmd) {
	m.modal = modalOpen
	m.draft = &entity.HabitDraft{Date: m.store.Now().Format(entity.DateLayout)}
	m.form = newHabitForm(m.draft)
	return m, m.form.Init()
}

func (m *Model) closeModal() {
	m.modal = modalClosed
	m.form = nil
	m.draft = nil
}

// submit hands the draft to the store. The modal stays up, locked,
// until the store answers.
func (m Model) submit(draft entity.HabitDraft) (Model, tea.Cmd) {
	m.modal = modalSubmitting
	m.inFlight++
	s, timeout := m.store, m.opts.RequestTimeout
	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		habits, err := s.Add(ctx, draft)
		return habitAddedMsg{habits: habits, err: err}
	}
}

func (m Model) startRemove(id int) (tea.Model, tea.Cmd) {
	m.inFlight++
	s, timeout := m.store, m.opts.RequestTimeout
	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		habits, err := s.Remove(ctx, id)
		return habitRemovedMsg{id: id, habits: habits, err: err}
	}
}

func (m Model) loadCmd() tea.Cmd {
	s, timeout := m.store, m.opts.RequestTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		habits, err := s.Load(ctx)
		return habitsLoadedMsg{habits: habits, err: err}
	}
}

func (m *Model) rerender(habits []entity.Habit) {
	m.cards = Render(habits, m.store.StreakDays)
	if m.cursor >= len(m.cards) {
		m.cursor = len(m.cards) - 1
	}
}

func (m *Model) finishRequest() {
	if m.inFlight > 0 {
		m.inFlight--
	}
}

func (m Model) selected() Card {
	return m.cards[m.cursor]
}

func (m *Model) setStatus(s string) {
	m.status, m.statusIsError = s, false
}

func (m *Model) setError(prefix string, err error) {
	m.status, m.statusIsError = prefix+": "+describe(err), true
	m.logger.Debug("request failed", slog.String("what", prefix), slog.String("error", err.Error()))
}

func describe(err error) string {
	switch {
	case errors.Is(err, errorvalues.ErrInvalidDate):
		return "start date must look like YYYY-MM-DD"
	case errors.Is(err, errorvalues.ErrInvalidHabit):
		return "name is required"
	case errors.Is(err, errorvalues.ErrNetworkFailure):
		return "server unreachable"
	case errors.Is(err, errorvalues.ErrBadStatus):
		return "server refused the request"
	case errors.Is(err, errorvalues.ErrMalformedData):
		return "server sent unexpected data"
	}
	return err.Error()
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Streak"))
	if m.inFlight > 0 {
		b.WriteString(" " + m.spinner.View())
	}
	b.WriteString("\n\n")

	switch m.modal {
	case modalOpen:
		b.WriteString(modalStyle.Render(m.form.View()))
		b.WriteString("\n" + dimStyle.Render("esc close"))
		return b.String()
	case modalSubmitting:
		b.WriteString(modalStyle.Render("Saving " + m.draft.Name + "..."))
		return b.String()
	}

	for i, c := range m.cards {
		b.WriteString(m.renderCard(c, i == m.cursor))
		b.WriteString("\n")
	}

	switch {
	case m.pendingDelete != nil:
		b.WriteString(errorStyle.Render(fmt.Sprintf("Delete %q? (y/n)", m.pendingDelete.Name)))
	case m.status != "" && m.statusIsError:
		b.WriteString(errorStyle.Render(m.status))
	case m.status != "":
		b.WriteString(dimStyle.Render(m.status))
	}
	b.WriteString("\n" + m.help.View(m.keys))
	return b.String()
}

func (m Model) renderCard(c Card, selected bool) string {
	style := cardStyle
	if selected {
		style = selectedCardStyle
	}
	if c.Kind == KindAdd {
		return style.Render(c.Glyph() + " " + c.Name)
	}
	lines := []string{c.Glyph() + " " + nameStyle.Render(c.Name)}
	if c.Description != "" {
		lines = append(lines, c.Description)
	}
	lines = append(lines, dimStyle.Render(c.Date))
	if c.StreakErr != nil {
		lines = append(lines, errorStyle.Render(c.StreakLabel()))
	} else {
		lines = append(lines, streakStyle.Render(c.StreakLabel()))
	}
	return style.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func newHabitForm(d *entity.HabitDraft) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Name").
				Value(&d.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("name is required")
					}
					return nil
				}),
			huh.NewText().
				Key("description").
				Title("Description").
				Lines(3).
				Value(&d.Description),
			huh.NewInput().
				Key("date").
				Title("Start date").
				Placeholder(entity.DateLayout).
				Value(&d.Date).
				Validate(func(s string) error {
					if _, err := entity.ParseDate(strings.TrimSpace(s), time.Local); err != nil {
						return errors.New("use YYYY-MM-DD")
					}
					return nil
				}),
		).Title("New habit"),
	).WithShowHelp(false)
}
