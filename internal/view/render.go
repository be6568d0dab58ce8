package view

import (
	"fmt"
	"io"
	"strings"

	"github.com/limbo/streak/pkg/entity"
)

type CardKind int

const (
	KindAdd CardKind = iota
	KindHabit
)

// Card is one node of the rendered habit list.
type Card struct {
	Kind        CardKind
	HabitID     int
	Icon        string
	Name        string
	Description string
	Date        string
	Streak      int
	StreakErr   error
}

// StreakFunc computes the streak of a habit at render time.
type StreakFunc func(entity.Habit) (int, error)

// Render builds the card list: the "add new" card first, then one card
// per habit in list order.
func Render(habits []entity.Habit, streak StreakFunc) []Card {
	cards := make([]Card, 0, len(habits)+1)
	cards = append(cards, Card{Kind: KindAdd, Icon: "add-circle-outline", Name: "Add New Habit"})
	for _, h := range habits {
		days, err := streak(h)
		cards = append(cards, Card{
			Kind:        KindHabit,
			HabitID:     h.ID,
			Icon:        h.Icon,
			Name:        h.Name,
			Description: h.Description,
			Date:        h.Date,
			Streak:      days,
			StreakErr:   err,
		})
	}
	return cards
}

func (c Card) StreakLabel() string {
	if c.StreakErr != nil {
		return "Streak: invalid date"
	}
	if c.Streak == 1 {
		return "Streak: 1 day"
	}
	return fmt.Sprintf("Streak: %d days", c.Streak)
}

var glyphs = map[string]string{
	"add-circle-outline": "+",
	"book":               "📖",
	"book-outline":       "📖",
	"barbell":            "🏋",
	"barbell-outline":    "🏋",
	"bicycle":            "🚲",
	"walk":               "🚶",
	"water":              "💧",
	"water-outline":      "💧",
	"bed":                "🛏",
	"leaf":               "🍃",
	"musical-notes":      "🎵",
	"code":               "⌨",
	"code-slash":         "⌨",
}

// Glyph maps an icon identifier to something a terminal can draw.
func (c Card) Glyph() string {
	if g, ok := glyphs[c.Icon]; ok {
		return g
	}
	return "•"
}

// WritePlain prints habit cards one per line, skipping the add card.
func WritePlain(w io.Writer, cards []Card) error {
	for _, c := range cards {
		if c.Kind != KindHabit {
			continue
		}
		line := fmt.Sprintf("%4d  %s %-24s %-10s  %s", c.HabitID, c.Glyph(), c.Name, c.Date, c.StreakLabel())
		if c.Description != "" {
			line += "  " + c.Description
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}
	return nil
}
