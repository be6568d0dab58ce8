package view

import (
	"bytes"
	"testing"

	errorvalues "github.com/limbo/streak/internal/error_values"
	"github.com/limbo/streak/pkg/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedStreak(h entity.Habit) (int, error) {
	if h.Date == "bad" {
		return 0, errorvalues.ErrInvalidDate
	}
	return h.ID * 10, nil
}

func TestRenderAddCardFirst(t *testing.T) {
	cards := Render(nil, fixedStreak)
	require.Len(t, cards, 1)
	assert.Equal(t, KindAdd, cards[0].Kind)
}

func TestRenderKeepsListOrder(t *testing.T) {
	habits := []entity.Habit{
		{ID: 3, Icon: "book", Name: "Read", Description: "Daily reading", Date: "2024-01-01"},
		{ID: 1, Name: "Run", Date: "2024-06-01"},
		{ID: 2, Name: "Broken", Date: "bad"},
	}
	cards := Render(habits, fixedStreak)
	require.Len(t, cards, 4)
	assert.Equal(t, KindAdd, cards[0].Kind)
	assert.Equal(t, []int{3, 1, 2}, []int{cards[1].HabitID, cards[2].HabitID, cards[3].HabitID})
	assert.Equal(t, Card{
		Kind: KindHabit, HabitID: 3, Icon: "book", Name: "Read",
		Description: "Daily reading", Date: "2024-01-01", Streak: 30,
	}, cards[1])
	assert.Equal(t, "Streak: 30 days", cards[1].StreakLabel())
	assert.Equal(t, "Streak: invalid date", cards[3].StreakLabel())
}

func TestStreakLabelSingular(t *testing.T) {
	assert.Equal(t, "Streak: 1 day", Card{Kind: KindHabit, Streak: 1}.StreakLabel())
	assert.Equal(t, "Streak: 0 days", Card{Kind: KindHabit}.StreakLabel())
}

func TestGlyph(t *testing.T) {
	assert.Equal(t, "📖", Card{Icon: "book"}.Glyph())
	assert.Equal(t, "•", Card{Icon: ""}.Glyph())
	assert.Equal(t, "•", Card{Icon: "unknown-icon"}.Glyph())
}

func TestWritePlain(t *testing.T) {
	cards := Render([]entity.Habit{
		{ID: 1, Icon: "book", Name: "Read", Description: "Daily reading", Date: "2024-01-01"},
		{ID: 2, Name: "Run", Date: "2024-06-01"},
	}, fixedStreak)
	var buf bytes.Buffer
	require.NoError(t, WritePlain(&buf, cards))
	out := buf.String()
	assert.NotContains(t, out, "Add New Habit")
	assert.Contains(t, out, "Read")
	assert.Contains(t, out, "Streak: 10 days  Daily reading")
	assert.Contains(t, out, "Streak: 20 days\n")
}
