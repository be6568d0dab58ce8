package entity

import (
	"fmt"
	"time"

	errorvalues "github.com/limbo/streak/internal/error_values"
)

// DateLayout is the canonical start date form produced by the add form.
const DateLayout = "2006-01-02"

var acceptedDateLayouts = []string{
	DateLayout,
	time.RFC3339,
	"2006-01-02T15:04:05",
}

type Habit struct {
	ID          int    `json:"id"`
	Icon        string `json:"icon"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Date        string `json:"date"`
}

// HabitDraft is a habit that has not been persisted yet, so it has no ID.
type HabitDraft struct {
	Icon        string `json:"icon"`
	Name        string `json:"name" validate:"required,max=200"`
	Description string `json:"description" validate:"max=2000"`
	Date        string `json:"date" validate:"required,calendar_date"`
}

func (d HabitDraft) ToHabit(id int) Habit {
	return Habit{
		ID:          id,
		Icon:        d.Icon,
		Name:        d.Name,
		Description: d.Description,
		Date:        d.Date,
	}
}

// StartDate parses Date in loc. Timestamps keep their own zone and are
// converted to loc so the calendar day matches what the user sees.
func (h Habit) StartDate(loc *time.Location) (time.Time, error) {
	return ParseDate(h.Date, loc)
}

func ParseDate(value string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range acceptedDateLayouts {
		t, err := time.ParseInLocation(layout, value, loc)
		if err == nil {
			return t.In(loc), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", errorvalues.ErrInvalidDate, value)
}

// DaysSince counts whole calendar days from start to now, both taken in
// now's location. Start dates after now yield 0.
func DaysSince(start, now time.Time) int {
	start = start.In(now.Location())
	from := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	to := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	// Duration saturates past about 292 years; count Unix seconds instead
	days := int((to.Unix() - from.Unix()) / 86400)
	if days < 0 {
		return 0
	}
	return days
}
