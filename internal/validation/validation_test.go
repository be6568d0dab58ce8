package validation_test

import (
	"testing"

	errorvalues "github.com/limbo/streak/internal/error_values"
	"github.com/limbo/streak/internal/validation"
	"github.com/limbo/streak/pkg/entity"
	"github.com/stretchr/testify/assert"
)

func TestDraft(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		d := entity.HabitDraft{Name: "  Read ", Date: "2024-01-01"}
		assert.NoError(t, validation.Draft(&d))
		assert.Equal(t, "Read", d.Name)
	})
	t.Run("missing name", func(t *testing.T) {
		err := validation.Draft(&entity.HabitDraft{Name: "   ", Date: "2024-01-01"})
		assert.ErrorIs(t, err, errorvalues.ErrInvalidHabit)
		assert.NotErrorIs(t, err, errorvalues.ErrInvalidDate)
		assert.Contains(t, err.Error(), "name")
	})
	t.Run("bad date", func(t *testing.T) {
		err := validation.Draft(&entity.HabitDraft{Name: "Read", Date: "01/02/2024"})
		assert.ErrorIs(t, err, errorvalues.ErrInvalidHabit)
		assert.ErrorIs(t, err, errorvalues.ErrInvalidDate)
	})
	t.Run("missing date", func(t *testing.T) {
		err := validation.Draft(&entity.HabitDraft{Name: "Read"})
		assert.ErrorIs(t, err, errorvalues.ErrInvalidHabit)
	})
	t.Run("nil", func(t *testing.T) {
		assert.ErrorIs(t, validation.Draft(nil), errorvalues.ErrInvalidHabit)
	})
}
