package validation

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	errorvalues "github.com/limbo/streak/internal/error_values"
	"github.com/limbo/streak/pkg/entity"
)

// Package for draft validations shared by the API and the client store
var (
	validate *validator.Validate
	once     sync.Once
)

func Init() {
	once.Do(func() {
		validate = validator.New()
		validate.RegisterValidation("calendar_date", func(fl validator.FieldLevel) bool {
			_, err := entity.ParseDate(fl.Field().String(), time.UTC)
			return err == nil
		})
	})
}

// Draft checks the draft and returns an error wrapping ErrInvalidHabit
// (and ErrInvalidDate when the date is the problem).
func Draft(d *entity.HabitDraft) error {
	Init()
	if d == nil {
		return fmt.Errorf("%w: empty draft", errorvalues.ErrInvalidHabit)
	}
	d.Name = strings.TrimSpace(d.Name)
	d.Date = strings.TrimSpace(d.Date)
	err := validate.Struct(*d)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errors.New("validation unexpected error: " + err.Error())
	}
	result := errorvalues.ErrInvalidHabit
	msgs := make([]string, 0, len(fieldErrs))
	for _, fieldErr := range fieldErrs {
		if fieldErr.Tag() == "calendar_date" {
			result = errors.Join(errorvalues.ErrInvalidHabit, errorvalues.ErrInvalidDate)
		}
		msgs = append(msgs, fmt.Sprintf("%s failed on %s", strings.ToLower(fieldErr.Field()), fieldErr.Tag()))
	}
	return fmt.Errorf("%w: %s", result, strings.Join(msgs, ", "))
}
