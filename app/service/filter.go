package service

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	models "student-repetition-dashboard/app/models"
)

var ErrInvalidFilter = errors.New("invalid filter")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	err := v.RegisterValidation("school", func(fl validator.FieldLevel) bool {
		return models.IsSchool(fl.Field().String())
	})
	if err != nil {
		panic(fmt.Sprintf("register school validation: %v", err))
	}
	return v
}

// ParseFilter mengubah FilterQuery menjadi FilterState.
// Tanpa Submitted, parameter yang kosong berarti default (semua).
// Dengan Submitted, parameter kosong berarti pilihan kosong.
func ParseFilter(q models.FilterQuery) (models.FilterState, models.LabelMode, error) {
	if err := validate.Struct(q); err != nil {
		return models.FilterState{}, "", fmt.Errorf("%w: %w", ErrInvalidFilter, err)
	}

	state := models.DefaultFilter()

	if len(q.Schools) > 0 || q.Submitted {
		state.Schools = make([]models.School, 0, len(q.Schools))
		for _, name := range q.Schools {
			s := models.School(name)
			if !state.HasSchool(s) {
				state.Schools = append(state.Schools, s)
			}
		}
	}

	if len(q.Levels) > 0 || q.Submitted {
		state.Levels = make([]int, 0, len(q.Levels))
		for _, l := range q.Levels {
			if !state.HasLevel(l) {
				state.Levels = append(state.Levels, l)
			}
		}
	}

	state.Descending = q.Sort != "asc"
	state.ShowTable = q.Table

	mode := models.LabelValue
	if q.Labels == string(models.LabelPercent) {
		mode = models.LabelPercent
	}
	return state, mode, nil
}
