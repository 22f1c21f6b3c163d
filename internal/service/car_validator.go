package service

import (
	"strings"
	"time"
	"unicode/utf8"

	"cultofdrive/internal/errors"
	"cultofdrive/internal/normalize"
)

const (
	minModelLen       = 2
	maxModelLen       = 100
	maxDescriptionLen = 2000
	minCarYear        = 1990
)

// CarValidator validates car input before it is written.
type CarValidator struct {
	now func() time.Time
}

// NewCarValidator creates a new car validator.
func NewCarValidator() *CarValidator {
	return &CarValidator{now: time.Now}
}

// ValidateCreate validates a new car. The model is required.
func (v *CarValidator) ValidateCreate(in CarInput) error {
	model := ""
	if in.Model != nil {
		model = *in.Model
	}
	if err := v.ValidateModel(model); err != nil {
		return err
	}
	return v.validateOptional(in)
}

// ValidateUpdate validates a partial update. Only fields present are checked.
func (v *CarValidator) ValidateUpdate(in CarInput) error {
	if in.Model != nil {
		if err := v.ValidateModel(*in.Model); err != nil {
			return err
		}
	}
	return v.validateOptional(in)
}

func (v *CarValidator) validateOptional(in CarInput) error {
	if in.Description != nil {
		if err := v.ValidateDescription(*in.Description); err != nil {
			return err
		}
	}
	return v.ValidateYear(in.Year)
}

// ValidateModel checks the model name is present and 2-100 characters long.
func (v *CarValidator) ValidateModel(model string) error {
	model = strings.TrimSpace(model)
	if model == "" {
		return errors.Invalid("Model is required")
	}
	if n := utf8.RuneCountInString(model); n < minModelLen || n > maxModelLen {
		return errors.Invalid("Model must be between 2 and 100 characters")
	}
	return nil
}

// ValidateDescription checks the description length.
func (v *CarValidator) ValidateDescription(description string) error {
	if utf8.RuneCountInString(strings.TrimSpace(description)) > maxDescriptionLen {
		return errors.Invalid("Description must be 2000 characters or fewer")
	}
	return nil
}

// ValidateYear accepts a missing year, or one between 1990 and next year.
func (v *CarValidator) ValidateYear(year normalize.Int) error {
	if !year.Set {
		return nil
	}
	if !year.Valid || year.Value < minCarYear || year.Value > v.now().Year()+1 {
		return errors.Invalid("Invalid year")
	}
	return nil
}
