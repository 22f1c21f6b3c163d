package service

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"cultofdrive/internal/errors"
	"cultofdrive/internal/normalize"
)

func fixedValidator() *CarValidator {
	return &CarValidator{now: func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) }}
}

func strPtr(s string) *string { return &s }

func TestCarValidator_ValidateModel(t *testing.T) {
	v := fixedValidator()

	tests := []struct {
		name    string
		model   string
		wantErr string
	}{
		{name: "valid model", model: "E30 M3"},
		{name: "empty model", model: "", wantErr: "Model is required"},
		{name: "whitespace model", model: "   ", wantErr: "Model is required"},
		{name: "too short", model: "M", wantErr: "Model must be between 2 and 100 characters"},
		{name: "too long", model: strings.Repeat("x", 101), wantErr: "Model must be between 2 and 100 characters"},
		{name: "exactly max", model: strings.Repeat("x", 100)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateModel(tt.model)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.IsValidation(err))
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestCarValidator_ValidateYear(t *testing.T) {
	v := fixedValidator()

	tests := []struct {
		name  string
		year  normalize.Int
		valid bool
	}{
		{name: "missing year", year: normalize.Int{}, valid: true},
		{name: "classic", year: normalize.NewInt(1995), valid: true},
		{name: "lower bound", year: normalize.NewInt(1990), valid: true},
		{name: "just before lower bound", year: normalize.NewInt(1989), valid: false},
		{name: "next model year", year: normalize.NewInt(2025), valid: true},
		{name: "too old", year: normalize.NewInt(1800), valid: false},
		{name: "too far ahead", year: normalize.NewInt(2026), valid: false},
		{name: "not a number", year: normalize.Int{Set: true}, valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateYear(tt.year)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, "Invalid year")
			}
		})
	}
}

func TestCarValidator_ValidateCreateAndUpdate(t *testing.T) {
	v := fixedValidator()

	err := v.ValidateCreate(CarInput{})
	assert.EqualError(t, err, "Model is required")

	err = v.ValidateCreate(CarInput{Model: strPtr("E46 M3"), Description: strPtr(strings.Repeat("d", 2001))})
	assert.EqualError(t, err, "Description must be 2000 characters or fewer")

	// partial updates skip the model when it is absent
	assert.NoError(t, v.ValidateUpdate(CarInput{Year: normalize.NewInt(1999)}))
	assert.EqualError(t, v.ValidateUpdate(CarInput{Model: strPtr("")}), "Model is required")
}
