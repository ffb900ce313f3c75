package validator

import (
	"errors"
	"reflect"
	"testing"
)

type sample struct {
	Prompt string `json:"prompt" validate:"required"`
	Format string `query:"format" validate:"omitempty,oneof=text timestamped"`
}

func TestFieldErrors(t *testing.T) {
	err := New().Validate(&sample{Format: "srt"})
	if err == nil {
		t.Fatal("expected validation error")
	}

	want := map[string]string{
		"prompt": "required",
		"format": "oneof=text timestamped",
	}
	if got := FieldErrors(err); !reflect.DeepEqual(got, want) {
		t.Errorf("FieldErrors = %v, want %v", got, want)
	}
}

func TestFieldErrorsIgnoresOtherErrors(t *testing.T) {
	if FieldErrors(errors.New("boom")) != nil {
		t.Error("non-validation error should yield nil")
	}
	if err := New().Validate(&sample{Prompt: "x", Format: "text"}); err != nil {
		t.Errorf("valid struct rejected: %v", err)
	}
}
