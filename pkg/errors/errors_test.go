package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidDiagram, "unknown diagram: %s", "ternary")

	if err.Code != ErrCodeInvalidDiagram {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidDiagram)
	}

	if err.Message != "unknown diagram: ternary" {
		t.Errorf("Message = %v, want %v", err.Message, "unknown diagram: ternary")
	}

	expected := "INVALID_DIAGRAM: unknown diagram: ternary"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("zip: not a valid zip file")
	err := Wrap(ErrCodeInvalidSpreadsheet, cause, "cannot read workbook")

	if err.Code != ErrCodeInvalidSpreadsheet {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidSpreadsheet)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	if unwrapped := errors.Unwrap(err); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeInvalidInput, "test"),
			code:     ErrCodeInvalidInput,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeInvalidInput, "test"),
			code:     ErrCodeInvalidUnit,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(ErrCodeInternal, New(ErrCodeInvalidInput, "inner"), "outer"),
			code:     ErrCodeInternal,
			expected: true,
		},
		{
			name:     "fmt wrapped",
			err:      fmt.Errorf("select: %w", New(ErrCodeNoPlottableRows, "empty")),
			code:     ErrCodeNoPlottableRows,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidInput,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidInput,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeSessionNotFound, "x")); got != ErrCodeSessionNotFound {
		t.Errorf("GetCode() = %v, want %v", got, ErrCodeSessionNotFound)
	}
	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %v, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := Wrap(ErrCodeInvalidSpreadsheet, errors.New("eof"), "cannot read samples.xlsx")
	if got := UserMessage(err); got != "cannot read samples.xlsx" {
		t.Errorf("UserMessage() = %q", got)
	}
	if got := UserMessage(errors.New("plain")); got != "plain" {
		t.Errorf("UserMessage(plain) = %q", got)
	}
}

func TestIsWarning(t *testing.T) {
	if !IsWarning(New(ErrCodeNoPlottableRows, "no rows")) {
		t.Error("NO_PLOTTABLE_ROWS should be a warning")
	}
	if IsWarning(New(ErrCodeInvalidSpreadsheet, "bad")) {
		t.Error("INVALID_SPREADSHEET should not be a warning")
	}
}
