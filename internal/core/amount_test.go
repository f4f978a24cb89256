package core

import (
	"errors"
	"testing"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    float64
		wantErr bool
	}{
		{"integer", "20", 20, false},
		{"decimal", "12.50", 12.5, false},
		{"leading whitespace", "  7.25 ", 7.25, false},
		{"negative passes through", "-3.5", -3.5, false},
		{"zero", "0", 0, false},
		{"letters", "abc", 0, true},
		{"empty", "", 0, true},
		{"whitespace only", "   ", 0, true},
		{"trailing garbage", "12.5x", 0, true},
		{"nan", "NaN", 0, true},
		{"infinity", "Inf", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidAmount) {
					t.Fatalf("ParseAmount(%q) err = %v, want ErrInvalidAmount", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAmount(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseAmount(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		input float64
		want  string
	}{
		{20, "20"},
		{12.5, "12.5"},
		{1234567.891, "1,234,567.891"},
		{1000, "1,000"},
		{0, "0"},
	}

	for _, tt := range tests {
		if got := FormatAmount(tt.input); got != tt.want {
			t.Errorf("FormatAmount(%v) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
