package core

import (
	"errors"
	"strings"
	"testing"
)

func validRecord() Record {
	return Record{
		OwnerID:      "user-1",
		Name:         "Lunch",
		Category:     "Food",
		CategoryIcon: "fa-utensils",
		Amount:       12.5,
		Date:         "2024-03-01",
	}
}

func TestRecordValidate(t *testing.T) {
	if err := validRecord().Validate(); err != nil {
		t.Fatalf("valid record rejected: %v", err)
	}

	t.Run("missing owner", func(t *testing.T) {
		r := validRecord()
		r.OwnerID = " "
		if err := r.Validate(); err == nil {
			t.Error("expected error for missing owner")
		}
	})

	t.Run("empty name", func(t *testing.T) {
		r := validRecord()
		r.Name = ""
		if err := r.Validate(); !errors.Is(err, ErrEmptyName) {
			t.Errorf("err = %v, want ErrEmptyName", err)
		}
	})

	t.Run("name too long", func(t *testing.T) {
		r := validRecord()
		r.Name = strings.Repeat("x", 201)
		if err := r.Validate(); err == nil {
			t.Error("expected error for oversized name")
		}
	})

	t.Run("empty category", func(t *testing.T) {
		r := validRecord()
		r.Category = ""
		if err := r.Validate(); err == nil {
			t.Error("expected error for empty category")
		}
	})

	t.Run("malformed date", func(t *testing.T) {
		r := validRecord()
		r.Date = "03/01/2024"
		if err := r.Validate(); !errors.Is(err, ErrInvalidDate) {
			t.Errorf("err = %v, want ErrInvalidDate", err)
		}
	})
}

func TestToday(t *testing.T) {
	if got := Today(); len(got) != len(DateLayout) {
		t.Errorf("Today() = %q, want YYYY-MM-DD shape", got)
	}
}
