package core

import (
	"errors"
	"strings"
	"time"
)

// DateLayout is the sortable storage form of a record date.
const DateLayout = "2006-01-02"

type (
	// Record is a single dated expenditure owned by one user.
	Record struct {
		ID       int64
		OwnerID  string // set once at creation, never part of an update
		Name     string
		Category string
		// CategoryIcon is denormalized from the category at the most
		// recent create or update. A later icon change on the category
		// does not propagate back to existing records.
		CategoryIcon string
		Amount       float64
		Date         string // YYYY-MM-DD
	}

	// Category is a name/icon pair. Read-only at runtime; the set is
	// managed by migrations.
	Category struct {
		Name string
		Icon string
	}
)

var (
	ErrNotFound         = errors.New("record not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidDate      = errors.New("invalid date")
	ErrEmptyName        = errors.New("empty record name")
)

func (r Record) Validate() error {
	if strings.TrimSpace(r.OwnerID) == "" {
		return errors.New("missing owner")
	}
	if strings.TrimSpace(r.Name) == "" {
		return ErrEmptyName
	}
	if len(r.Name) > 200 {
		return errors.New("record name too long (max 200 characters)")
	}
	if strings.TrimSpace(r.Category) == "" {
		return errors.New("empty category")
	}
	if _, err := time.Parse(DateLayout, r.Date); err != nil {
		return ErrInvalidDate
	}
	return nil
}

// Today returns the current date in storage form.
func Today() string {
	return time.Now().Format(DateLayout)
}
