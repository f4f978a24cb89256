package memory

import (
	"context"
	"errors"
	"testing"

	"spendbook/internal/core"
)

func TestRecordLifecycle(t *testing.T) {
	ctx := context.Background()
	s := New(SeedCategories())

	id, err := s.Insert(ctx, core.Record{
		OwnerID: "alice", Name: "Lunch", Category: "Food",
		CategoryIcon: "fa-utensils", Amount: 12.5, Date: "2024-03-01",
	})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}

	rec, err := s.FindOne(ctx, id, "alice")
	if err != nil {
		t.Fatalf("FindOne: %v", err)
	}
	if rec.Amount != 12.5 || rec.Category != "Food" {
		t.Errorf("unexpected record: %+v", rec)
	}

	rec.Amount = 15
	if err := s.Save(ctx, rec); err != nil {
		t.Fatalf("Save: %v", err)
	}
	rec, _ = s.FindOne(ctx, id, "alice")
	if rec.Amount != 15 {
		t.Errorf("Save did not persist amount, got %v", rec.Amount)
	}

	if err := s.Remove(ctx, id, "alice"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := s.FindOne(ctx, id, "alice"); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("after Remove err = %v, want ErrNotFound", err)
	}
}

func TestOwnershipIsolation(t *testing.T) {
	ctx := context.Background()
	s := New(nil)

	id, err := s.Insert(ctx, core.Record{OwnerID: "alice", Name: "Lunch", Category: "Food", Amount: 5, Date: "2024-03-01"})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}

	if _, err := s.FindOne(ctx, id, "bob"); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("FindOne for other owner err = %v, want ErrNotFound", err)
	}
	if err := s.Save(ctx, core.Record{ID: id, OwnerID: "bob", Name: "Hijack", Category: "Food", Amount: 1, Date: "2024-03-01"}); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("Save for other owner err = %v, want ErrNotFound", err)
	}
	if err := s.Remove(ctx, id, "bob"); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("Remove for other owner err = %v, want ErrNotFound", err)
	}

	// Alice's record is untouched.
	rec, err := s.FindOne(ctx, id, "alice")
	if err != nil || rec.Name != "Lunch" || rec.Amount != 5 {
		t.Errorf("record changed by foreign mutation attempts: %+v (err %v)", rec, err)
	}
}

func TestFindFilteringAndOrder(t *testing.T) {
	ctx := context.Background()
	s := New(nil)

	seed := []core.Record{
		{OwnerID: "alice", Name: "Rent", Category: "Home", Amount: 800, Date: "2024-02-01"},
		{OwnerID: "alice", Name: "Lunch", Category: "Food", Amount: 12.5, Date: "2024-03-05"},
		{OwnerID: "alice", Name: "Dinner", Category: "Food", Amount: 30, Date: "2024-03-10"},
		{OwnerID: "bob", Name: "Snack", Category: "Food", Amount: 3, Date: "2024-03-05"},
	}
	for _, r := range seed {
		if _, err := s.Insert(ctx, r); err != nil {
			t.Fatalf("Insert: %v", err)
		}
	}

	all, err := s.Find(ctx, core.OwnerFilter("alice"))
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("owner scope leaked: got %d records", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].Date < all[i].Date {
			t.Errorf("records not sorted newest first: %v before %v", all[i-1].Date, all[i].Date)
		}
	}

	f, ok := core.NewFilter("alice", "Food", "2024-03")
	if !ok {
		t.Fatal("filter should have criteria")
	}
	filtered, err := s.Find(ctx, f)
	if err != nil {
		t.Fatalf("Find filtered: %v", err)
	}
	if len(filtered) != 2 {
		t.Fatalf("filtered = %d records, want 2", len(filtered))
	}
}

func TestCategoryLookup(t *testing.T) {
	ctx := context.Background()
	s := New(SeedCategories())

	cats, err := s.List(ctx)
	if err != nil || len(cats) != 5 {
		t.Fatalf("List = %d categories (err %v), want 5", len(cats), err)
	}

	c, err := s.FindByName(ctx, "Food")
	if err != nil {
		t.Fatalf("FindByName: %v", err)
	}
	if c.Icon != "fa-utensils" {
		t.Errorf("icon = %q, want fa-utensils", c.Icon)
	}

	if _, err := s.FindByName(ctx, "Gadgets"); !errors.Is(err, core.ErrCategoryNotFound) {
		t.Errorf("unknown category err = %v, want ErrCategoryNotFound", err)
	}
}
