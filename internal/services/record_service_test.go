package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"spendbook/internal/core"
	"spendbook/internal/store/memory"
)

type countingStore struct {
	*memory.Store
	findCalls int
}

func (c *countingStore) Find(ctx context.Context, f core.Filter) ([]core.Record, error) {
	c.findCalls++
	return c.Store.Find(ctx, f)
}

type capturingPublisher struct {
	actions []string
	records []core.Record
	err     error
}

func (p *capturingPublisher) PublishRecordEvent(_ context.Context, action string, rec core.Record) error {
	p.actions = append(p.actions, action)
	p.records = append(p.records, rec)
	return p.err
}

func newTestService(events EventPublisher) (*RecordService, *countingStore) {
	s := &countingStore{Store: memory.New(memory.SeedCategories())}
	dir := NewCategoryDirectory(s.Store, time.Minute)
	return NewRecordService(s, dir, events), s
}

func TestCreateStampsIconAndOwner(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(nil)

	rec, err := svc.Create(ctx, "alice", RecordInput{
		Name: "Lunch", Category: "Food", Amount: "12.50", Date: "2024-03-01",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.ID == 0 {
		t.Error("Create did not assign an id")
	}
	if rec.OwnerID != "alice" {
		t.Errorf("OwnerID = %q, want alice", rec.OwnerID)
	}
	if rec.CategoryIcon != "fa-utensils" {
		t.Errorf("CategoryIcon = %q, want fa-utensils", rec.CategoryIcon)
	}
	if rec.Amount != 12.5 {
		t.Errorf("Amount = %v, want 12.5", rec.Amount)
	}
}

func TestCreateDefaultsDateToToday(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(nil)

	rec, err := svc.Create(ctx, "alice", RecordInput{Name: "Lunch", Category: "Food", Amount: "5"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.Date != core.Today() {
		t.Errorf("Date = %q, want today", rec.Date)
	}
}

func TestCreateRejectsBadInput(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(nil)

	if _, err := svc.Create(ctx, "alice", RecordInput{Name: "x", Category: "Food", Amount: "abc"}); !errors.Is(err, core.ErrInvalidAmount) {
		t.Errorf("bad amount err = %v, want ErrInvalidAmount", err)
	}
	if _, err := svc.Create(ctx, "alice", RecordInput{Name: "x", Category: "Gadgets", Amount: "5"}); !errors.Is(err, core.ErrCategoryNotFound) {
		t.Errorf("unknown category err = %v, want ErrCategoryNotFound", err)
	}
	if _, err := svc.Create(ctx, "alice", RecordInput{Name: "x", Category: "Food", Amount: "5", Date: "not-a-date"}); !errors.Is(err, core.ErrInvalidDate) {
		t.Errorf("bad date err = %v, want ErrInvalidDate", err)
	}
}

func TestCreatePublishesEvent(t *testing.T) {
	ctx := context.Background()
	pub := &capturingPublisher{}
	svc, _ := newTestService(pub)

	if _, err := svc.Create(ctx, "alice", RecordInput{Name: "Lunch", Category: "Food", Amount: "5", Date: "2024-03-01"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(pub.actions) != 1 || pub.actions[0] != "created" {
		t.Errorf("published actions = %v, want [created]", pub.actions)
	}
}

func TestCreateSucceedsWhenPublishFails(t *testing.T) {
	ctx := context.Background()
	pub := &capturingPublisher{err: errors.New("broker down")}
	svc, _ := newTestService(pub)

	if _, err := svc.Create(ctx, "alice", RecordInput{Name: "Lunch", Category: "Food", Amount: "5", Date: "2024-03-01"}); err != nil {
		t.Fatalf("Create should not fail on publish error, got %v", err)
	}
}

func TestListWithoutCriteriaSkipsReads(t *testing.T) {
	ctx := context.Background()
	svc, cs := newTestService(nil)

	res, err := svc.List(ctx, "alice", "", "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if !res.NoFilter {
		t.Error("NoFilter should be set when no criteria are supplied")
	}
	if cs.findCalls != 0 {
		t.Errorf("store queried %d times, want 0", cs.findCalls)
	}
}

func TestListFiltersAndAggregates(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(nil)

	seed := []RecordInput{
		{Name: "Rent", Category: "Home", Amount: "800", Date: "2024-02-01"},
		{Name: "Lunch", Category: "Food", Amount: "12.5", Date: "2024-03-05"},
		{Name: "Dinner", Category: "Food", Amount: "30", Date: "2024-03-10"},
	}
	for _, in := range seed {
		if _, err := svc.Create(ctx, "alice", in); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	res, err := svc.List(ctx, "alice", "Food", "2024-03")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if res.NoFilter {
		t.Error("NoFilter set for a filtered query")
	}
	if len(res.Records) != 2 {
		t.Fatalf("records = %d, want 2", len(res.Records))
	}
	if res.Total != 42.5 {
		t.Errorf("Total = %v, want 42.5", res.Total)
	}
	if res.TotalDisplay != "42.5" {
		t.Errorf("TotalDisplay = %q, want 42.5", res.TotalDisplay)
	}

	// Month buckets come from the full set, not the filtered one.
	wantMonths := []string{"2024-03", "2024-02"}
	if len(res.Months) != len(wantMonths) {
		t.Fatalf("Months = %v, want %v", res.Months, wantMonths)
	}
	for i := range wantMonths {
		if res.Months[i] != wantMonths[i] {
			t.Errorf("Months[%d] = %q, want %q", i, res.Months[i], wantMonths[i])
		}
	}

	var foodSelected bool
	for _, c := range res.Categories {
		if c.Name == "Food" && c.Selected {
			foodSelected = true
		}
		if c.Name != "Food" && c.Selected {
			t.Errorf("category %q should not be selected", c.Name)
		}
	}
	if !foodSelected {
		t.Error("Food should be selected")
	}
}

func TestOverviewAggregatesEverything(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(nil)

	for _, in := range []RecordInput{
		{Name: "Rent", Category: "Home", Amount: "800", Date: "2024-02-01"},
		{Name: "Lunch", Category: "Food", Amount: "200", Date: "2024-03-05"},
	} {
		if _, err := svc.Create(ctx, "alice", in); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	res, err := svc.Overview(ctx, "alice")
	if err != nil {
		t.Fatalf("Overview: %v", err)
	}
	if len(res.Records) != 2 {
		t.Errorf("records = %d, want 2", len(res.Records))
	}
	if res.TotalDisplay != "1,000" {
		t.Errorf("TotalDisplay = %q, want 1,000", res.TotalDisplay)
	}
	if len(res.Months) != 2 {
		t.Errorf("Months = %v, want two buckets", res.Months)
	}
}

func TestEditViewMarksCurrentCategory(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(nil)

	rec, err := svc.Create(ctx, "alice", RecordInput{Name: "Lunch", Category: "Food", Amount: "5", Date: "2024-03-01"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	view, err := svc.EditView(ctx, "alice", rec.ID)
	if err != nil {
		t.Fatalf("EditView: %v", err)
	}
	if view.Record.ID != rec.ID {
		t.Errorf("record id = %d, want %d", view.Record.ID, rec.ID)
	}
	for _, c := range view.Categories {
		if c.Selected != (c.Name == "Food") {
			t.Errorf("category %q selected = %v", c.Name, c.Selected)
		}
	}

	if _, err := svc.EditView(ctx, "bob", rec.ID); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("foreign EditView err = %v, want ErrNotFound", err)
	}
}

func TestUpdateMergesFields(t *testing.T) {
	ctx := context.Background()
	pub := &capturingPublisher{}
	svc, _ := newTestService(pub)

	rec, err := svc.Create(ctx, "alice", RecordInput{Name: "Lunch", Category: "Food", Amount: "12.5", Date: "2024-03-01"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Only the category changes; everything else keeps its stored value.
	updated, err := svc.Update(ctx, "alice", rec.ID, RecordInput{Category: "Home"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Name != "Lunch" || updated.Amount != 12.5 || updated.Date != "2024-03-01" {
		t.Errorf("unchanged fields were lost: %+v", updated)
	}
	if updated.Category != "Home" || updated.CategoryIcon != "fa-home" {
		t.Errorf("category not re-resolved: %+v", updated)
	}
	if updated.OwnerID != "alice" {
		t.Errorf("owner changed: %q", updated.OwnerID)
	}

	if pub.actions[len(pub.actions)-1] != "updated" {
		t.Errorf("last action = %q, want updated", pub.actions[len(pub.actions)-1])
	}
}

func TestUpdateErrors(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(nil)

	rec, err := svc.Create(ctx, "alice", RecordInput{Name: "Lunch", Category: "Food", Amount: "5", Date: "2024-03-01"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.Update(ctx, "alice", 999, RecordInput{Name: "x"}); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("missing record err = %v, want ErrNotFound", err)
	}
	if _, err := svc.Update(ctx, "bob", rec.ID, RecordInput{Name: "x"}); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("foreign update err = %v, want ErrNotFound", err)
	}
	if _, err := svc.Update(ctx, "alice", rec.ID, RecordInput{Amount: "abc"}); !errors.Is(err, core.ErrInvalidAmount) {
		t.Errorf("bad amount err = %v, want ErrInvalidAmount", err)
	}
	if _, err := svc.Update(ctx, "alice", rec.ID, RecordInput{Category: "Gadgets"}); !errors.Is(err, core.ErrCategoryNotFound) {
		t.Errorf("unknown category err = %v, want ErrCategoryNotFound", err)
	}

	// Failed updates leave the record untouched.
	got, err := svc.EditView(ctx, "alice", rec.ID)
	if err != nil || got.Record.Amount != 5 || got.Record.Category != "Food" {
		t.Errorf("record changed by failed updates: %+v (err %v)", got, err)
	}
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	pub := &capturingPublisher{}
	svc, _ := newTestService(pub)

	rec, err := svc.Create(ctx, "alice", RecordInput{Name: "Lunch", Category: "Food", Amount: "5", Date: "2024-03-01"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := svc.Delete(ctx, "bob", rec.ID); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("foreign delete err = %v, want ErrNotFound", err)
	}
	if err := svc.Delete(ctx, "alice", rec.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.Delete(ctx, "alice", rec.ID); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("second delete err = %v, want ErrNotFound", err)
	}

	last := pub.records[len(pub.records)-1]
	if pub.actions[len(pub.actions)-1] != "deleted" || last.ID != rec.ID || last.Amount != 5 {
		t.Errorf("delete event = %v %+v, want snapshot of record %d", pub.actions, last, rec.ID)
	}
}
