// Package services implements record mutations, listings and
// aggregation on top of the store interfaces.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"spendbook/internal/core"
	"spendbook/internal/store"
)

// EventPublisher emits record change events. Publishing is best effort;
// the service logs failures and never fails a request over them.
type EventPublisher interface {
	PublishRecordEvent(ctx context.Context, action string, rec core.Record) error
}

type RecordService struct {
	records    store.RecordStore
	categories *CategoryDirectory
	events     EventPublisher // nil disables publishing
}

func NewRecordService(records store.RecordStore, categories *CategoryDirectory, events EventPublisher) *RecordService {
	return &RecordService{
		records:    records,
		categories: categories,
		events:     events,
	}
}

// RecordInput carries the user-supplied fields of a create or update.
// On update, empty fields keep the stored value.
type RecordInput struct {
	Name     string
	Category string
	Amount   string
	Date     string // YYYY-MM-DD, defaults to today on create
}

// CategoryOption is a category annotated for form rendering.
type CategoryOption struct {
	core.Category
	Selected bool
}

// ListResult is the listing page data: the visible records with their
// total, plus the filter controls (categories and month buckets).
type ListResult struct {
	NoFilter         bool // no criteria supplied; callers render the default view
	Records          []core.Record
	Total            float64
	TotalDisplay     string
	Months           []string
	Categories       []CategoryOption
	SelectedCategory string
	SelectedDate     string
}

// EditView is the data needed to render an edit form.
type EditView struct {
	Record     core.Record
	Categories []CategoryOption
}

// Create validates the input, stamps the category icon and owner, and
// persists a new record.
func (s *RecordService) Create(ctx context.Context, ownerID string, in RecordInput) (core.Record, error) {
	amount, err := core.ParseAmount(in.Amount)
	if err != nil {
		return core.Record{}, err
	}

	cat, err := s.categories.Resolve(ctx, in.Category)
	if err != nil {
		return core.Record{}, err
	}

	date := in.Date
	if date == "" {
		date = core.Today()
	}

	rec := core.Record{
		OwnerID:      ownerID,
		Name:         in.Name,
		Category:     cat.Name,
		CategoryIcon: cat.Icon,
		Amount:       amount,
		Date:         date,
	}
	if err := rec.Validate(); err != nil {
		return core.Record{}, err
	}

	id, err := s.records.Insert(ctx, rec)
	if err != nil {
		return core.Record{}, fmt.Errorf("insert record: %w", err)
	}
	rec.ID = id

	s.publish(ctx, "created", rec)
	return rec, nil
}

// List returns the listing page for the given query. When neither
// category nor date is supplied the result only flags NoFilter and no
// reads are performed.
func (s *RecordService) List(ctx context.Context, ownerID, category, date string) (*ListResult, error) {
	f, ok := core.NewFilter(ownerID, category, date)
	if !ok {
		return &ListResult{NoFilter: true}, nil
	}

	var (
		filtered []core.Record
		all      []core.Record
		cats     []core.Category
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		filtered, err = s.records.Find(gctx, f)
		return err
	})
	g.Go(func() error {
		var err error
		all, err = s.records.Find(gctx, core.OwnerFilter(ownerID))
		return err
	})
	g.Go(func() error {
		var err error
		cats, err = s.categories.All(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load records: %w", err)
	}

	total := core.TotalAmount(filtered)
	return &ListResult{
		Records:          filtered,
		Total:            total,
		TotalDisplay:     core.FormatAmount(total),
		Months:           core.MonthBuckets(all),
		Categories:       categoryOptions(cats, f.Category),
		SelectedCategory: f.Category,
		SelectedDate:     f.DatePrefix,
	}, nil
}

// Overview returns the unfiltered listing page for one owner.
func (s *RecordService) Overview(ctx context.Context, ownerID string) (*ListResult, error) {
	var (
		all  []core.Record
		cats []core.Category
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		all, err = s.records.Find(gctx, core.OwnerFilter(ownerID))
		return err
	})
	g.Go(func() error {
		var err error
		cats, err = s.categories.All(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load records: %w", err)
	}

	total := core.TotalAmount(all)
	return &ListResult{
		Records:      all,
		Total:        total,
		TotalDisplay: core.FormatAmount(total),
		Months:       core.MonthBuckets(all),
		Categories:   categoryOptions(cats, ""),
	}, nil
}

// EditView loads one record together with the category choices for its
// edit form.
func (s *RecordService) EditView(ctx context.Context, ownerID string, id int64) (*EditView, error) {
	var (
		rec  core.Record
		cats []core.Category
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rec, err = s.records.FindOne(gctx, id, ownerID)
		return err
	})
	g.Go(func() error {
		var err error
		cats, err = s.categories.All(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &EditView{
		Record:     rec,
		Categories: categoryOptions(cats, rec.Category),
	}, nil
}

// Update merges the input into the stored record. A changed category
// re-resolves the icon; id and owner are never taken from the input.
func (s *RecordService) Update(ctx context.Context, ownerID string, id int64, in RecordInput) (core.Record, error) {
	var (
		rec core.Record
		cat core.Category
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rec, err = s.records.FindOne(gctx, id, ownerID)
		return err
	})
	if in.Category != "" {
		g.Go(func() error {
			var err error
			cat, err = s.categories.Resolve(gctx, in.Category)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return core.Record{}, err
	}

	if in.Name != "" {
		rec.Name = in.Name
	}
	if in.Date != "" {
		rec.Date = in.Date
	}
	if in.Amount != "" {
		amount, err := core.ParseAmount(in.Amount)
		if err != nil {
			return core.Record{}, err
		}
		rec.Amount = amount
	}
	if in.Category != "" {
		rec.Category = cat.Name
		rec.CategoryIcon = cat.Icon
	}

	if err := rec.Validate(); err != nil {
		return core.Record{}, err
	}
	if err := s.records.Save(ctx, rec); err != nil {
		return core.Record{}, err
	}

	s.publish(ctx, "updated", rec)
	return rec, nil
}

// Delete removes one record of the owner.
func (s *RecordService) Delete(ctx context.Context, ownerID string, id int64) error {
	rec, err := s.records.FindOne(ctx, id, ownerID)
	if err != nil {
		return err
	}
	if err := s.records.Remove(ctx, id, ownerID); err != nil {
		return err
	}

	s.publish(ctx, "deleted", rec)
	return nil
}

func (s *RecordService) publish(ctx context.Context, action string, rec core.Record) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishRecordEvent(ctx, action, rec); err != nil {
		slog.ErrorContext(ctx, "Failed to publish record event",
			"error", err,
			"action", action,
			"id", rec.ID)
	}
}

func categoryOptions(cats []core.Category, selected string) []CategoryOption {
	out := make([]CategoryOption, 0, len(cats))
	for _, c := range cats {
		out = append(out, CategoryOption{Category: c, Selected: c.Name == selected})
	}
	return out
}
