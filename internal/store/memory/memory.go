// Package memory provides an in-process store used by tests and as the
// default development backend.
package memory

import (
	"context"
	"sort"
	"sync"

	"spendbook/internal/core"
)

type Store struct {
	mu      sync.Mutex
	nextID  int64
	records map[int64]core.Record
	cats    []core.Category
}

func New(cats []core.Category) *Store {
	return &Store{
		records: make(map[int64]core.Record),
		cats:    append([]core.Category(nil), cats...),
	}
}

// SeedCategories mirrors the set the sqlite migrations seed.
func SeedCategories() []core.Category {
	return []core.Category{
		{Name: "Home", Icon: "fa-home"},
		{Name: "Transportation", Icon: "fa-shuttle-van"},
		{Name: "Entertainment", Icon: "fa-grin-beam"},
		{Name: "Food", Icon: "fa-utensils"},
		{Name: "Others", Icon: "fa-pen"},
	}
}

func (s *Store) Find(_ context.Context, f core.Filter) ([]core.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []core.Record
	for _, r := range s.records {
		if f.Matches(r) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (s *Store) FindOne(_ context.Context, id int64, ownerID string) (core.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.records[id]
	if !ok || r.OwnerID != ownerID {
		return core.Record{}, core.ErrNotFound
	}
	return r, nil
}

func (s *Store) Insert(_ context.Context, r core.Record) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	r.ID = s.nextID
	s.records[r.ID] = r
	return r.ID, nil
}

func (s *Store) Save(_ context.Context, r core.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.records[r.ID]
	if !ok || cur.OwnerID != r.OwnerID {
		return core.ErrNotFound
	}
	s.records[r.ID] = r
	return nil
}

func (s *Store) Remove(_ context.Context, id int64, ownerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.records[id]
	if !ok || r.OwnerID != ownerID {
		return core.ErrNotFound
	}
	delete(s.records, id)
	return nil
}

func (s *Store) List(_ context.Context) ([]core.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Category(nil), s.cats...), nil
}

func (s *Store) FindByName(_ context.Context, name string) (core.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.cats {
		if c.Name == name {
			return c, nil
		}
	}
	return core.Category{}, core.ErrCategoryNotFound
}
