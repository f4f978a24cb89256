// Package store defines the persistence ports the record engine talks to.
package store

import (
	"context"

	"spendbook/internal/core"
)

type (
	// RecordStore persists individual expenditure records. Every operation
	// is scoped by owner: there is no way to reach another owner's rows.
	RecordStore interface {
		// Find returns the records matching the filter, newest date first.
		Find(ctx context.Context, f core.Filter) ([]core.Record, error)
		// FindOne fetches a record by (id, ownerID). Returns
		// core.ErrNotFound when the record is absent or owned by a
		// different user.
		FindOne(ctx context.Context, id int64, ownerID string) (core.Record, error)
		// Insert persists a new record and returns the assigned identity.
		Insert(ctx context.Context, r core.Record) (int64, error)
		// Save overwrites the record identified by (r.ID, r.OwnerID);
		// core.ErrNotFound when no such row exists.
		Save(ctx context.Context, r core.Record) error
		// Remove permanently deletes the record by (id, ownerID);
		// core.ErrNotFound when no such row exists.
		Remove(ctx context.Context, id int64, ownerID string) error
	}

	// CategoryStore is the read-only category lookup behind the directory.
	CategoryStore interface {
		List(ctx context.Context) ([]core.Category, error)
		// FindByName resolves one category; core.ErrCategoryNotFound when
		// absent.
		FindByName(ctx context.Context, name string) (core.Category, error)
	}
)
