package services

import (
	"context"
	"time"

	"spendbook/internal/cache"
	"spendbook/internal/core"
	"spendbook/internal/store"
)

const allCategoriesKey = "_all"

// CategoryDirectory resolves category names to their icons, caching
// lookups in front of the store. The category set only changes via
// migrations, so a short TTL is enough to keep the directory fresh.
type CategoryDirectory struct {
	store  store.CategoryStore
	byName *cache.LRUCache[core.Category]
	lists  *cache.LRUCache[[]core.Category]
}

func NewCategoryDirectory(s store.CategoryStore, ttl time.Duration) *CategoryDirectory {
	return &CategoryDirectory{
		store:  s,
		byName: cache.NewLRUCache[core.Category](64, ttl),
		lists:  cache.NewLRUCache[[]core.Category](1, ttl),
	}
}

// Resolve returns the category for name, or core.ErrCategoryNotFound.
func (d *CategoryDirectory) Resolve(ctx context.Context, name string) (core.Category, error) {
	if c, ok := d.byName.Get(name); ok {
		return c, nil
	}

	c, err := d.store.FindByName(ctx, name)
	if err != nil {
		return core.Category{}, err
	}

	d.byName.Set(name, c)
	return c, nil
}

// All returns every known category.
func (d *CategoryDirectory) All(ctx context.Context) ([]core.Category, error) {
	if cats, ok := d.lists.Get(allCategoriesKey); ok {
		return cats, nil
	}

	cats, err := d.store.List(ctx)
	if err != nil {
		return nil, err
	}

	d.lists.Set(allCategoriesKey, cats)
	return cats, nil
}
