// Package backend selects and constructs the storage backend.
package backend

import (
	"fmt"

	"spendbook/internal/config"
	"spendbook/internal/store"
	"spendbook/internal/store/memory"
	"spendbook/internal/store/sqlite"
)

// Backend bundles the stores of one storage engine.
type Backend struct {
	Records    store.RecordStore
	Categories store.CategoryStore

	closer func() error
}

// New builds the backend named by the configuration.
func New(cfg *config.Config) (*Backend, error) {
	switch cfg.DataBackend {
	case "sqlite":
		repo, err := sqlite.NewRepository(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite backend: %w", err)
		}
		return &Backend{
			Records:    repo,
			Categories: repo,
			closer:     repo.Close,
		}, nil

	case "memory":
		s := memory.New(memory.SeedCategories())
		return &Backend{
			Records:    s,
			Categories: s,
		}, nil

	default:
		return nil, fmt.Errorf("unknown data backend: %s", cfg.DataBackend)
	}
}

func (b *Backend) Close() error {
	if b.closer != nil {
		return b.closer()
	}
	return nil
}
