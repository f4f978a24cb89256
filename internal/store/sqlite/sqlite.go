// Package sqlite persists records and categories in a local SQLite
// database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"spendbook/internal/core"

	_ "modernc.org/sqlite"
)

// Repository backs both the record store and the category directory with
// a single database handle.
type Repository struct {
	db *sql.DB
}

func NewRepository(dbPath string) (*Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

const recordColumns = `id, owner_id, name, category, category_icon, amount, date`

// Find returns the filtered records for one owner, newest date first.
func (r *Repository) Find(ctx context.Context, f core.Filter) ([]core.Record, error) {
	query := `SELECT ` + recordColumns + ` FROM records WHERE owner_id = ?`
	args := []any{f.OwnerID}

	if f.Category != "" {
		query += ` AND category = ?`
		args = append(args, f.Category)
	}
	if f.DatePrefix != "" {
		// Anchored prefix match; LIKE wildcards in the input are escaped
		// so they cannot widen the predicate.
		query += ` AND date LIKE ? ESCAPE '\'`
		args = append(args, escapeLike(f.DatePrefix)+"%")
	}
	query += ` ORDER BY date DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("find records: %w", err)
	}
	defer rows.Close()

	var out []core.Record
	for rows.Next() {
		var rec core.Record
		if err := rows.Scan(&rec.ID, &rec.OwnerID, &rec.Name, &rec.Category, &rec.CategoryIcon, &rec.Amount, &rec.Date); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return out, nil
}

func (r *Repository) FindOne(ctx context.Context, id int64, ownerID string) (core.Record, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+recordColumns+` FROM records WHERE id = ? AND owner_id = ?`, id, ownerID)

	var rec core.Record
	err := row.Scan(&rec.ID, &rec.OwnerID, &rec.Name, &rec.Category, &rec.CategoryIcon, &rec.Amount, &rec.Date)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Record{}, core.ErrNotFound
	}
	if err != nil {
		return core.Record{}, fmt.Errorf("get record: %w", err)
	}
	return rec, nil
}

func (r *Repository) Insert(ctx context.Context, rec core.Record) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO records (owner_id, name, category, category_icon, amount, date)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.OwnerID, rec.Name, rec.Category, rec.CategoryIcon, rec.Amount, rec.Date)
	if err != nil {
		return 0, fmt.Errorf("insert record: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}

	slog.InfoContext(ctx, "Record saved",
		"id", id,
		"name", rec.Name,
		"category", rec.Category,
		"amount", rec.Amount,
		"date", rec.Date)

	return id, nil
}

func (r *Repository) Save(ctx context.Context, rec core.Record) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE records SET name = ?, category = ?, category_icon = ?, amount = ?, date = ?
		 WHERE id = ? AND owner_id = ?`,
		rec.Name, rec.Category, rec.CategoryIcon, rec.Amount, rec.Date, rec.ID, rec.OwnerID)
	if err != nil {
		return fmt.Errorf("update record: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (r *Repository) Remove(ctx context.Context, id int64, ownerID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM records WHERE id = ? AND owner_id = ?`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete record: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return core.ErrNotFound
	}

	slog.InfoContext(ctx, "Record removed", "id", id)
	return nil
}

func (r *Repository) List(ctx context.Context) ([]core.Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT name, icon FROM categories ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var out []core.Category
	for rows.Next() {
		var c core.Category
		if err := rows.Scan(&c.Name, &c.Icon); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}
	return out, nil
}

func (r *Repository) FindByName(ctx context.Context, name string) (core.Category, error) {
	row := r.db.QueryRowContext(ctx, `SELECT name, icon FROM categories WHERE name = ?`, name)

	var c core.Category
	err := row.Scan(&c.Name, &c.Icon)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Category{}, core.ErrCategoryNotFound
	}
	if err != nil {
		return core.Category{}, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	return strings.ReplaceAll(s, `_`, `\_`)
}
