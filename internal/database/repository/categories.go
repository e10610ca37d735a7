package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/finsync-dev/finsync/internal/database"
)

// CategoryRepo handles categories. The (type, name) pair is unique; all
// get-or-create paths go through FindOrCreate so the invariant is enforced
// in one place, with the table's UNIQUE constraint as backstop.
type CategoryRepo struct {
	db *sql.DB
}

func NewCategoryRepo(db *sql.DB) *CategoryRepo { return &CategoryRepo{db: db} }

// Get returns the category for (ctype, name), or nil if absent.
func (r *CategoryRepo) Get(ctx context.Context, ctype, name string) (*Category, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, type, name FROM categories WHERE type = ? AND name = ?`, ctype, name)
	var c Category
	if err := row.Scan(&c.ID, &c.Type, &c.Name); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

// FindOrCreate returns the category for (ctype, name), inserting a new row
// with a generated id when absent. The lookup and insert share one scoped
// transaction so the returned id is durable before it is attached anywhere.
func (r *CategoryRepo) FindOrCreate(ctx context.Context, ctype, name string) (Category, error) {
	var c Category
	err := database.WithTx(r.db, func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx, `SELECT id, type, name FROM categories WHERE type = ? AND name = ?`, ctype, name)
		err := row.Scan(&c.ID, &c.Type, &c.Name)
		if err == nil {
			return nil
		}
		if err != sql.ErrNoRows {
			return err
		}
		c = Category{ID: uuid.NewString(), Type: ctype, Name: name}
		_, err = tx.ExecContext(ctx, `INSERT INTO categories(id, type, name) VALUES (?, ?, ?)`, c.ID, c.Type, c.Name)
		return err
	})
	if err != nil {
		return Category{}, err
	}
	return c, nil
}

func (r *CategoryRepo) List(ctx context.Context) ([]Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, type, name FROM categories ORDER BY type, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Type, &c.Name); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
