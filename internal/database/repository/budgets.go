package repository

import (
	"context"
	"database/sql"
)

// BudgetRepo handles budgets. Inserts are unconditional: nothing dedupes
// overlapping periods for the same category (see DESIGN.md).
type BudgetRepo struct {
	db *sql.DB
}

func NewBudgetRepo(db *sql.DB) *BudgetRepo { return &BudgetRepo{db: db} }

func (r *BudgetRepo) Insert(ctx context.Context, b Budget) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO budgets(id, category_id, amount, period_start, period_end)
	VALUES (?, ?, ?, ?, ?);
	`, b.ID, b.CategoryID, b.Amount, b.PeriodStart, b.PeriodEnd)
	return err
}

func (r *BudgetRepo) ListByCategory(ctx context.Context, categoryID string) ([]Budget, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, category_id, amount, period_start, period_end
	FROM budgets WHERE category_id = ? ORDER BY period_start`, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Budget
	for rows.Next() {
		var b Budget
		if err := rows.Scan(&b.ID, &b.CategoryID, &b.Amount, &b.PeriodStart, &b.PeriodEnd); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
