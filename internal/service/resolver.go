package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/finsync-dev/finsync/internal/database/repository"
)

// CategoryResolver turns a classified name into a persisted category row,
// creating the row on first sight of a (type, name) pair.
type CategoryResolver struct {
	Categories *repository.CategoryRepo
}

// InferType returns the category type implied by a signed amount: Expense
// for outflows, Income otherwise. Zero is Income.
func InferType(amount decimal.Decimal) string {
	if amount.IsNegative() {
		return repository.TypeExpense
	}
	return repository.TypeIncome
}

// Resolve returns the category for name under the type inferred from amount,
// persisted and with its id assigned.
func (r *CategoryResolver) Resolve(ctx context.Context, name string, amount decimal.Decimal) (repository.Category, error) {
	return r.Categories.FindOrCreate(ctx, InferType(amount), name)
}
