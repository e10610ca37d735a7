package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/finsync-dev/finsync/internal/database/repository"
)

func TestInferType(t *testing.T) {
	t.Parallel()
	require.Equal(t, repository.TypeExpense, InferType(dec("-42.50")))
	require.Equal(t, repository.TypeIncome, InferType(dec("100.00")))
	require.Equal(t, repository.TypeIncome, InferType(dec("0.00")))
}

func TestResolveCreatesOnce(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := testDB(t)
	r := &CategoryResolver{Categories: repository.NewCategoryRepo(db)}

	first, err := r.Resolve(ctx, "Groceries", dec("-12.00"))
	require.NoError(t, err)
	require.Equal(t, repository.TypeExpense, first.Type)
	require.NotEmpty(t, first.ID)

	// Many lookalike resolver calls never violate (type, name) uniqueness.
	for i := 0; i < 25; i++ {
		got, err := r.Resolve(ctx, "Groceries", dec("-1.00"))
		require.NoError(t, err)
		require.Equal(t, first.ID, got.ID)
	}

	var n int
	require.NoError(t, db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM categories WHERE name = 'Groceries'`).Scan(&n))
	require.Equal(t, 1, n)
}

func TestResolveSameNameBothTypes(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := testDB(t)
	r := &CategoryResolver{Categories: repository.NewCategoryRepo(db)}

	expense, err := r.Resolve(ctx, "Transfers", dec("-50.00"))
	require.NoError(t, err)
	income, err := r.Resolve(ctx, "Transfers", dec("50.00"))
	require.NoError(t, err)

	require.NotEqual(t, expense.ID, income.ID)
	require.Equal(t, repository.TypeExpense, expense.Type)
	require.Equal(t, repository.TypeIncome, income.Type)
}
