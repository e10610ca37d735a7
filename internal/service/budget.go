package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/finsync-dev/finsync/internal/database/repository"
	"github.com/finsync-dev/finsync/internal/taxonomy"
)

// BudgetService seeds baseline categories and creates budget-period rows.
type BudgetService struct {
	Categories *repository.CategoryRepo
	Budgets    *repository.BudgetRepo
	Log        zerolog.Logger
}

// EnsureCategories makes sure a category row exists for every (type, name)
// pair in the taxonomy. It is idempotent and safe to run on every sync. A
// group with an unrecognized type stops the remaining iteration without
// failing the run; categories seeded before it stay.
func (s *BudgetService) EnsureCategories(ctx context.Context, tax taxonomy.Taxonomy) error {
	for _, group := range tax {
		if !taxonomy.ValidType(group.Type) {
			s.Log.Warn().Str("type", group.Type).Msg("unrecognized category type in taxonomy, stopping seed")
			return nil
		}
		for _, cat := range group.Categories {
			if _, err := s.Categories.FindOrCreate(ctx, group.Type, cat.Name); err != nil {
				return err
			}
		}
	}
	return nil
}

// CreateBudgets inserts one budget row per entry in amounts (category id to
// amount) covering the [start, end) period. Inserts are unconditional:
// calling twice with the same inputs creates duplicate rows.
func (s *BudgetService) CreateBudgets(ctx context.Context, amounts map[string]decimal.Decimal, start, end time.Time) ([]repository.Budget, error) {
	categoryIDs := make([]string, 0, len(amounts))
	for id := range amounts {
		categoryIDs = append(categoryIDs, id)
	}
	sort.Strings(categoryIDs)

	out := make([]repository.Budget, 0, len(categoryIDs))
	for _, id := range categoryIDs {
		b := repository.Budget{
			ID:          uuid.NewString(),
			CategoryID:  id,
			Amount:      amounts[id],
			PeriodStart: start,
			PeriodEnd:   end,
		}
		if err := s.Budgets.Insert(ctx, b); err != nil {
			return out, err
		}
		out = append(out, b)
	}
	return out, nil
}
