package commands

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/finsync-dev/finsync/internal/database/repository"
	"github.com/finsync-dev/finsync/internal/service"
	"github.com/finsync-dev/finsync/internal/taxonomy"
)

func newBudgetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Manage budget periods",
	}
	cmd.AddCommand(newBudgetAddCommand())
	return cmd
}

func newBudgetAddCommand() *cobra.Command {
	var ctype, name, amountStr, startStr, endStr string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a budget row for a category over a period",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !taxonomy.ValidType(ctype) {
				return fmt.Errorf("type must be Income or Expense, got %q", ctype)
			}
			amount, err := decimal.NewFromString(amountStr)
			if err != nil {
				return fmt.Errorf("parse amount: %w", err)
			}
			start, err := time.Parse(time.DateOnly, startStr)
			if err != nil {
				return fmt.Errorf("parse start: %w", err)
			}
			end, err := time.Parse(time.DateOnly, endStr)
			if err != nil {
				return fmt.Errorf("parse end: %w", err)
			}
			if !end.After(start) {
				return fmt.Errorf("end %s must be after start %s", endStr, startStr)
			}

			e, err := setup()
			if err != nil {
				return err
			}
			defer e.close()

			catRepo := repository.NewCategoryRepo(e.db)
			cat, err := catRepo.FindOrCreate(cmd.Context(), ctype, name)
			if err != nil {
				return err
			}

			svc := &service.BudgetService{Categories: catRepo, Budgets: repository.NewBudgetRepo(e.db), Log: e.log}
			budgets, err := svc.CreateBudgets(cmd.Context(), map[string]decimal.Decimal{cat.ID: amount}, start, end)
			if err != nil {
				return err
			}
			fmt.Printf("budget %s: %s %s %s [%s, %s)\n",
				budgets[0].ID, cat.Type, cat.Name, amount.StringFixed(2), startStr, endStr)
			return nil
		},
	}

	cmd.Flags().StringVar(&ctype, "type", "Expense", "category type (Income or Expense)")
	cmd.Flags().StringVar(&name, "category", "", "category name (required)")
	_ = cmd.MarkFlagRequired("category")
	cmd.Flags().StringVar(&amountStr, "amount", "", "budgeted amount (required)")
	_ = cmd.MarkFlagRequired("amount")
	cmd.Flags().StringVar(&startStr, "start", "", "period start, YYYY-MM-DD (required)")
	_ = cmd.MarkFlagRequired("start")
	cmd.Flags().StringVar(&endStr, "end", "", "period end (exclusive), YYYY-MM-DD (required)")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}
