package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/finsync-dev/finsync/internal/database/repository"
	"github.com/finsync-dev/finsync/internal/service"
)

func newSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Ensure taxonomy categories exist in the local store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup()
			if err != nil {
				return err
			}
			defer e.close()

			catRepo := repository.NewCategoryRepo(e.db)
			seeder := &service.BudgetService{Categories: catRepo, Budgets: repository.NewBudgetRepo(e.db), Log: e.log}
			if err := seeder.EnsureCategories(cmd.Context(), e.tax); err != nil {
				return err
			}

			cats, err := catRepo.List(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("%d categories present\n", len(cats))
			return nil
		},
	}
}
