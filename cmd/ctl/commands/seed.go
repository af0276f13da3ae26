package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"emptycup-directory/internal/repo"
)

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the sample designers when the table is empty",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCatalog(cmd.Context(), func(r *repo.DesignerRepo) error {
				n, err := r.SeedIfEmpty(cmd.Context())
				if err != nil {
					return err
				}
				if n == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "designers table not empty, nothing seeded")
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "seeded %d designer(s)\n", n)
				return nil
			})
		},
	}
}
