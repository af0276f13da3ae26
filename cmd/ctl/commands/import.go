package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"emptycup-directory/internal/bootstrap"
	"emptycup-directory/internal/domain"
	"emptycup-directory/internal/repo"
	"emptycup-directory/internal/service"
)

func importCmd() *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "import <file.json>",
		Short: "Validate a JSON file of designers and insert it in one transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			ps, err := domain.DecodeProfiles(raw)
			if err != nil {
				var ve *domain.ValidationError
				if errors.As(err, &ve) {
					for _, p := range ve.Problems {
						fmt.Fprintln(cmd.ErrOrStderr(), "  -", p)
					}
				}
				return fmt.Errorf("%s: %d problem(s)", args[0], problemCount(err))
			}
			if dryRun {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d designer(s) valid\n", args[0], len(ps))
				return nil
			}

			ctx := cmd.Context()
			return withCatalog(ctx, func(r *repo.DesignerRepo) error {
				c := bootstrap.OpenCache(ctx, cfg, log)
				if c != nil {
					defer c.Close()
				}
				_, inv, err := bootstrap.NewSource(cfg, r, c)
				if err != nil {
					return err
				}
				n, err := service.NewCatalogService(r, inv, log).ImportProfiles(ctx, ps)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "imported %d designer(s)\n", n)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "only validate, do not write")
	return cmd
}

func problemCount(err error) int {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return len(ve.Problems)
	}
	return 1
}
