package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"emptycup-directory/internal/health"
)

func probeCmd() *cobra.Command {
	var base string
	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Run the splash health check against the API base URL",
		RunE: func(cmd *cobra.Command, args []string) error {
			if base == "" {
				base = cfg.Directory.APIBaseURL
			}
			s := health.NewProber(base, log).Splash(cmd.Context())
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", s.Message, s.APIURL)
			if !s.OK {
				return errors.New("api unreachable")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&base, "base", "", "API base URL (default directory.api_base_url)")
	return cmd
}
