package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xonecas/dvlayout/internal/report"
)

func newSeedCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Write the demo report to the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			rep := report.Demo()
			if err := s.SaveReport(cmd.Context(), rep); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %q (%s) with %d sections\n", rep.Name, rep.ID, len(rep.Sections))
			return nil
		},
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "dvlayout %s\n", Version)
		},
	}
}
