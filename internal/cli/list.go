package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tinyhook/tinyhook/internal/app"
)

func newListCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List installed packages",
		Args:    exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := s.openStore()
			if err != nil {
				return err
			}

			res, err := app.List(cmd.Context(), app.ListOptions{
				Store:  store,
				DryRun: s.flags.dryRun,
			})
			if err != nil {
				return err
			}

			switch res.Outcome {
			case app.ListEmpty:
				s.out.Info("No packages installed")
			case app.ListDryRun:
				s.out.DryRun(fmt.Sprintf("Would list %d installed package(s)", res.Count))
			case app.ListShown:
				s.out.Info(fmt.Sprintf("Installed packages (%d):", res.Count))
				for _, e := range res.Entries {
					s.out.Info(fmt.Sprintf("  %s - version %s", e.Name, e.Record.Version))
				}
			}
			return nil
		},
	}
}
