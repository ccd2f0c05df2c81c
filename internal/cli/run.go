package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tinyhook/tinyhook/internal/app"
)

func newRunCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "run <package>",
		Short: "Run an installed package",
		Long: `Run a package that was previously hooked.

Examples:
  tinyhook run numpy
  tinyhook run numpy --dry-run`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := s.openStore()
			if err != nil {
				return err
			}

			res, err := app.Run(cmd.Context(), app.RunOptions{
				Store:  store,
				Name:   args[0],
				DryRun: s.flags.dryRun,
			})
			if err != nil {
				return err
			}

			switch res.Outcome {
			case app.RunNotInstalled:
				if res.RegistryErr != nil {
					s.out.Notice(fmt.Sprintf("Could not read registry %s: %v", store.Path(), res.RegistryErr))
				}
				s.out.Notice(fmt.Sprintf("Package %q is not installed", res.Name))
				s.out.Suggest(res.Suggestions)
				s.out.Hint(fmt.Sprintf("Install it with: tinyhook hook %s", res.Name))
			case app.RunDryRun:
				s.out.DryRun(fmt.Sprintf("Would run %s", res.Name))
			case app.RunExecuted:
				s.out.Progress(fmt.Sprintf("Running %s...", res.Name))
				s.out.Success(fmt.Sprintf("Ran %s (version %s)", res.Name, res.Record.Version))
			}
			return nil
		},
	}
}
