package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tinyhook/tinyhook/internal/app"
)

func newRemoveCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <package>",
		Aliases: []string{"rm"},
		Short:   "Uninstall a package",
		Long: `Remove a package from the registry.

Examples:
  tinyhook remove numpy
  tinyhook remove numpy --dry-run`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := s.openStore()
			if err != nil {
				return err
			}

			res, err := app.Remove(cmd.Context(), app.RemoveOptions{
				Store:  store,
				Name:   args[0],
				DryRun: s.flags.dryRun,
			})
			if err != nil {
				return err
			}

			switch res.Outcome {
			case app.RemoveEmpty:
				s.out.Notice(fmt.Sprintf("Package %q not found: no packages installed", res.Name))
			case app.RemoveDryRun:
				s.out.DryRun(fmt.Sprintf("Would remove %s", res.Name))
			case app.RemoveNotFound:
				s.out.Notice(fmt.Sprintf("Package %q not found", res.Name))
				s.out.Suggest(res.Suggestions)
			case app.RemoveRemoved:
				s.out.Success(fmt.Sprintf("Removed %s", res.Name))
			}
			return nil
		},
	}
}
