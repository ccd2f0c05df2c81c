package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tinyhook/tinyhook/internal/app"
)

func newHookCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "hook <package>",
		Short: "Install a package",
		Long: `Record a package as installed in the registry.

Hooking a package that is already installed leaves the registry untouched.

Examples:
  tinyhook hook numpy
  tinyhook hook numpy --dry-run`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := s.openStore()
			if err != nil {
				return err
			}

			res, err := app.Hook(cmd.Context(), app.HookOptions{
				Store:       store,
				Name:        args[0],
				PackagesDir: s.cfg.PackagesDir,
				DryRun:      s.flags.dryRun,
			})
			if err != nil {
				return err
			}

			switch res.Outcome {
			case app.HookAlreadyInstalled:
				s.out.Notice(fmt.Sprintf("Package %q is already installed (version %s)", res.Name, res.Record.Version))
			case app.HookDryRun:
				s.out.DryRun(fmt.Sprintf("Would hook %s", res.Name))
			case app.HookInstalled:
				s.out.Progress(fmt.Sprintf("Hooking %s...", res.Name))
				s.out.Success(fmt.Sprintf("Hooked %s (version %s)", res.Name, res.Record.Version))
			}
			return nil
		},
	}
}
