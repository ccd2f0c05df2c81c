package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/tinyhook/tinyhook/internal/app"
	"github.com/tinyhook/tinyhook/internal/build"
	"github.com/tinyhook/tinyhook/internal/config"
	"github.com/tinyhook/tinyhook/internal/debug"
	"github.com/tinyhook/tinyhook/internal/registry"
)

// session carries the state of one invocation. Each Execute builds a fresh
// one, so nothing leaks between runs.
type session struct {
	flags  globalFlags
	stdout io.Writer
	stderr io.Writer
	out    *Output
	cfg    *config.Config
}

// Execute runs tinyhook with the process arguments and streams.
// It returns the process exit code.
func Execute(args []string) int {
	return ExecuteContext(context.Background(), args, os.Stdout, os.Stderr)
}

// ExecuteContext runs tinyhook with explicit arguments and output streams.
func ExecuteContext(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	s := &session{stdout: stdout, stderr: stderr}
	s.out = NewOutput(stdout, stderr, false, false)

	// cobra falls back to os.Args when given nil
	if args == nil {
		args = []string{}
	}

	root := newRootCmd(s)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if err != nil {
		s.out.Error(fmt.Sprintf("Error: %v", err))
		if exitCode(err) == ExitUsage {
			fmt.Fprintln(stderr, "Run 'tinyhook --help' for usage.")
		}
	}
	return exitCode(err)
}

// newRootCmd builds the command tree bound to s.
func newRootCmd(s *session) *cobra.Command {
	root := &cobra.Command{
		Use:   "tinyhook",
		Short: "TinyHook Package Utils - A minimal package manager",
		Long: `tinyhook tracks locally installed packages in a JSON registry.

Use "tinyhook hook <package>" to install a package, "tinyhook run <package>"
to run it, "tinyhook list" to see what is installed and "tinyhook remove
<package>" to uninstall it. Global flags apply to every command.`,
		Args:              cobra.ArbitraryArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			debug.SetOutput(s.stderr)
			debug.SetDebug(s.flags.debug)
			debug.SetNoColor(s.flags.noColor)
			s.out = NewOutput(s.stdout, s.stderr, s.flags.quiet, s.flags.noColor)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if s.flags.version {
				s.out.Info(build.Banner())
				return nil
			}
			if len(args) > 0 {
				cmd.SetOut(s.stderr)
				if err := cmd.Help(); err != nil {
					return err
				}
				if suggestions := cmd.SuggestionsFor(args[0]); len(suggestions) > 0 {
					return newUsageError("unknown command %q (did you mean %q?)", args[0], suggestions[0])
				}
				return newUsageError("unknown command %q", args[0])
			}
			return cmd.Help()
		},
	}

	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	pf := root.PersistentFlags()
	pf.StringVar(&s.flags.configPath, FlagConfig, "", DescConfig)
	pf.StringVar(&s.flags.registryPath, FlagRegistry, "", DescRegistry)
	pf.StringVar(&s.flags.catalogPath, FlagCatalog, "", DescCatalog)
	pf.BoolVar(&s.flags.dryRun, FlagDryRun, false, DescDryRun)
	pf.BoolVarP(&s.flags.quiet, FlagQuiet, "q", false, DescQuiet)
	pf.BoolVar(&s.flags.debug, FlagDebug, false, DescDebug)
	pf.BoolVar(&s.flags.noColor, FlagNoColor, false, DescNoColor)
	root.Flags().BoolVarP(&s.flags.version, FlagVersion, "v", false, DescVersion)

	root.AddCommand(newHookCmd(s))
	root.AddCommand(newRunCmd(s))
	root.AddCommand(newListCmd(s))
	root.AddCommand(newRemoveCmd(s))
	root.AddCommand(newInfoCmd(s))
	root.AddCommand(newLogsCmd(s))
	root.AddCommand(newVersionCmd(s))

	return root
}

// exactArgs wraps cobra.ExactArgs so a wrong argument count exits with ExitUsage.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return &usageError{err: err}
		}
		return nil
	}
}

// loadConfig resolves the configuration and applies flag overrides.
// Precedence: flags > environment > config file > defaults.
func (s *session) loadConfig() (*config.Config, error) {
	if s.cfg != nil {
		return s.cfg, nil
	}

	cfg, err := config.Resolve(s.flags.configPath)
	if err != nil {
		return nil, err
	}
	if s.flags.registryPath != "" {
		cfg.RegistryPath = s.flags.registryPath
	}
	if s.flags.catalogPath != "" {
		cfg.CatalogPath = s.flags.catalogPath
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	debug.DebugValue("registry_path", cfg.RegistryPath)
	debug.DebugValue("catalog_path", cfg.CatalogPath)

	s.out = NewOutput(s.stdout, s.stderr, s.flags.quiet || cfg.Output.Quiet, s.flags.noColor || !cfg.Output.Color)
	s.cfg = cfg
	return cfg, nil
}

// openStore loads configuration and makes sure the registry file exists.
// Dry runs leave a missing registry missing.
func (s *session) openStore() (*registry.Store, error) {
	cfg, err := s.loadConfig()
	if err != nil {
		return nil, err
	}

	store := registry.NewStore(cfg.RegistryPath)
	if err := app.EnsureRegistry(store, s.flags.dryRun); err != nil {
		return nil, err
	}
	return store, nil
}
