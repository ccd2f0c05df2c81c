package cli

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/tinyhook/tinyhook/internal/config"
	"github.com/tinyhook/tinyhook/internal/logview"
)

func newLogsCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "logs [dir]",
		Short: "Browse agent logs interactively",
		Long: `Open a read-only REPL over the agent log directory.

The directory defaults to log_dir from the configuration
(ai-workspace/.claude/agents/logs).

Examples:
  tinyhook logs
  tinyhook logs ./logs`,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.MaximumNArgs(1)(cmd, args); err != nil {
				return &usageError{err: err}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := s.loadConfig()
			if err != nil {
				return err
			}
			dir := cfg.LogDir
			if len(args) == 1 {
				dir = args[0]
			}
			dir, err = config.ExpandPath(dir)
			if err != nil {
				return err
			}

			opts := logview.Options{
				Dir:   dir,
				In:    cmd.InOrStdin(),
				Out:   s.stdout,
				Color: !s.out.noColor,
			}
			if fd, ok := terminalFd(s.stdout); ok {
				if w, _, err := term.GetSize(fd); err == nil && w > 0 {
					opts.Width = w
				}
				if term.IsTerminal(int(os.Stdin.Fd())) {
					opts.Pick = logview.SurveyPicker
				}
			}

			return logview.New(opts).Run(cmd.Context())
		},
	}
}

// terminalFd returns the descriptor of w when it is a terminal.
func terminalFd(w interface{}) (int, bool) {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0, false
	}
	return int(f.Fd()), true
}
