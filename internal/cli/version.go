package cli

import (
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/tinyhook/tinyhook/internal/build"
)

// VersionInfo contains version information
type VersionInfo struct {
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
}

func newVersionCmd(s *session) *cobra.Command {
	var short, asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Display version information for tinyhook.

Examples:
  tinyhook version
  tinyhook version --short
  tinyhook version --json`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			info := VersionInfo{
				Version:   build.Version(),
				GoVersion: runtime.Version(),
				Commit:    build.Commit(),
				BuildDate: build.Date(),
				OS:        runtime.GOOS,
				Arch:      runtime.GOARCH,
			}

			if short {
				s.out.Info(info.Version)
				return nil
			}

			if asJSON {
				data, err := json.MarshalIndent(info, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal version info: %w", err)
				}
				fmt.Fprintln(s.stdout, string(data))
				return nil
			}

			s.out.Info(build.Banner())
			s.out.Info(fmt.Sprintf("Built with: %s", info.GoVersion))
			s.out.Info(fmt.Sprintf("Commit: %s", info.Commit))
			s.out.Info(fmt.Sprintf("Build date: %s", info.BuildDate))
			s.out.Info(fmt.Sprintf("OS/Arch: %s/%s", info.OS, info.Arch))
			return nil
		},
	}

	cmd.Flags().BoolVar(&short, "short", false, "Show version number only")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}
