package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tinyhook/tinyhook/internal/app"
	"github.com/tinyhook/tinyhook/internal/catalog"
	"github.com/tinyhook/tinyhook/internal/config"
	"github.com/tinyhook/tinyhook/internal/registry"
)

func newInfoCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "info <package>",
		Short: "Show catalog metadata for a package",
		Long: `Look up a package in the repository catalog.

The catalog is read-only; info never touches the registry.

Examples:
  tinyhook info numpy
  tinyhook info numpy --catalog ./repo.json`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := s.loadConfig()
			if err != nil {
				return err
			}

			res, err := app.Info(cmd.Context(), app.InfoOptions{
				CatalogPath: cfg.CatalogPath,
				Name:        args[0],
			})
			if err != nil {
				if catErr, ok := catalog.AsCatalogError(err); ok {
					return catalogFailure(catErr)
				}
				return err
			}

			if res.Metadata == nil {
				s.out.Notice(fmt.Sprintf("Package %q not found in catalog", res.Name))
				s.out.Suggest(res.Suggestions)
				return nil
			}

			m := res.Metadata
			fmt.Fprintf(s.stdout, "%s\n", res.Name)
			fmt.Fprintf(s.stdout, "  Version:     %s\n", m.Version)
			sourceType := m.SourceType
			if !registry.SourceType(sourceType).Known() {
				sourceType += ", unrecognized"
			}
			fmt.Fprintf(s.stdout, "  Source:      %s (%s)\n", m.SourceValue, sourceType)
			if m.Description != "" {
				fmt.Fprintf(s.stdout, "  Description: %s\n", m.Description)
			}
			return nil
		},
	}
}

// catalogFailure phrases a catalog load error for the console.
func catalogFailure(err *catalog.CatalogError) error {
	switch err.Type {
	case catalog.CatalogNotFound:
		return fmt.Errorf("catalog %s not found (use --%s or %s): %w", err.File, FlagCatalog, config.EnvCatalog, err)
	case catalog.CatalogInvalid:
		return fmt.Errorf("catalog %s is malformed: %w", err.File, err)
	default:
		return fmt.Errorf("catalog %s could not be read: %w", err.File, err)
	}
}
