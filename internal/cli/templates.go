package cli

import (
	"fmt"
	"io"

	"github.com/featurekit-labs/featurekit/internal/feature"
	"github.com/featurekit-labs/featurekit/internal/templates"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(templatesCmd)
}

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the template submodules of each layer",
	Long: `List the submodules that "create" would generate, per layer, as found under the
configured template root, along with the template-set descriptor if present.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings()
		if err != nil {
			return err
		}
		return listTemplates(cmd.OutOrStdout(), templates.NewCatalog(appFs, settings.TemplateRootPath()))
	},
}

func listTemplates(w io.Writer, catalog *templates.Catalog) error {
	fmt.Fprintf(w, "%s %s\n", paint(titleStyle, "Template root:"), catalog.Root)

	set, err := catalog.ReadSet()
	if err != nil {
		return err
	}
	if set != nil {
		line := set.Name
		if set.Version != "" {
			line += " v" + set.Version
		}
		if set.Requires != "" {
			line += paint(mutedStyle, " (requires "+set.Requires+")")
		}
		fmt.Fprintf(w, "%s %s\n", paint(titleStyle, "Template set:"), line)
		if set.Description != "" {
			fmt.Fprintf(w, "  %s\n", paint(mutedStyle, set.Description))
		}
	}

	for _, layer := range feature.Layers() {
		entries, err := catalog.Discover(layer)
		if err != nil {
			return fmt.Errorf("listing %s templates: %w", layer, err)
		}
		fmt.Fprintf(w, "\n%s\n", paint(titleStyle, string(layer)))
		if len(entries) == 0 {
			fmt.Fprintf(w, "  %s\n", paint(mutedStyle, "(none)"))
			continue
		}
		for _, e := range entries {
			fmt.Fprintf(w, "  %-24s %s\n", e.Submodule,
				paint(mutedStyle, fmt.Sprintf("%d %s", len(e.Files), plural(len(e.Files), "file", "files"))))
		}
	}
	return nil
}
