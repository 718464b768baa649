package cli

import (
	"fmt"
	"io"

	"github.com/featurekit-labs/featurekit/internal/config"
	"github.com/featurekit-labs/featurekit/internal/feature"
	"github.com/featurekit-labs/featurekit/internal/scaffold"
	"github.com/featurekit-labs/featurekit/internal/templates"
	"github.com/spf13/cobra"
)

var (
	createFeatureName    string
	createFeaturePackage string
	createOutput         string
)

func init() {
	createCmd.Flags().StringVar(&createFeatureName, "featureName", "", `Colon-delimited feature name, e.g. "feature:splash"`)
	createCmd.Flags().StringVar(&createFeaturePackage, "featurePackage", "", `Base package, e.g. "io.github.sample.feature.splash"`)
	createCmd.Flags().StringVarP(&createOutput, "output", "o", formatText, "Output format: text, json or yaml")
	rootCmd.AddCommand(createCmd)
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Scaffold a new feature from the project's templates",
	Long: `Create every templated submodule of a feature under each layer (presentation,
domain, data), substitute the <FEATURE> and <FEATURE_PACKAGE> tokens, and register
the new submodules in the settings and consumer build files.

Running it again for the same feature is safe: existing files outside the templates
are left alone and no registration line is duplicated.

` + usageExample(),
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !validFormat(createOutput) {
			return fmt.Errorf("--output must be one of text, json, yaml; got %q", createOutput)
		}
		settings, err := loadSettings()
		if err != nil {
			return err
		}
		req := feature.NewRequest(createFeatureName, createFeaturePackage)
		return runCreate(cmd.OutOrStdout(), settings, req, createOutput)
	},
}

// errSubmodulesFailed makes the command exit non-zero after a completed run
// in which some submodules could not be materialized.
type errSubmodulesFailed int

func (e errSubmodulesFailed) Error() string {
	return fmt.Sprintf("%d submodule(s) failed", int(e))
}

func runCreate(w io.Writer, settings config.Settings, req feature.Request, format string) error {
	s := scaffold.New(appFs, settings, logger)

	if req.Validate() == nil {
		checkTemplateSet(s.Catalog())
	}

	report, err := s.Materialize(req)
	if report != nil {
		if werr := writeReport(w, report, format); werr != nil {
			return werr
		}
	}
	if err != nil {
		return err
	}
	if n := len(report.Failed()); n > 0 {
		return errSubmodulesFailed(n)
	}
	return nil
}

// checkTemplateSet warns when the template set declares a requirement this
// build does not meet. It never blocks scaffolding.
func checkTemplateSet(catalog *templates.Catalog) {
	set, err := catalog.ReadSet()
	if err != nil {
		logger.Warn("ignoring template-set descriptor", "err", err)
		return
	}
	if set == nil {
		return
	}
	ok, err := set.CheckCompatibility(buildVersion)
	if err != nil {
		logger.Warn("checking template-set compatibility", "err", err)
		return
	}
	if !ok {
		logger.Warn("template set requires a different featurekit version",
			"set", set.Name, "requires", set.Requires, "version", buildVersion)
	}
}

func usageExample() string {
	return `Example:
  ` + rootCmd.Name() + ` create --featureName="feature:splash" --featurePackage="io.github.afalabarce.feature.splash"`
}
