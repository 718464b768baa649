package cli

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/featurekit-labs/featurekit/internal/branding"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

// Persistent flags shared by every command.
var (
	projectDir string
	verbose    bool
	noColor    bool
)

// appFs is the filesystem every command operates on.
var appFs afero.Fs = afero.NewOsFs()

// logger writes diagnostics to stderr. Command output goes to stdout.
var logger = log.NewWithOptions(os.Stderr, log.Options{
	Prefix: branding.CLIName(),
})

func init() {
	rootCmd.PersistentFlags().StringVarP(&projectDir, "project-dir", "C", ".", "Project root directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
}

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` scaffolds a layered feature (presentation, domain, data) into a
multi-module Gradle project from a directory of templates, and registers every generated
submodule in the project's settings and consumer build files.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			logger.SetLevel(log.DebugLevel)
		} else {
			logger.SetLevel(log.InfoLevel)
		}
		setColor(colorEnabled(os.Stdout))
	},
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	err := rootCmd.Execute()
	if err != nil {
		logger.Error(err)
	}
	return err
}
