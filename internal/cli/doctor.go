package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/featurekit-labs/featurekit/internal/config"
	"github.com/featurekit-labs/featurekit/internal/feature"
	"github.com/featurekit-labs/featurekit/internal/templates"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that the project is ready for scaffolding",
	Long: `Run diagnostic checks on the project: configuration file, template root and
layers, template-set compatibility, the settings file and the dependency marker
in the consumer build file.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := resolveProjectDir()
		if err != nil {
			return err
		}
		if failures := runDoctor(cmd.OutOrStdout(), appFs, dir); failures > 0 {
			return fmt.Errorf("%d check(s) failed", failures)
		}
		return nil
	},
}

// checker prints status lines and counts failures.
type checker struct {
	w        io.Writer
	failures int
}

func (c *checker) ok(format string, args ...interface{}) {
	c.line(paint(successStyle, "[ OK ]"), format, args...)
}

func (c *checker) warn(format string, args ...interface{}) {
	c.line(paint(warningStyle, "[WARN]"), format, args...)
}

func (c *checker) fail(format string, args ...interface{}) {
	c.failures++
	c.line(paint(errorStyle, "[FAIL]"), format, args...)
}

func (c *checker) info(format string, args ...interface{}) {
	c.line(paint(mutedStyle, "[INFO]"), format, args...)
}

func (c *checker) line(tag, format string, args ...interface{}) {
	fmt.Fprintf(c.w, "  %s %s\n", tag, fmt.Sprintf(format, args...))
}

func (c *checker) section(title string) {
	fmt.Fprintln(c.w, paint(titleStyle, title))
}

// runDoctor runs every check against the project at dir and returns the
// number of failed checks.
func runDoctor(w io.Writer, fsys afero.Fs, dir string) int {
	c := &checker{w: w}

	c.section("Configuration:")
	settings := checkConfig(c, fsys, dir)

	c.section("Templates:")
	checkTemplates(c, templates.NewCatalog(fsys, settings.TemplateRootPath()))

	c.section("Build files:")
	checkBuildFiles(c, fsys, settings)

	return c.failures
}

func checkConfig(c *checker, fsys afero.Fs, dir string) config.Settings {
	path := config.FilePath(dir)
	exists, err := afero.Exists(fsys, path)
	switch {
	case err != nil:
		c.fail("Cannot access %s: %v", path, err)
	case !exists:
		c.info("No %s, using defaults", filepath.Base(path))
	default:
		result, err := config.ValidateFile(fsys, path)
		if err != nil {
			c.fail("Cannot parse %s: %v", filepath.Base(path), err)
			break
		}
		if !result.Valid {
			c.fail("%s has %d validation issue(s):", filepath.Base(path), len(result.Issues))
			for _, issue := range result.Issues {
				fmt.Fprintf(c.w, "    - %s\n", issue)
			}
			break
		}
		c.ok("%s is valid", filepath.Base(path))
	}

	settings, err := config.Load(fsys, dir)
	if err != nil {
		return config.Default(dir)
	}
	return settings
}

func checkTemplates(c *checker, catalog *templates.Catalog) {
	exists, err := afero.DirExists(catalog.FS, catalog.Root)
	if err != nil || !exists {
		c.fail("Template root %s not found", catalog.Root)
		return
	}
	c.ok("Template root %s", catalog.Root)

	total := 0
	for _, layer := range feature.Layers() {
		names, err := catalog.Submodules(layer)
		switch {
		case err != nil:
			c.fail("%s: %v", layer, err)
		case len(names) == 0:
			c.warn("%s: no templates, no submodules will be generated", layer)
		default:
			c.ok("%s: %s", layer, strings.Join(names, ", "))
		}
		total += len(names)
	}
	if total == 0 {
		c.fail("No templates in any layer")
	}

	set, err := catalog.ReadSet()
	switch {
	case err != nil:
		c.fail("Template-set descriptor: %v", err)
	case set == nil:
		c.info("No %s", templates.SetFileName)
	default:
		ok, err := set.CheckCompatibility(buildVersion)
		switch {
		case err != nil:
			c.fail("Template set %s: %v", set.Name, err)
		case !ok:
			c.warn("Template set %s requires %s, this is %s", set.Name, set.Requires, buildVersion)
		default:
			c.ok("Template set %s is compatible", set.Name)
		}
	}
}

func checkBuildFiles(c *checker, fsys afero.Fs, settings config.Settings) {
	if ok, _ := afero.Exists(fsys, settings.SettingsFilePath()); ok {
		c.ok("Settings file %s", settings.SettingsFile)
	} else {
		c.fail("Settings file %s not found", settings.SettingsFile)
	}

	data, err := afero.ReadFile(fsys, settings.DescriptorFilePath())
	if err != nil {
		c.fail("Consumer build file %s not found", settings.DescriptorFile)
		return
	}
	if !strings.Contains(string(data), settings.DependencyMarker) {
		c.warn("%s has no dependency marker %q; dependencies will not be registered",
			settings.DescriptorFile, strings.TrimSpace(settings.DependencyMarker))
		return
	}
	c.ok("Consumer build file %s has the dependency marker", settings.DescriptorFile)
}
