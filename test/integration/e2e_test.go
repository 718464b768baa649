//go:build integration

package integration_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/featurekit-labs/featurekit/internal/aggregator"
	"github.com/featurekit-labs/featurekit/internal/config"
	"github.com/featurekit-labs/featurekit/internal/feature"
	"github.com/featurekit-labs/featurekit/internal/scaffold"
	"github.com/spf13/afero"
)

// TestFullFlowCreateFeature scaffolds a feature twice on the real filesystem:
// load config -> materialize -> verify tree and build files -> materialize
// again -> verify nothing changed.
func TestFullFlowCreateFeature(t *testing.T) {
	dir := setupProject(t)
	fs := afero.NewOsFs()

	settings, err := config.Load(fs, dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	req := feature.NewRequest("feature:splash", "io.github.sample.feature.splash")

	// Step 1: First run creates everything.
	report, err := scaffold.New(fs, settings, nil).Materialize(req)
	if err != nil {
		t.Fatalf("Materialize: %v", err)
	}
	if len(report.Failed()) != 0 {
		t.Fatalf("unexpected failures: %+v", report.Failed())
	}

	expected := []string{
		":feature:splash:presentation:ui",
		":feature:splash:domain:models",
		":feature:splash:domain:usecases",
	}
	if len(report.Results) != len(expected) {
		t.Fatalf("got %d submodules, want %d", len(report.Results), len(expected))
	}

	// Step 2: Verify the generated tree.
	uiDir := filepath.Join(dir, "feature", "splash", "presentation", "ui")
	for _, root := range feature.SourceRoots {
		assertDirExists(t, filepath.Join(uiDir, "src", root, "java",
			"io", "github", "sample", "feature", "splash", "presentation", "ui"))
	}
	assertFileExists(t, filepath.Join(uiDir, "src", "AndroidManifest.xml"))
	assertFileNotExists(t, filepath.Join(uiDir, "src", "main", "AndroidManifest.xml"))
	assertFileContains(t, filepath.Join(uiDir, "build.gradle.kts"),
		`"${BuildVersion.environment.applicationId}.feature.splash.presentation.ui"`)
	assertFileContains(t, filepath.Join(uiDir, "build.gradle.kts"), `":feature:splash:domain:models"`)
	assertFileContains(t, filepath.Join(uiDir, "proguard-rules.pro"), "# feature:splash")
	assertDirExists(t, filepath.Join(dir, "feature", "splash", "data"))

	// Step 3: Verify registration.
	settingsFile := filepath.Join(dir, "settings.gradle.kts")
	for _, p := range expected {
		assertFileContains(t, settingsFile, aggregator.IncludeLine(p))
	}
	buildFile := filepath.Join(dir, "app", "build.gradle.kts")
	assertFileContains(t, buildFile,
		aggregator.DefaultMarker+"\n    "+aggregator.ImplementationLine(":feature:splash:presentation:ui"))

	settingsAfterFirst := readFile(t, settingsFile)
	buildAfterFirst := readFile(t, buildFile)

	// Step 4: Second run is a no-op for the build files.
	report, err = scaffold.New(fs, settings, nil).Materialize(req)
	if err != nil {
		t.Fatalf("second Materialize: %v", err)
	}
	for _, res := range report.Results {
		if res.Include != aggregator.AlreadyPresent || res.Dependency != aggregator.AlreadyPresent {
			t.Errorf("%s registered again: include=%v dependency=%v", res.Module, res.Include, res.Dependency)
		}
	}
	if got := readFile(t, settingsFile); got != settingsAfterFirst {
		t.Errorf("settings file changed on second run:\n%s", got)
	}
	if got := readFile(t, buildFile); got != buildAfterFirst {
		t.Errorf("build file changed on second run:\n%s", got)
	}
	if n := strings.Count(readFile(t, buildFile), "implementation(project("); n != 1 {
		t.Errorf("build file has %d project dependencies, want 1", n)
	}
}

// TestFullFlowProjectConfig points the scaffolder at a relocated template
// root through the project file and a different consumer module through the
// environment.
func TestFullFlowProjectConfig(t *testing.T) {
	dir := setupProject(t)
	fs := afero.NewOsFs()

	moved := filepath.Join(dir, "tools", "templates")
	writeFile(t, filepath.Join(moved, "domain", "models", "build.gradle.kts"), "// <FEATURE_PACKAGE>\n")
	if err := config.Set(fs, dir, config.KeyTemplateRoot, filepath.Join("tools", "templates")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	t.Setenv("FEATUREKIT_CONSUMER_MODULE", "domain:models")

	settings, err := config.Load(fs, dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	report, err := scaffold.New(fs, settings, nil).Materialize(feature.NewRequest("feature:login", "io.github.sample.login"))
	if err != nil {
		t.Fatalf("Materialize: %v", err)
	}
	if len(report.Results) != 1 || !report.Results[0].OK() {
		t.Fatalf("unexpected results: %+v", report.Results)
	}

	assertFileContains(t, filepath.Join(dir, "feature", "login", "domain", "models", "build.gradle.kts"), "// .feature.login")
	assertFileContains(t, filepath.Join(dir, "app", "build.gradle.kts"),
		aggregator.ImplementationLine(":feature:login:domain:models"))
}
