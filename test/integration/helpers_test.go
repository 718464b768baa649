//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const uiTemplate = `plugins {
    alias(libs.plugins.com.android.library)
}

android {
    namespace = "${BuildVersion.environment.applicationId}<FEATURE_PACKAGE>.presentation.ui"
}

dependencies {
    implementation(project(mapOf("path" to ":<FEATURE>:domain:models")))
}
`

const appBuild = `dependencies {
    implementation(libs.bundles.layer.ui)
    // Don't remove or modify this line!!
    // [Feature-Manager dependencies]

    testImplementation(libs.bundles.testing.unit)
}
`

// setupProject creates a Gradle-style project on the real filesystem with
// presentation:ui and domain:{models,usecases} templates. Returns the
// project root.
func setupProject(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "settings.gradle.kts"), "rootProject.name = \"sample\"\ninclude(\":app\")\n")
	writeFile(t, filepath.Join(dir, "app", "build.gradle.kts"), appBuild)

	templates := filepath.Join(dir, "gradle-scripts", "feature-manager", "templates")
	writeFile(t, filepath.Join(templates, "presentation", "ui", "build.gradle.kts"), uiTemplate)
	writeFile(t, filepath.Join(templates, "presentation", "ui", "proguard-rules.pro"), "# <FEATURE>\n")
	writeFile(t, filepath.Join(templates, "domain", "models", "build.gradle.kts"), "// models of <FEATURE>\n")
	writeFile(t, filepath.Join(templates, "domain", "usecases", "build.gradle.kts"), "// usecases of <FEATURE>\n")
	if err := os.MkdirAll(filepath.Join(templates, "data"), 0755); err != nil {
		t.Fatalf("creating data templates dir: %v", err)
	}

	return dir
}

// writeFile creates a file at the given path with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dir %s: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertFileNotExists fails the test if the file exists.
func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected file NOT to exist: %s", path)
	}
}

// assertDirExists fails the test if the directory does not exist.
func assertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Errorf("expected directory to exist: %s (error: %v)", path, err)
		return
	}
	if !info.IsDir() {
		t.Errorf("expected %s to be a directory, but it is a file", path)
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q.\nContents:\n%s", path, substr, string(data))
	}
}
