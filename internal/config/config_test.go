package config

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/featurekit-labs/featurekit/internal/aggregator"
	"github.com/spf13/afero"
)

const projectDir = "/work/sample"

func writeConfig(t *testing.T, fs afero.Fs, content string) {
	t.Helper()
	if err := afero.WriteFile(fs, FilePath(projectDir), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadDefaults(t *testing.T) {
	fs := afero.NewMemMapFs()

	s, err := Load(fs, projectDir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if s != Default(projectDir) {
		t.Errorf("Load() = %+v, want defaults %+v", s, Default(projectDir))
	}

	wantRoot := filepath.Join(projectDir, "gradle-scripts", "feature-manager", "templates")
	if got := s.TemplateRootPath(); got != wantRoot {
		t.Errorf("TemplateRootPath() = %q, want %q", got, wantRoot)
	}
	if got, want := s.SettingsFilePath(), filepath.Join(projectDir, "settings.gradle.kts"); got != want {
		t.Errorf("SettingsFilePath() = %q, want %q", got, want)
	}
	if got, want := s.DescriptorFilePath(), filepath.Join(projectDir, "app", "build.gradle.kts"); got != want {
		t.Errorf("DescriptorFilePath() = %q, want %q", got, want)
	}
	if s.DependencyMarker != aggregator.DefaultMarker {
		t.Errorf("DependencyMarker = %q, want %q", s.DependencyMarker, aggregator.DefaultMarker)
	}
}

func TestLoadFromFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeConfig(t, fs, "template_root: templates\nconsumer_module: presentation:screens\n")

	s, err := Load(fs, projectDir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if s.TemplateRoot != "templates" {
		t.Errorf("TemplateRoot = %q, want %q", s.TemplateRoot, "templates")
	}
	if s.ConsumerModule != "presentation:screens" {
		t.Errorf("ConsumerModule = %q, want %q", s.ConsumerModule, "presentation:screens")
	}
	// Unset keys keep their defaults.
	if s.SettingsFile != "settings.gradle.kts" {
		t.Errorf("SettingsFile = %q, want default", s.SettingsFile)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeConfig(t, fs, "template_root: templates\n")
	t.Setenv("FEATUREKIT_TEMPLATE_ROOT", "/abs/templates")

	s, err := Load(fs, projectDir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if s.TemplateRoot != "/abs/templates" {
		t.Errorf("TemplateRoot = %q, want env override", s.TemplateRoot)
	}
	if got := s.TemplateRootPath(); got != "/abs/templates" {
		t.Errorf("absolute TemplateRootPath() = %q, want unchanged", got)
	}
}

func TestLoadEmptyFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeConfig(t, fs, "")

	if _, err := Load(fs, projectDir); err != nil {
		t.Fatalf("Load() with empty file error: %v", err)
	}
}

func TestLoadInvalidFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
		path    string
	}{
		{"unknown key", "template_rot: x\n", ""},
		{"bad consumer module", "consumer_module: ui\n", "/consumer_module"},
		{"empty marker", "dependency_marker: \"\"\n", "/dependency_marker"},
		{"wrong type", "settings_file: [a, b]\n", "/settings_file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			writeConfig(t, fs, tt.content)

			_, err := Load(fs, projectDir)
			var invalid *InvalidFileError
			if !errors.As(err, &invalid) {
				t.Fatalf("Load() error = %v, want *InvalidFileError", err)
			}
			if len(invalid.Issues) == 0 {
				t.Fatal("expected at least one issue")
			}
			found := false
			for _, issue := range invalid.Issues {
				if issue.Path == tt.path {
					found = true
				}
			}
			if !found {
				t.Errorf("no issue at path %q: %v", tt.path, invalid.Issues)
			}
		})
	}
}

func TestSetCreatesAndUpdatesFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := fs.MkdirAll(projectDir, 0o755); err != nil {
		t.Fatal(err)
	}

	if err := Set(fs, projectDir, KeyTemplateRoot, "tpl"); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if err := Set(fs, projectDir, KeySettingsFile, "settings.gradle"); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	data, err := afero.ReadFile(fs, FilePath(projectDir))
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)
	if !strings.Contains(content, "template_root: tpl") {
		t.Errorf("config file missing template_root:\n%s", content)
	}
	if strings.Contains(content, "manifest_file") {
		t.Errorf("defaults leaked into config file:\n%s", content)
	}

	s, err := Load(fs, projectDir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if s.TemplateRoot != "tpl" || s.SettingsFile != "settings.gradle" {
		t.Errorf("Load() after Set = %+v", s)
	}
}

func TestSetRejectsUnknownKey(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := Set(fs, projectDir, "nope", "x"); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestSetRejectsInvalidValue(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := fs.MkdirAll(projectDir, 0o755); err != nil {
		t.Fatal(err)
	}

	err := Set(fs, projectDir, KeyConsumerModule, "nonsense")
	var invalid *InvalidFileError
	if !errors.As(err, &invalid) {
		t.Fatalf("Set() error = %v, want *InvalidFileError", err)
	}
	if ok, _ := afero.Exists(fs, FilePath(projectDir)); ok {
		t.Error("invalid value should not have been written")
	}
}

func TestSettingsGet(t *testing.T) {
	s := Default(projectDir)
	for _, key := range Keys() {
		v, ok := s.Get(key)
		if !ok {
			t.Errorf("Get(%q) not found", key)
		}
		if v == "" {
			t.Errorf("Get(%q) is empty", key)
		}
	}
	if _, ok := s.Get("missing"); ok {
		t.Error("Get(missing) should not be found")
	}
}
