package config

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/featurekit-labs/featurekit/internal/aggregator"
	"github.com/featurekit-labs/featurekit/internal/branding"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"
)

const fileType = "yaml"

// Configuration keys.
const (
	KeyTemplateRoot     = "template_root"
	KeySettingsFile     = "settings_file"
	KeyDescriptorFile   = "descriptor_file"
	KeyDependencyMarker = "dependency_marker"
	KeyConsumerModule   = "consumer_module"
	KeyManifestFile     = "manifest_file"
)

// Defaults follow the conventional Gradle feature-manager layout.
var defaults = map[string]string{
	KeyTemplateRoot:     filepath.Join("gradle-scripts", "feature-manager", "templates"),
	KeySettingsFile:     "settings.gradle.kts",
	KeyDescriptorFile:   filepath.Join("app", "build.gradle.kts"),
	KeyDependencyMarker: aggregator.DefaultMarker,
	KeyConsumerModule:   "presentation:ui",
	KeyManifestFile:     "AndroidManifest.xml",
}

// Keys returns every known configuration key, sorted.
func Keys() []string {
	keys := make([]string, 0, len(defaults))
	for k := range defaults {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// IsKey reports whether key is a known configuration key.
func IsKey(key string) bool {
	_, ok := defaults[key]
	return ok
}

// Settings is the resolved configuration of one project. File paths are kept
// as configured; the *Path methods resolve them against ProjectDir.
type Settings struct {
	ProjectDir       string
	TemplateRoot     string
	SettingsFile     string
	DescriptorFile   string
	DependencyMarker string
	ConsumerModule   string
	ManifestFile     string
}

// Default returns the built-in settings for projectDir.
func Default(projectDir string) Settings {
	return Settings{
		ProjectDir:       projectDir,
		TemplateRoot:     defaults[KeyTemplateRoot],
		SettingsFile:     defaults[KeySettingsFile],
		DescriptorFile:   defaults[KeyDescriptorFile],
		DependencyMarker: defaults[KeyDependencyMarker],
		ConsumerModule:   defaults[KeyConsumerModule],
		ManifestFile:     defaults[KeyManifestFile],
	}
}

// TemplateRootPath returns the template root resolved against ProjectDir.
func (s Settings) TemplateRootPath() string { return s.resolve(s.TemplateRoot) }

// SettingsFilePath returns the settings registry resolved against ProjectDir.
func (s Settings) SettingsFilePath() string { return s.resolve(s.SettingsFile) }

// DescriptorFilePath returns the consumer descriptor resolved against ProjectDir.
func (s Settings) DescriptorFilePath() string { return s.resolve(s.DescriptorFile) }

// Get returns the value of a configuration key.
func (s Settings) Get(key string) (string, bool) {
	switch key {
	case KeyTemplateRoot:
		return s.TemplateRoot, true
	case KeySettingsFile:
		return s.SettingsFile, true
	case KeyDescriptorFile:
		return s.DescriptorFile, true
	case KeyDependencyMarker:
		return s.DependencyMarker, true
	case KeyConsumerModule:
		return s.ConsumerModule, true
	case KeyManifestFile:
		return s.ManifestFile, true
	}
	return "", false
}

func (s Settings) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(s.ProjectDir, path)
}

// FilePath returns the project configuration file path.
func FilePath(projectDir string) string {
	return filepath.Join(projectDir, branding.ConfigFile())
}

// Load resolves the settings for projectDir from environment, project file
// and defaults. An existing project file that fails schema validation is an
// error of type *InvalidFileError.
func Load(fs afero.Fs, projectDir string) (Settings, error) {
	v := viper.New()
	v.SetFs(fs)
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.SetEnvPrefix(branding.EnvPrefix())
	v.AutomaticEnv()

	path := FilePath(projectDir)
	exists, err := afero.Exists(fs, path)
	if err != nil {
		return Settings{}, fmt.Errorf("checking config file %s: %w", path, err)
	}
	if exists {
		result, err := ValidateFile(fs, path)
		if err != nil {
			return Settings{}, err
		}
		if !result.Valid {
			return Settings{}, &InvalidFileError{Path: path, Issues: result.Issues}
		}

		v.SetConfigFile(path)
		v.SetConfigType(fileType)
		if err := v.ReadInConfig(); err != nil {
			return Settings{}, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	return Settings{
		ProjectDir:       projectDir,
		TemplateRoot:     v.GetString(KeyTemplateRoot),
		SettingsFile:     v.GetString(KeySettingsFile),
		DescriptorFile:   v.GetString(KeyDescriptorFile),
		DependencyMarker: v.GetString(KeyDependencyMarker),
		ConsumerModule:   v.GetString(KeyConsumerModule),
		ManifestFile:     v.GetString(KeyManifestFile),
	}, nil
}

// Set writes a key-value pair into the project file, creating it when
// needed. Only keys present in the file are written back; defaults and
// environment overrides never leak into it.
func Set(fs afero.Fs, projectDir, key, value string) error {
	if !IsKey(key) {
		return fmt.Errorf("unknown config key %q", key)
	}

	path := FilePath(projectDir)
	v := viper.New()
	v.SetFs(fs)
	v.SetConfigFile(path)
	v.SetConfigType(fileType)

	exists, err := afero.Exists(fs, path)
	if err != nil {
		return fmt.Errorf("checking config file %s: %w", path, err)
	}
	if exists {
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	v.Set(key, value)

	// Validate the would-be file before touching disk.
	data, err := yaml.Marshal(v.AllSettings())
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	result, err := Validate(data)
	if err != nil {
		return err
	}
	if !result.Valid {
		return &InvalidFileError{Path: path, Issues: result.Issues}
	}

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
