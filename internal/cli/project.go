package cli

import (
	"fmt"
	"path/filepath"

	"github.com/featurekit-labs/featurekit/internal/config"
)

// loadSettings resolves --project-dir and loads its configuration.
func loadSettings() (config.Settings, error) {
	dir, err := resolveProjectDir()
	if err != nil {
		return config.Settings{}, err
	}
	settings, err := config.Load(appFs, dir)
	if err != nil {
		return config.Settings{}, fmt.Errorf("loading configuration: %w", err)
	}
	logger.Debug("loaded settings", "project", dir, "templates", settings.TemplateRootPath())
	return settings, nil
}

func resolveProjectDir() (string, error) {
	dir, err := filepath.Abs(projectDir)
	if err != nil {
		return "", fmt.Errorf("resolving project directory %q: %w", projectDir, err)
	}
	return dir, nil
}
