package templates

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/spf13/afero"
	"go.yaml.in/yaml/v3"
)

// SetFileName is the optional descriptor at the template root.
const SetFileName = "template-set.yaml"

// Set describes a template set.
type Set struct {
	Name        string `yaml:"name" json:"name"`
	Version     string `yaml:"version,omitempty" json:"version,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	// Requires is a semver constraint on the featurekit version, e.g. ">= 0.2.0".
	Requires string `yaml:"requires,omitempty" json:"requires,omitempty"`
}

// ReadSet parses the template-set descriptor. It returns nil and no error
// when the root has no descriptor.
func (c *Catalog) ReadSet() (*Set, error) {
	path := filepath.Join(c.Root, SetFileName)
	ok, err := afero.Exists(c.FS, path)
	if err != nil {
		return nil, fmt.Errorf("checking %s: %w", path, err)
	}
	if !ok {
		return nil, nil
	}

	data, err := afero.ReadFile(c.FS, path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var set Set
	if err := yaml.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if set.Version != "" {
		if _, err := parseSemver(set.Version); err != nil {
			return nil, fmt.Errorf("%s: invalid version %q: %w", path, set.Version, err)
		}
	}
	if set.Requires != "" {
		if _, err := semver.NewConstraint(set.Requires); err != nil {
			return nil, fmt.Errorf("%s: invalid requires constraint %q: %w", path, set.Requires, err)
		}
	}
	return &set, nil
}

// CheckCompatibility reports whether toolVersion satisfies the set's
// requirement. Sets without a requirement and non-release builds ("dev", or
// any version that does not parse) are always compatible.
func (s *Set) CheckCompatibility(toolVersion string) (bool, error) {
	if s == nil || s.Requires == "" {
		return true, nil
	}

	constraint, err := semver.NewConstraint(s.Requires)
	if err != nil {
		return false, fmt.Errorf("parsing constraint %q: %w", s.Requires, err)
	}

	v, err := parseSemver(toolVersion)
	if err != nil {
		return true, nil
	}
	return constraint.Check(v), nil
}

// parseSemver strips a leading "v" and parses the version string.
func parseSemver(version string) (*semver.Version, error) {
	version = strings.TrimPrefix(version, "v")
	return semver.NewVersion(version)
}
