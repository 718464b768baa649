package feature

import (
	"path/filepath"
	"strings"
)

// Module is one generated submodule of a feature.
type Module struct {
	request   Request
	Layer     Layer
	Submodule string
}

// Path returns the build-system module path, ":<feature>:<layer>:<submodule>".
func (m Module) Path() string {
	return ":" + m.request.name + ":" + string(m.Layer) + ":" + m.Submodule
}

// Replacer returns the substitution replacer of the module's feature.
func (m Module) Replacer() *strings.Replacer { return m.request.Replacer() }

// String implements fmt.Stringer.
func (m Module) String() string { return m.Path() }

// Dir returns the submodule root directory under projectDir.
func (m Module) Dir(projectDir string) string {
	return filepath.Join(m.request.LayerDir(projectDir, m.Layer), m.Submodule)
}

// Package returns the dotted package of the submodule,
// "<featurePackage>.<layer>.<submodule>".
func (m Module) Package() string {
	return m.request.pkg + "." + string(m.Layer) + "." + m.Submodule
}

// PackagePath returns Package with dots mapped to the OS path separator.
func (m Module) PackagePath() string {
	return filepath.Join(strings.Split(m.Package(), ".")...)
}

// SourceDir returns src/<root>/java/<package-path> under the submodule root.
func (m Module) SourceDir(projectDir, root string) string {
	return filepath.Join(m.Dir(projectDir), "src", root, "java", m.PackagePath())
}

// SourceDirs returns the source directory for every entry of SourceRoots.
func (m Module) SourceDirs(projectDir string) []string {
	dirs := make([]string, 0, len(SourceRoots))
	for _, root := range SourceRoots {
		dirs = append(dirs, m.SourceDir(projectDir, root))
	}
	return dirs
}

// ManifestPath returns the location of the manifest marker file: the
// source-set root src/, next to the main, test and androidTest trees.
func (m Module) ManifestPath(projectDir, manifestFile string) string {
	return filepath.Join(m.Dir(projectDir), "src", manifestFile)
}
