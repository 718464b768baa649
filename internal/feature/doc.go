// Package feature defines the request and naming model shared by the
// scaffolder: the feature request itself, the fixed architectural layers, and
// the paths (module path, directory, package directory) derived for every
// generated submodule.
package feature
