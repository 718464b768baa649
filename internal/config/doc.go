// Package config manages the per-project settings stored in .featurekit.yaml
// at the project root. Settings resolve in order: FEATUREKIT_* environment
// variables, the project file, then built-in defaults matching the
// conventional Gradle feature-manager layout. The project file is validated
// against an embedded JSON schema before it is used.
package config
