// Package scaffold materializes a feature: for every layer it creates the
// submodule trees described by the template catalog, copies and substitutes
// the template files, drops an empty manifest marker into each submodule and
// registers the submodule in the project's settings and consumer build files.
// It powers the "featurekit create" command.
package scaffold
