package feature

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// Substitution tokens recognised inside template files.
const (
	TokenFeature        = "<FEATURE>"
	TokenFeaturePackage = "<FEATURE_PACKAGE>"
)

// ErrMissingArguments is returned by Validate when the feature name or the
// feature package is empty.
var ErrMissingArguments = errors.New("featureName and featurePackage are required")

// Permissions of generated directories and files. Existing files keep their
// mode when rewritten.
const (
	DirPerm  os.FileMode = 0o755
	FilePerm os.FileMode = 0o644
)

// Layer is one of the fixed architectural tiers of a feature.
type Layer string

const (
	LayerPresentation Layer = "presentation"
	LayerDomain       Layer = "domain"
	LayerData         Layer = "data"
)

// Layers returns the layers in the order they are scaffolded and reported.
func Layers() []Layer {
	return []Layer{LayerPresentation, LayerDomain, LayerData}
}

// SourceRoots are the source sets created under every submodule's src/ tree.
var SourceRoots = []string{"main", "test", "androidTest"}

// Request is a validated-on-demand, immutable scaffolding request.
type Request struct {
	name string
	pkg  string
}

// NewRequest builds a request from the raw option values. Surrounding
// whitespace is trimmed; no other normalisation happens.
func NewRequest(name, pkg string) Request {
	return Request{
		name: strings.TrimSpace(name),
		pkg:  strings.TrimSpace(pkg),
	}
}

// Name returns the colon-delimited feature identifier, e.g. "feature:splash".
func (r Request) Name() string { return r.name }

// Package returns the dot-delimited base package, e.g. "io.sample.splash".
func (r Request) Package() string { return r.pkg }

// Validate reports ErrMissingArguments when either field is empty.
func (r Request) Validate() error {
	if r.name == "" || r.pkg == "" {
		return ErrMissingArguments
	}
	return nil
}

// Dir returns the feature base directory under projectDir. Each colon-delimited
// segment of the name becomes one directory level.
func (r Request) Dir(projectDir string) string {
	return filepath.Join(projectDir, filepath.Join(strings.Split(r.name, ":")...))
}

// LayerDir returns the base directory of one layer of the feature.
func (r Request) LayerDir(projectDir string, layer Layer) string {
	return filepath.Join(r.Dir(projectDir), string(layer))
}

// PackageSuffix is the value substituted for TokenFeaturePackage: the feature
// name with colons mapped to dots, prefixed with a dot.
func (r Request) PackageSuffix() string {
	return "." + strings.ReplaceAll(r.name, ":", ".")
}

// Replacer returns a single-pass replacer for both substitution tokens.
// Replaced text is never rescanned, so content without tokens is untouched.
func (r Request) Replacer() *strings.Replacer {
	return strings.NewReplacer(
		TokenFeaturePackage, r.PackageSuffix(),
		TokenFeature, r.name,
	)
}

// Module returns the submodule of this feature identified by layer and name.
func (r Request) Module(layer Layer, submodule string) Module {
	return Module{request: r, Layer: layer, Submodule: submodule}
}

// ParseModuleRef splits a "layer:submodule" reference such as
// "presentation:ui".
func ParseModuleRef(ref string) (Layer, string, bool) {
	layer, sub, ok := strings.Cut(ref, ":")
	if !ok || layer == "" || sub == "" {
		return "", "", false
	}
	return Layer(layer), sub, true
}
