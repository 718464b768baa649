package scaffold

import (
	"fmt"

	"github.com/featurekit-labs/featurekit/internal/aggregator"
	"github.com/featurekit-labs/featurekit/internal/feature"
)

// Outcome is the overall result of a Materialize call.
type Outcome int

const (
	// OutcomeCompleted means every layer was processed. Individual submodules
	// may still have failed.
	OutcomeCompleted Outcome = iota
	// OutcomeMissingArguments means the request was incomplete and nothing
	// was touched.
	OutcomeMissingArguments
	// OutcomeAborted means an aggregator file could not be patched and the
	// run stopped early.
	OutcomeAborted
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCompleted:
		return "completed"
	case OutcomeMissingArguments:
		return "missing arguments"
	case OutcomeAborted:
		return "aborted"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// ErrorKind classifies a submodule failure by the step that failed.
type ErrorKind string

const (
	KindDirectory    ErrorKind = "directory creation"
	KindManifest     ErrorKind = "manifest creation"
	KindTemplate     ErrorKind = "template read"
	KindCopy         ErrorKind = "file copy"
	KindSubstitution ErrorKind = "substitution"
	KindRegistration ErrorKind = "registration"
)

// ModuleError reports a filesystem failure scoped to one submodule. A
// KindRegistration error wraps the *aggregator.PatchError that aborted the
// run.
type ModuleError struct {
	Module string
	Kind   ErrorKind
	Path   string
	Err    error
}

func (e *ModuleError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %s failed: %v", e.Module, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s failed for %s: %v", e.Module, e.Kind, e.Path, e.Err)
}

func (e *ModuleError) Unwrap() error { return e.Err }

// ModuleResult is the outcome for one attempted submodule.
type ModuleResult struct {
	Module feature.Module

	// Files lists the template files written, relative to the submodule root.
	Files []string

	// Err is nil on success, otherwise a *ModuleError.
	Err error

	// Include and Dependency record what registration did. Steps that never
	// completed stay aggregator.NotAttempted.
	Include    aggregator.Outcome
	Dependency aggregator.Outcome
}

// OK reports whether the submodule was materialized.
func (r ModuleResult) OK() bool { return r.Err == nil }

// Report holds the outcome of a Materialize call.
type Report struct {
	Feature string
	Package string
	Outcome Outcome
	Results []ModuleResult

	// LayerErrors holds failures that affected a whole layer: its base
	// directory could not be created or its templates could not be listed.
	LayerErrors map[feature.Layer]error
	Warnings    []string
}

// Succeeded returns the results of materialized submodules.
func (r *Report) Succeeded() []ModuleResult {
	var out []ModuleResult
	for _, res := range r.Results {
		if res.OK() {
			out = append(out, res)
		}
	}
	return out
}

// Failed returns the results of submodules that failed.
func (r *Report) Failed() []ModuleResult {
	var out []ModuleResult
	for _, res := range r.Results {
		if !res.OK() {
			out = append(out, res)
		}
	}
	return out
}

// ForLayer returns the results belonging to one layer, in processing order.
func (r *Report) ForLayer(layer feature.Layer) []ModuleResult {
	var out []ModuleResult
	for _, res := range r.Results {
		if res.Module.Layer == layer {
			out = append(out, res)
		}
	}
	return out
}

// LayerOK reports whether every attempted submodule of a layer succeeded.
// A layer with no submodules is OK unless the layer itself failed.
func (r *Report) LayerOK(layer feature.Layer) bool {
	if r.LayerErrors[layer] != nil {
		return false
	}
	for _, res := range r.ForLayer(layer) {
		if !res.OK() {
			return false
		}
	}
	return true
}

func (r *Report) layerFailed(layer feature.Layer, err error) {
	if r.LayerErrors == nil {
		r.LayerErrors = make(map[feature.Layer]error)
	}
	r.LayerErrors[layer] = err
}

func (r *Report) warnf(format string, args ...interface{}) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}
