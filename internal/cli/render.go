package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/featurekit-labs/featurekit/internal/aggregator"
	"github.com/featurekit-labs/featurekit/internal/feature"
	"github.com/featurekit-labs/featurekit/internal/scaffold"
	"go.yaml.in/yaml/v3"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

func validFormat(format string) bool {
	switch format {
	case formatText, formatJSON, formatYAML:
		return true
	}
	return false
}

// reportView is the machine-readable form of a scaffold.Report.
type reportView struct {
	Feature     string            `json:"feature" yaml:"feature"`
	Package     string            `json:"package" yaml:"package"`
	Outcome     string            `json:"outcome" yaml:"outcome"`
	Modules     []moduleView      `json:"modules" yaml:"modules"`
	LayerErrors map[string]string `json:"layer_errors,omitempty" yaml:"layer_errors,omitempty"`
	Warnings    []string          `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

type moduleView struct {
	Path       string   `json:"path" yaml:"path"`
	Layer      string   `json:"layer" yaml:"layer"`
	Submodule  string   `json:"submodule" yaml:"submodule"`
	OK         bool     `json:"ok" yaml:"ok"`
	Files      []string `json:"files,omitempty" yaml:"files,omitempty"`
	Error      string   `json:"error,omitempty" yaml:"error,omitempty"`
	Include    string   `json:"include,omitempty" yaml:"include,omitempty"`
	Dependency string   `json:"dependency,omitempty" yaml:"dependency,omitempty"`
}

func newReportView(r *scaffold.Report) reportView {
	view := reportView{
		Feature:  r.Feature,
		Package:  r.Package,
		Outcome:  r.Outcome.String(),
		Modules:  make([]moduleView, 0, len(r.Results)),
		Warnings: r.Warnings,
	}
	for _, res := range r.Results {
		m := moduleView{
			Path:      res.Module.Path(),
			Layer:     string(res.Module.Layer),
			Submodule: res.Module.Submodule,
			OK:        res.OK(),
			Files:     res.Files,
		}
		if res.Include != aggregator.NotAttempted {
			m.Include = res.Include.String()
		}
		if res.Dependency != aggregator.NotAttempted {
			m.Dependency = res.Dependency.String()
		}
		if !res.OK() {
			m.Error = res.Err.Error()
		}
		view.Modules = append(view.Modules, m)
	}
	if len(r.LayerErrors) > 0 {
		view.LayerErrors = make(map[string]string, len(r.LayerErrors))
		for layer, err := range r.LayerErrors {
			view.LayerErrors[string(layer)] = err.Error()
		}
	}
	return view
}

func writeReport(w io.Writer, r *scaffold.Report, format string) error {
	switch format {
	case formatJSON:
		out, err := json.MarshalIndent(newReportView(r), "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling report: %w", err)
		}
		_, err = fmt.Fprintln(w, string(out))
		return err
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(newReportView(r)); err != nil {
			return fmt.Errorf("marshaling report: %w", err)
		}
		return enc.Close()
	default:
		renderText(w, r)
		return nil
	}
}

// renderText prints one progress line per layer followed by the detail of
// each submodule in that layer.
func renderText(w io.Writer, r *scaffold.Report) {
	if r.Outcome == scaffold.OutcomeMissingArguments {
		printUsage(w)
		return
	}

	for _, layer := range reportedLayers(r) {
		status := paint(successStyle, "OK")
		if !r.LayerOK(layer) {
			status = paint(errorStyle, "ERROR")
		}
		fmt.Fprintf(w, "Creating new feature :%s:%s... %s\n", r.Feature, layer, status)

		if err := r.LayerErrors[layer]; err != nil {
			fmt.Fprintf(w, "  %s %v\n", paint(errorStyle, "✗"), err)
		}
		for _, res := range r.ForLayer(layer) {
			if res.OK() {
				fmt.Fprintf(w, "  %s %s %s\n", paint(successStyle, "✓"), res.Module.Path(),
					paint(mutedStyle, fmt.Sprintf("(%d %s)", len(res.Files), plural(len(res.Files), "file", "files"))))
				continue
			}
			fmt.Fprintf(w, "  %s %v\n", paint(errorStyle, "✗"), res.Err)
		}
	}

	for _, warning := range r.Warnings {
		fmt.Fprintf(w, "%s %s\n", paint(warningStyle, "warning:"), warning)
	}

	ok, failed := len(r.Succeeded()), len(r.Failed())
	summary := fmt.Sprintf("%d %s created", ok, plural(ok, "submodule", "submodules"))
	if failed > 0 {
		summary += fmt.Sprintf(", %d failed", failed)
	}
	if r.Outcome == scaffold.OutcomeAborted {
		summary += "; aborted"
	}
	fmt.Fprintln(w, paint(titleStyle, summary))
}

// reportedLayers returns the layers the run reached. An aborted run stops at
// the layer of its last result.
func reportedLayers(r *scaffold.Report) []feature.Layer {
	layers := feature.Layers()
	if r.Outcome != scaffold.OutcomeAborted || len(r.Results) == 0 {
		return layers
	}
	last := r.Results[len(r.Results)-1].Module.Layer
	for i, layer := range layers {
		if layer == last {
			return layers[:i+1]
		}
	}
	return layers
}

func printUsage(w io.Writer) {
	fmt.Fprintf(w, "%s %s\n\n", paint(errorStyle, "Missing arguments:"), feature.ErrMissingArguments)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintf(w, "  %s\n", paint(cmdStyle,
		rootCmd.Name()+` create --featureName="<name>" --featurePackage="<package>"`))
	fmt.Fprintln(w)
	fmt.Fprintln(w, usageExample())
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
