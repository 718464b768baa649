// Package aggregator registers generated modules in the two build files that
// aggregate them: the settings registry (one include line per module) and the
// consumer descriptor (dependency lines inserted after a sentinel marker).
// Both operations are plain text edits that check before inserting, so
// repeated calls never duplicate a line. They are not safe for concurrent use
// against the same file.
package aggregator

import (
	"fmt"
	"strings"

	"github.com/featurekit-labs/featurekit/internal/feature"
	"github.com/spf13/afero"
)

// DefaultMarker is the sentinel comment that anchors dependency insertion.
const DefaultMarker = "    // [Feature-Manager dependencies]"

// Outcome describes what a patch operation did to its file.
type Outcome int

const (
	// NotAttempted is the zero value: the patch was never applied, or failed
	// before the file was written.
	NotAttempted Outcome = iota
	Inserted
	AlreadyPresent
	MarkerMissing
)

func (o Outcome) String() string {
	switch o {
	case NotAttempted:
		return "not attempted"
	case Inserted:
		return "inserted"
	case AlreadyPresent:
		return "already present"
	case MarkerMissing:
		return "marker missing"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// PatchError reports an aggregator file that could not be read or written.
type PatchError struct {
	File string
	Op   string
	Err  error
}

func (e *PatchError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.File, e.Err)
}

func (e *PatchError) Unwrap() error { return e.Err }

// IncludeLine returns the settings registry line for a module path.
func IncludeLine(modulePath string) string {
	return `include("` + modulePath + `")`
}

// ImplementationLine returns the consumer dependency line for a module path.
func ImplementationLine(modulePath string) string {
	return `implementation(project(mapOf("path" to "` + modulePath + `")))`
}

// RegisterModule appends the include line for modulePath to settingsFile
// unless the file already contains it. The file must exist.
func RegisterModule(fs afero.Fs, settingsFile, modulePath string) (Outcome, error) {
	content, err := afero.ReadFile(fs, settingsFile)
	if err != nil {
		return NotAttempted, &PatchError{File: settingsFile, Op: "reading", Err: err}
	}

	line := IncludeLine(modulePath)
	if strings.Contains(string(content), line) {
		return AlreadyPresent, nil
	}

	// Start on a fresh line, keeping a trailing newline if the file had one.
	addition := "\n" + line
	if strings.HasSuffix(string(content), "\n") {
		addition = line + "\n"
	}

	if err := afero.WriteFile(fs, settingsFile, append(content, addition...), feature.FilePerm); err != nil {
		return NotAttempted, &PatchError{File: settingsFile, Op: "writing", Err: err}
	}
	return Inserted, nil
}

// RegisterDependency inserts line right after the first occurrence of marker
// in buildFile, indented like the marker, unless the file already contains
// line. The marker itself is kept so later insertions anchor at the same
// point. A file without the marker is left unchanged and MarkerMissing is
// returned.
func RegisterDependency(fs afero.Fs, buildFile, marker, line string) (Outcome, error) {
	data, err := afero.ReadFile(fs, buildFile)
	if err != nil {
		return NotAttempted, &PatchError{File: buildFile, Op: "reading", Err: err}
	}

	content := string(data)
	if strings.Contains(content, line) {
		return AlreadyPresent, nil
	}
	if marker == "" || !strings.Contains(content, marker) {
		return MarkerMissing, nil
	}

	indent := marker[:len(marker)-len(strings.TrimLeft(marker, " \t"))]
	patched := strings.Replace(content, marker, marker+"\n"+indent+line, 1)

	if err := afero.WriteFile(fs, buildFile, []byte(patched), feature.FilePerm); err != nil {
		return NotAttempted, &PatchError{File: buildFile, Op: "writing", Err: err}
	}
	return Inserted, nil
}
