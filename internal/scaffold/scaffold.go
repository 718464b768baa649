package scaffold

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/featurekit-labs/featurekit/internal/aggregator"
	"github.com/featurekit-labs/featurekit/internal/config"
	"github.com/featurekit-labs/featurekit/internal/feature"
	"github.com/featurekit-labs/featurekit/internal/templates"
	"github.com/spf13/afero"
)

// Scaffolder materializes features into one project.
//
// A Scaffolder is not safe for concurrent use, and neither are two
// Scaffolders (or processes) pointed at the same project: the aggregator
// files are read, patched and rewritten without locking.
type Scaffolder struct {
	fs       afero.Fs
	settings config.Settings
	catalog  *templates.Catalog
	logger   *log.Logger
}

// New returns a Scaffolder for the project described by settings. A nil
// logger discards all log output.
func New(fsys afero.Fs, settings config.Settings, logger *log.Logger) *Scaffolder {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Scaffolder{
		fs:       fsys,
		settings: settings,
		catalog:  templates.NewCatalog(fsys, settings.TemplateRootPath()),
		logger:   logger,
	}
}

// Catalog returns the template catalog the scaffolder reads from.
func (s *Scaffolder) Catalog() *templates.Catalog { return s.catalog }

// Materialize scaffolds every templated submodule of the requested feature.
//
// An incomplete request touches nothing and yields OutcomeMissingArguments
// with a nil error. Filesystem failures inside one submodule are recorded on
// that submodule's result and processing moves on to the next one. Failure
// to read or write an aggregator file is different: it stops the run and is
// returned as an error (a *aggregator.PatchError) alongside the partial
// report.
func (s *Scaffolder) Materialize(req feature.Request) (*Report, error) {
	report := &Report{Feature: req.Name(), Package: req.Package()}
	if err := req.Validate(); err != nil {
		report.Outcome = OutcomeMissingArguments
		return report, nil
	}

	consumer, err := s.consumerModule(req)
	if err != nil {
		return nil, err
	}

	projectDir := s.settings.ProjectDir
	markerWarned := false
	if err := s.fs.MkdirAll(req.Dir(projectDir), feature.DirPerm); err != nil {
		s.logger.Warn("creating feature directory", "dir", req.Dir(projectDir), "err", err)
	}

	for _, layer := range feature.Layers() {
		layerDir := req.LayerDir(projectDir, layer)
		s.logger.Debug("scaffolding layer", "feature", req.Name(), "layer", layer)

		if err := s.fs.MkdirAll(layerDir, feature.DirPerm); err != nil {
			s.logger.Warn("creating layer directory", "dir", layerDir, "err", err)
			report.layerFailed(layer, fmt.Errorf("creating %s: %w", layerDir, err))
			continue
		}

		names, err := s.catalog.Submodules(layer)
		if err != nil {
			s.logger.Warn("listing templates", "layer", layer, "err", err)
			report.layerFailed(layer, err)
			continue
		}
		if len(names) == 0 {
			s.logger.Debug("no templates for layer", "layer", layer, "dir", s.catalog.LayerDir(layer))
		}

		for _, name := range names {
			result := s.materializeModule(req.Module(layer, name))
			if result.Err != nil {
				s.logger.Warn("submodule failed", "module", result.Module.Path(), "err", result.Err)
				report.Results = append(report.Results, result)
				continue
			}

			err := s.register(&result, consumer)
			if err != nil {
				result.Err = &ModuleError{Module: result.Module.Path(), Kind: KindRegistration, Err: err}
				report.Results = append(report.Results, result)
				report.Outcome = OutcomeAborted
				return report, err
			}
			report.Results = append(report.Results, result)
			if result.Dependency == aggregator.MarkerMissing && !markerWarned {
				markerWarned = true
				s.logger.Warn("dependency marker not found", "file", s.settings.DescriptorFilePath())
				report.warnf("%s has no dependency marker %q; add it to register %s",
					s.settings.DescriptorFile, s.settings.DependencyMarker, consumer.Path())
			}
		}
	}

	report.Outcome = OutcomeCompleted
	return report, nil
}

// consumerModule resolves the submodule the consumer descriptor depends on.
func (s *Scaffolder) consumerModule(req feature.Request) (feature.Module, error) {
	layer, sub, ok := feature.ParseModuleRef(s.settings.ConsumerModule)
	if !ok {
		return feature.Module{}, fmt.Errorf("invalid consumer module %q: want <layer>:<submodule>", s.settings.ConsumerModule)
	}
	return req.Module(layer, sub), nil
}

// materializeModule runs the directory, manifest, copy and substitution steps
// for one submodule. Any failure stops this submodule only.
func (s *Scaffolder) materializeModule(m feature.Module) ModuleResult {
	result := ModuleResult{Module: m}
	projectDir := s.settings.ProjectDir
	fail := func(kind ErrorKind, path string, err error) ModuleResult {
		result.Err = &ModuleError{Module: m.Path(), Kind: kind, Path: path, Err: err}
		return result
	}

	for _, dir := range m.SourceDirs(projectDir) {
		if err := s.fs.MkdirAll(dir, feature.DirPerm); err != nil {
			return fail(KindDirectory, dir, err)
		}
	}

	manifest := m.ManifestPath(projectDir, s.settings.ManifestFile)
	if err := s.createIfAbsent(manifest); err != nil {
		return fail(KindManifest, manifest, err)
	}

	entry, err := s.catalog.Load(m.Layer, m.Submodule)
	if err != nil {
		return fail(KindTemplate, "", err)
	}

	root := m.Dir(projectDir)
	written := make([]string, 0, len(entry.Files))
	for _, f := range entry.Files {
		dst := filepath.Join(root, f.RelPath)
		if err := s.copyFile(f, dst); err != nil {
			return fail(KindCopy, dst, err)
		}
		written = append(written, f.RelPath)
	}

	replacer := m.Replacer()
	for _, rel := range written {
		dst := filepath.Join(root, rel)
		if err := s.substitute(dst, replacer.Replace); err != nil {
			return fail(KindSubstitution, dst, err)
		}
	}

	s.logger.Debug("materialized submodule", "module", m.Path(), "files", len(written))
	result.Files = written
	return result
}

// register records a materialized submodule in both aggregator files.
func (s *Scaffolder) register(result *ModuleResult, consumer feature.Module) error {
	path := result.Module.Path()

	include, err := aggregator.RegisterModule(s.fs, s.settings.SettingsFilePath(), path)
	if err != nil {
		return err
	}
	result.Include = include

	dep, err := aggregator.RegisterDependency(
		s.fs,
		s.settings.DescriptorFilePath(),
		s.settings.DependencyMarker,
		aggregator.ImplementationLine(consumer.Path()),
	)
	if err != nil {
		return err
	}
	result.Dependency = dep

	s.logger.Debug("registered submodule", "module", path, "include", include, "dependency", dep)
	return nil
}

// createIfAbsent creates an empty file unless one already exists. Existing
// content is never touched.
func (s *Scaffolder) createIfAbsent(path string) error {
	f, err := s.fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, feature.FilePerm)
	if errors.Is(err, os.ErrExist) {
		return nil
	}
	if err != nil {
		return err
	}
	return f.Close()
}

// copyFile writes a template file to dst, overwriting whatever is there.
func (s *Scaffolder) copyFile(f templates.File, dst string) error {
	if err := s.fs.MkdirAll(filepath.Dir(dst), feature.DirPerm); err != nil {
		return err
	}
	mode := f.Mode
	if mode == 0 {
		mode = feature.FilePerm
	}
	return afero.WriteFile(s.fs, dst, f.Content, mode)
}

// substitute rewrites a file through replace, keeping its permissions.
func (s *Scaffolder) substitute(path string, replace func(string) string) error {
	info, err := s.fs.Stat(path)
	if err != nil {
		return err
	}
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return err
	}
	out := replace(string(data))
	if out == string(data) {
		return nil
	}
	return afero.WriteFile(s.fs, path, []byte(out), info.Mode().Perm())
}
