package templates

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/featurekit-labs/featurekit/internal/feature"
	"github.com/spf13/afero"
)

// excludedNames are files/directories never copied out of a template.
var excludedNames = map[string]bool{
	".git":      true,
	".DS_Store": true,
}

// File is one template file, addressed relative to its submodule directory.
type File struct {
	RelPath string
	Content []byte
	Mode    os.FileMode
}

// Entry is one submodule template of a layer.
type Entry struct {
	Layer     feature.Layer
	Submodule string
	Files     []File
}

// Catalog reads templates from Root on FS.
type Catalog struct {
	FS   afero.Fs
	Root string
}

// NewCatalog returns a Catalog rooted at root.
func NewCatalog(fs afero.Fs, root string) *Catalog {
	return &Catalog{FS: fs, Root: root}
}

// LayerDir returns the template directory of a layer.
func (c *Catalog) LayerDir(layer feature.Layer) string {
	return filepath.Join(c.Root, string(layer))
}

// Submodules lists the submodule template names of a layer in lexical order.
// A layer without a template directory has no submodules; that is not an
// error and scaffolding simply produces nothing for the layer.
func (c *Catalog) Submodules(layer feature.Layer) ([]string, error) {
	dir := c.LayerDir(layer)
	ok, err := afero.DirExists(c.FS, dir)
	if err != nil {
		return nil, fmt.Errorf("checking template directory %s: %w", dir, err)
	}
	if !ok {
		return nil, nil
	}

	infos, err := afero.ReadDir(c.FS, dir)
	if err != nil {
		return nil, fmt.Errorf("listing templates in %s: %w", dir, err)
	}

	var names []string
	for _, info := range infos {
		if excludedNames[info.Name()] {
			continue
		}
		info, err := c.follow(filepath.Join(dir, info.Name()), info)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			names = append(names, info.Name())
		}
	}
	return names, nil
}

// maxDepth bounds directory nesting inside one template, which also stops
// symlink cycles.
const maxDepth = 32

// follow resolves a symbolic link to the entry it points at. Other entries
// are returned unchanged. The link's own name is kept.
func (c *Catalog) follow(path string, info os.FileInfo) (os.FileInfo, error) {
	if info.Mode()&os.ModeSymlink == 0 {
		return info, nil
	}
	target, err := c.FS.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("following link %s: %w", path, err)
	}
	return namedInfo{FileInfo: target, name: info.Name()}, nil
}

type namedInfo struct {
	os.FileInfo
	name string
}

func (i namedInfo) Name() string { return i.name }

// Load reads every file under one submodule template, recursively.
// Symbolic links to files and directories are followed.
func (c *Catalog) Load(layer feature.Layer, submodule string) (*Entry, error) {
	dir := filepath.Join(c.LayerDir(layer), submodule)
	entry := &Entry{Layer: layer, Submodule: submodule}

	if err := c.readTree(dir, "", 0, entry); err != nil {
		return nil, fmt.Errorf("reading template %s/%s: %w", layer, submodule, err)
	}
	return entry, nil
}

// readTree appends the regular files below root/rel to entry in lexical
// order. Special files are skipped; directories are recreated from the file
// paths.
func (c *Catalog) readTree(root, rel string, depth int, entry *Entry) error {
	if depth > maxDepth {
		return fmt.Errorf("%s: nested deeper than %d levels (symlink cycle?)", filepath.Join(root, rel), maxDepth)
	}

	infos, err := afero.ReadDir(c.FS, filepath.Join(root, rel))
	if err != nil {
		return err
	}
	for _, info := range infos {
		if excludedNames[info.Name()] {
			continue
		}
		childRel := filepath.Join(rel, info.Name())
		path := filepath.Join(root, childRel)

		info, err := c.follow(path, info)
		if err != nil {
			return err
		}
		switch {
		case info.IsDir():
			if err := c.readTree(root, childRel, depth+1, entry); err != nil {
				return err
			}
		case info.Mode().IsRegular():
			data, err := afero.ReadFile(c.FS, path)
			if err != nil {
				return err
			}
			entry.Files = append(entry.Files, File{
				RelPath: childRel,
				Content: data,
				Mode:    info.Mode().Perm(),
			})
		}
	}
	return nil
}

// Discover returns every submodule template of a layer with its files.
func (c *Catalog) Discover(layer feature.Layer) ([]*Entry, error) {
	names, err := c.Submodules(layer)
	if err != nil {
		return nil, err
	}

	entries := make([]*Entry, 0, len(names))
	for _, name := range names {
		entry, err := c.Load(layer, name)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
