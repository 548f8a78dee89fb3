// Package vault provides the hierarchical note storage notes are written
// to: an interface the pipeline consumes, a directory-backed
// implementation, and the idempotent folder provisioner.
package vault

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// File is a markdown file known to the vault. Basename is the file name
// without its extension, the way it is shown to users.
type File struct {
	Path     string // vault-relative, slash-separated
	Basename string
}

// Vault is the storage backend notes are written to. Paths are
// vault-relative and slash-separated.
type Vault interface {
	Exists(path string) (bool, error)

	// CreateDirectory creates a single directory whose parent already
	// exists. Callers provision deep paths through Ensure.
	CreateDirectory(path string) error

	WriteFile(path string, content []byte) error

	// ListMarkdownFiles returns the vault's markdown files, most recently
	// modified first.
	ListMarkdownFiles() ([]File, error)
}

// Dir is a Vault backed by a directory on the local filesystem.
type Dir struct {
	root string
}

// OpenDir opens (creating if needed) a directory-backed vault.
func OpenDir(root string) (*Dir, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("open vault %s: %w", root, err)
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("open vault %s: %w", root, err)
	}
	return &Dir{root: abs}, nil
}

// Root returns the vault's absolute root directory.
func (d *Dir) Root() string { return d.root }

func (d *Dir) resolve(path string) (string, error) {
	p := filepath.Join(d.root, filepath.FromSlash(path))
	if p != d.root && !strings.HasPrefix(p, d.root+string(filepath.Separator)) {
		return "", fmt.Errorf("path escapes vault: %s", path)
	}
	return p, nil
}

func (d *Dir) Exists(path string) (bool, error) {
	p, err := d.resolve(path)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(p); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (d *Dir) CreateDirectory(path string) error {
	p, err := d.resolve(path)
	if err != nil {
		return err
	}
	if err := os.Mkdir(p, 0o755); err != nil {
		// A concurrent provisioner may have won the race; that is fine.
		if errors.Is(err, fs.ErrExist) {
			return nil
		}
		return err
	}
	return nil
}

func (d *Dir) WriteFile(path string, content []byte) error {
	p, err := d.resolve(path)
	if err != nil {
		return err
	}
	return os.WriteFile(p, content, 0o644)
}

func (d *Dir) ListMarkdownFiles() ([]File, error) {
	type stamped struct {
		file File
		mod  int64
	}
	var found []stamped

	err := filepath.WalkDir(d.root, func(p string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			return nil
		}
		info, err := entry.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(d.root, p)
		if err != nil {
			return err
		}
		found = append(found, stamped{
			file: File{
				Path:     filepath.ToSlash(rel),
				Basename: strings.TrimSuffix(entry.Name(), ".md"),
			},
			mod: info.ModTime().UnixNano(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list vault files: %w", err)
	}

	sort.SliceStable(found, func(i, j int) bool { return found[i].mod > found[j].mod })

	files := make([]File, len(found))
	for i, s := range found {
		files[i] = s.file
	}
	return files, nil
}
