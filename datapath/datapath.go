// Package datapath locates the project data directory and builds absolute
// paths beneath it.
//
// The data directory can be given explicitly with New, which is what tests
// and the CLI's --data-dir flag do, or found with Discover by walking up
// from a starting directory until a project root is recognized.
package datapath

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultDataDirName is the data directory expected under the project root.
const DefaultDataDirName = "dir_g21_small_workload_with_gt"

// Marker files that identify the project root.
const (
	ReadmeMarker = "README.md"
	GitMarker    = ".git"
)

var (
	ErrNotFound            = errors.New("path not found")
	ErrProjectRootNotFound = errors.New("project root not found")
)

// FindProjectRoot walks up from start and returns the first directory that
// contains README.md together with either .git or a dataDirName entry.
func FindProjectRoot(start, dataDirName string) (string, error) {
	if dataDirName == "" {
		dataDirName = DefaultDataDirName
	}
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}
	for {
		if exists(filepath.Join(dir, ReadmeMarker)) &&
			(exists(filepath.Join(dir, GitMarker)) || exists(filepath.Join(dir, dataDirName))) {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w: searched upward from %s", ErrProjectRootNotFound, start)
		}
		dir = parent
	}
}

// Resolver builds paths under a fixed base directory.
type Resolver struct {
	base string
}

// New returns a Resolver rooted at base, which must be an existing
// directory.
func New(base string) (*Resolver, error) {
	abs, err := filepath.Abs(base)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("%w: directory %s: %w", ErrNotFound, abs, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrNotFound, abs)
	}
	return &Resolver{base: abs}, nil
}

// Discover finds the project root above start and returns a Resolver for
// its dataDirName directory.
func Discover(start, dataDirName string) (*Resolver, error) {
	if dataDirName == "" {
		dataDirName = DefaultDataDirName
	}
	root, err := FindProjectRoot(start, dataDirName)
	if err != nil {
		return nil, err
	}
	r, err := New(filepath.Join(root, dataDirName))
	if err != nil {
		return nil, fmt.Errorf("%w (project root: %s)", err, root)
	}
	return r, nil
}

// Base returns the absolute data directory.
func (r *Resolver) Base() string {
	return r.base
}

// Subdir returns the absolute path of a directory under the base.
func (r *Resolver) Subdir(name string) (string, error) {
	p := r.join(name)
	info, err := os.Stat(p)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("%w: subdirectory %s (base directory: %s)", ErrNotFound, p, r.base)
	}
	return p, nil
}

// File returns the absolute path of a file under the base.
func (r *Resolver) File(name string) (string, error) {
	p := r.join(name)
	info, err := os.Stat(p)
	if err != nil || info.IsDir() {
		return "", fmt.Errorf("%w: file %s (base directory: %s)", ErrNotFound, p, r.base)
	}
	return p, nil
}

// Resolve returns the absolute path of any existing entry under the base.
func (r *Resolver) Resolve(name string) (string, error) {
	p := r.join(name)
	if !exists(p) {
		return "", fmt.Errorf("%w: %s (base directory: %s)", ErrNotFound, p, r.base)
	}
	return p, nil
}

func (r *Resolver) join(name string) string {
	if filepath.IsAbs(name) {
		return filepath.Clean(name)
	}
	return filepath.Join(r.base, name)
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
