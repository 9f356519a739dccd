package edgefs

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"bazil.org/fuse"
	"bazil.org/fuse/fs"
	"github.com/dendrascience/edge-aggregate/aggregate"
	"github.com/dendrascience/edge-aggregate/util"
)

// ManifestName is the file under which the manifest is exposed.
const ManifestName = "manifest.json"

const (
	rootInode     = 1
	edgesInode    = 2
	manifestInode = 3
)

var (
	_ fs.FS                 = (*FS)(nil)
	_ fs.Node               = (*Dir)(nil)
	_ fs.NodeStringLookuper = (*Dir)(nil)
	_ fs.HandleReadDirAller = (*Dir)(nil)
	_ fs.Node               = (*File)(nil)
	_ fs.HandleReadAller    = (*File)(nil)
)

// FS implements a read-only view of one aggregate
type FS struct {
	Manifest *aggregate.Manifest
	raw      []byte // manifest file as found on disk

	mu    sync.Mutex // protects edges
	edges []byte     // decompressed aggregate, loaded on first read
}

// Open reads the manifest at manifestPath. Dry-run manifests are rejected
// since they describe no aggregate.
func Open(manifestPath string) (*FS, error) {
	raw, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, err
	}
	m, err := aggregate.ReadManifest(manifestPath)
	if err != nil {
		return nil, err
	}
	if m.DryRun {
		return nil, fmt.Errorf("%s: %w", manifestPath, aggregate.ErrDryRunManifest)
	}
	return &FS{Manifest: m, raw: raw}, nil
}

// EdgesName is the name the decompressed aggregate is exposed under: the
// output's base name without its .gz suffix.
func (f *FS) EdgesName() string {
	name := strings.TrimSuffix(filepath.Base(f.Manifest.Output), ".gz")
	if name == "" || name == "." || name == ManifestName {
		return "edges"
	}
	return name
}

// Root returns the root directory node
func (f *FS) Root() (fs.Node, error) {
	return &Dir{fs: f}, nil
}

func (f *FS) loadEdges() ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.edges != nil {
		return f.edges, nil
	}
	r, err := util.OpenInput(f.Manifest.Output)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	f.edges = data
	return data, nil
}

// Dir is the single directory of the view.
type Dir struct {
	fs *FS
}

// Attr returns directory attributes
func (d *Dir) Attr(ctx context.Context, a *fuse.Attr) error {
	a.Inode = rootInode
	a.Mode = os.ModeDir | 0o555
	setTimes(a, d.fs.Manifest.CreatedAt)
	return nil
}

// Lookup resolves the two names the view contains.
func (d *Dir) Lookup(ctx context.Context, name string) (fs.Node, error) {
	switch name {
	case d.fs.EdgesName():
		return &File{fs: d.fs, inode: edgesInode}, nil
	case ManifestName:
		return &File{fs: d.fs, inode: manifestInode}, nil
	}
	return nil, syscall.ENOENT
}

// ReadDirAll lists the directory
func (d *Dir) ReadDirAll(ctx context.Context) ([]fuse.Dirent, error) {
	return []fuse.Dirent{
		{Inode: edgesInode, Name: d.fs.EdgesName(), Type: fuse.DT_File},
		{Inode: manifestInode, Name: ManifestName, Type: fuse.DT_File},
	}, nil
}

// File is either the decompressed aggregate or the manifest.
type File struct {
	fs    *FS
	inode uint64
}

// Attr returns file attributes. The aggregate's size is taken from the
// manifest so that listing the directory does not decompress it.
func (f *File) Attr(ctx context.Context, a *fuse.Attr) error {
	a.Inode = f.inode
	a.Mode = 0o444
	if f.inode == edgesInode {
		a.Size = uint64(f.fs.Manifest.TotalUncompressedBytes)
	} else {
		a.Size = uint64(len(f.fs.raw))
	}
	setTimes(a, f.fs.Manifest.CreatedAt)
	return nil
}

// ReadAll reads the entire file content
func (f *File) ReadAll(ctx context.Context) ([]byte, error) {
	if f.inode == manifestInode {
		return f.fs.raw, nil
	}
	data, err := f.fs.loadEdges()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.fs.Manifest.Output, err)
	}
	return data, nil
}

func setTimes(a *fuse.Attr, t time.Time) {
	a.Mtime = t
	a.Ctime = t
	a.Atime = t
}
