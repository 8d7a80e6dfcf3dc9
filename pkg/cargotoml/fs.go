package cargotoml

import (
	"github.com/spf13/afero"
)

//go:generate mockgen -destination=mocks/mock_fs.go -package=mocks github.com/crateinfo/crateinfo-go/pkg/cargotoml Filesystem

// Filesystem is the minimal directory-listing capability the completion
// engine depends on. Implementations do not have to read straight from
// disk: anything that can enumerate a directory works, e.g. a tarball,
// a git tree, or an in-memory stub.
type Filesystem interface {
	// FileNamesIn returns the entry names (files and subdirectories, names
	// only) of the directory at dir, a path relative to the manifest root.
	// A missing directory is reported with an error satisfying
	// errors.Is(err, fs.ErrNotExist); any other failure is an opaque I/O
	// error. Entry order is unspecified unless the implementation
	// guarantees one.
	FileNamesIn(dir string) ([]string, error)
}

// DirFS adapts an afero filesystem, rooted at the package directory, to the
// Filesystem interface. Entries are returned in sorted order.
type DirFS struct {
	fsys afero.Fs
}

// NewDirFS returns a DirFS over the real disk directory root.
func NewDirFS(root string) *DirFS {
	return &DirFS{fsys: afero.NewBasePathFs(afero.NewOsFs(), root)}
}

// NewAferoFS returns a DirFS over an arbitrary afero filesystem whose root
// is the package directory. Handy with afero.NewMemMapFs in tests.
func NewAferoFS(fsys afero.Fs) *DirFS {
	return &DirFS{fsys: fsys}
}

func (d *DirFS) FileNamesIn(dir string) ([]string, error) {
	infos, err := afero.ReadDir(d.fsys, dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(infos))
	for _, info := range infos {
		names = append(names, info.Name())
	}
	return names, nil
}
