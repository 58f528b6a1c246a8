// Package source provides the filesystem view used by the crawler.
package source

import (
	"io"
	"io/fs"
	"os"
)

// FileSystem is the read-only view of the disk the crawler needs.
// Stat must return an error satisfying errors.Is(err, fs.ErrNotExist) for missing paths.
type FileSystem interface {
	Stat(path string) (fs.FileInfo, error)
	ReadFile(path string) ([]byte, error)
}

// OS reads from the local filesystem.
type OS struct{}

func (OS) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// ReadFile streams the whole file into memory.
func (OS) ReadFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return io.ReadAll(f)
}
