// Package fs provides the filesystem abstraction for conf2wiki.
//
// Commands receive an FS so tests can substitute an in-memory
// implementation without touching the real disk.
package fs

import (
	"io/fs"
	"os"
)

// FS is the filesystem capability used by commands.
type FS interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte, perm os.FileMode) error
	MkdirAll(path string, perm os.FileMode) error
	ReadDir(path string) ([]fs.DirEntry, error)
	Stat(path string) (os.FileInfo, error)
}

// RealFS implements FS against the OS filesystem.
type RealFS struct{}

// NewRealFS returns an FS backed by the OS.
func NewRealFS() FS {
	return RealFS{}
}

func (RealFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (RealFS) WriteFile(path string, data []byte, perm os.FileMode) error {
	return os.WriteFile(path, data, perm)
}

func (RealFS) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

func (RealFS) ReadDir(path string) ([]fs.DirEntry, error) {
	return os.ReadDir(path)
}

func (RealFS) Stat(path string) (os.FileInfo, error) {
	return os.Stat(path)
}
