package fs

import (
	iofs "io/fs"
	"os"
	"path"
	"sort"
	"strings"
	"time"
)

// MemFS is an in-memory FS for tests. Paths are stored as given;
// callers should use consistent absolute or relative paths.
type MemFS struct {
	Files map[string][]byte
	Dirs  map[string]bool

	// WriteErr, when set, is returned by every WriteFile call.
	WriteErr error
}

// NewMemFS returns an empty MemFS.
func NewMemFS() *MemFS {
	return &MemFS{
		Files: map[string][]byte{},
		Dirs:  map[string]bool{},
	}
}

func (m *MemFS) ReadFile(p string) ([]byte, error) {
	data, ok := m.Files[p]
	if !ok {
		return nil, &os.PathError{Op: "open", Path: p, Err: iofs.ErrNotExist}
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (m *MemFS) WriteFile(p string, data []byte, perm os.FileMode) error {
	if m.WriteErr != nil {
		return m.WriteErr
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	m.Files[p] = cp
	return nil
}

func (m *MemFS) MkdirAll(p string, perm os.FileMode) error {
	for p != "." && p != "/" && p != "" {
		m.Dirs[p] = true
		p = path.Dir(p)
	}
	return nil
}

func (m *MemFS) ReadDir(p string) ([]iofs.DirEntry, error) {
	prefix := strings.TrimSuffix(p, "/") + "/"

	seen := map[string]bool{}
	var entries []iofs.DirEntry
	for f := range m.Files {
		if !strings.HasPrefix(f, prefix) {
			continue
		}
		rest := strings.TrimPrefix(f, prefix)
		name, _, nested := strings.Cut(rest, "/")
		if seen[name] {
			continue
		}
		seen[name] = true
		entries = append(entries, memDirEntry{name: name, dir: nested})
	}
	for d := range m.Dirs {
		if !strings.HasPrefix(d, prefix) {
			continue
		}
		name, _, _ := strings.Cut(strings.TrimPrefix(d, prefix), "/")
		if !seen[name] {
			seen[name] = true
			entries = append(entries, memDirEntry{name: name, dir: true})
		}
	}

	if len(entries) == 0 && !m.Dirs[strings.TrimSuffix(p, "/")] {
		return nil, &os.PathError{Op: "open", Path: p, Err: iofs.ErrNotExist}
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	return entries, nil
}

func (m *MemFS) Stat(p string) (os.FileInfo, error) {
	if data, ok := m.Files[p]; ok {
		return memFileInfo{name: path.Base(p), size: int64(len(data))}, nil
	}
	if m.Dirs[p] {
		return memFileInfo{name: path.Base(p), dir: true}, nil
	}
	return nil, &os.PathError{Op: "stat", Path: p, Err: iofs.ErrNotExist}
}

type memDirEntry struct {
	name string
	dir  bool
}

func (e memDirEntry) Name() string { return e.name }
func (e memDirEntry) IsDir() bool  { return e.dir }
func (e memDirEntry) Type() iofs.FileMode {
	if e.dir {
		return iofs.ModeDir
	}
	return 0
}
func (e memDirEntry) Info() (iofs.FileInfo, error) {
	return memFileInfo{name: e.name, dir: e.dir}, nil
}

type memFileInfo struct {
	name string
	size int64
	dir  bool
}

func (i memFileInfo) Name() string { return i.name }
func (i memFileInfo) Size() int64  { return i.size }
func (i memFileInfo) Mode() iofs.FileMode {
	if i.dir {
		return iofs.ModeDir | 0o755
	}
	return 0o644
}
func (i memFileInfo) ModTime() time.Time { return time.Time{} }
func (i memFileInfo) IsDir() bool        { return i.dir }
func (i memFileInfo) Sys() any           { return nil }
