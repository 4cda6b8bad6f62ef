package testutil

import (
	"io/fs"
	"path"
	"testing/fstest"
	"time"
)

// TestFS builds an in-memory filesystem for importer tests.
type TestFS struct {
	fsys    fstest.MapFS
	modTime time.Time
}

// NewTestFS creates an empty filesystem whose files default to FixedClock's time.
func NewTestFS() *TestFS {
	return &TestFS{
		fsys:    fstest.MapFS{},
		modTime: FixedClock().Now(),
	}
}

// AddFile adds a regular file. Parent directories are implied.
func (f *TestFS) AddFile(name string, content string) *TestFS {
	return f.AddFileAt(name, content, f.modTime)
}

// AddFileAt adds a regular file with the given modification time.
func (f *TestFS) AddFileAt(name string, content string, modTime time.Time) *TestFS {
	f.fsys[name] = &fstest.MapFile{Data: []byte(content), Mode: 0644, ModTime: modTime}
	return f
}

// AddDirectory adds an explicit, possibly empty, directory.
func (f *TestFS) AddDirectory(name string) *TestFS {
	f.fsys[path.Clean(name)] = &fstest.MapFile{Mode: 0755 | fs.ModeDir, ModTime: f.modTime}
	return f
}

// FS returns the filesystem.
func (f *TestFS) FS() fstest.MapFS {
	return f.fsys
}
