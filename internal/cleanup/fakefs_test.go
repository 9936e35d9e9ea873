package cleanup

import (
	"io/fs"
	"path"
	"sort"
	"strings"
	"testing/fstest"
)

const fakeFileSize = 64

// fakeFS serves a single directory "/out" from an in-memory map and lets
// tests inject Stat and Remove failures per file name.
type fakeFS struct {
	files fstest.MapFS

	statErrs    map[string]error
	removeErrs  map[string][]error
	removeCalls map[string]int
	readDirErr  error
	afterRemove func(name string)
	calls       int
}

func newFakeFS(names ...string) *fakeFS {
	files := fstest.MapFS{}
	for _, name := range names {
		files["out/"+name] = &fstest.MapFile{Data: make([]byte, fakeFileSize), Mode: 0644}
	}
	return &fakeFS{
		files:       files,
		statErrs:    make(map[string]error),
		removeErrs:  make(map[string][]error),
		removeCalls: make(map[string]int),
	}
}

func (f *fakeFS) key(name string) string {
	return strings.TrimPrefix(path.Clean(name), "/")
}

func (f *fakeFS) Stat(name string) (fs.FileInfo, error) {
	f.calls++
	if err, ok := f.statErrs[path.Base(name)]; ok {
		return nil, &fs.PathError{Op: "stat", Path: name, Err: err}
	}
	return f.files.Stat(f.key(name))
}

func (f *fakeFS) ReadDir(name string) ([]fs.DirEntry, error) {
	f.calls++
	if f.readDirErr != nil {
		return nil, &fs.PathError{Op: "readdirent", Path: name, Err: f.readDirErr}
	}
	return f.files.ReadDir(f.key(name))
}

func (f *fakeFS) Remove(name string) error {
	f.calls++
	base := path.Base(name)
	f.removeCalls[base]++

	if errs := f.removeErrs[base]; len(errs) > 0 {
		f.removeErrs[base] = errs[1:]
		return &fs.PathError{Op: "remove", Path: name, Err: errs[0]}
	}

	key := f.key(name)
	if _, ok := f.files[key]; !ok {
		return &fs.PathError{Op: "remove", Path: name, Err: fs.ErrNotExist}
	}
	delete(f.files, key)

	if f.afterRemove != nil {
		f.afterRemove(name)
	}
	return nil
}

// remaining returns the file names still present, sorted.
func (f *fakeFS) remaining() []string {
	var names []string
	for key := range f.files {
		names = append(names, path.Base(key))
	}
	sort.Strings(names)
	return names
}
