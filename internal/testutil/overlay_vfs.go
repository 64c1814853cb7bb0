// Package testutil provides test utilities for fluentgen, including a virtual
// filesystem overlay for building tsgo programs from inline TypeScript source.
package testutil

import (
	"io/fs"
	"strings"
	"time"

	"github.com/microsoft/typescript-go/shim/bundled"
	"github.com/microsoft/typescript-go/shim/tspath"
	"github.com/microsoft/typescript-go/shim/vfs"
	"github.com/microsoft/typescript-go/shim/vfs/osvfs"
)

// Overlay wraps a base filesystem with in-memory virtual files. Virtual files
// take precedence over the underlying filesystem and are read-only.
type Overlay struct {
	base  vfs.FS
	files map[string]string
}

var _ vfs.FS = (*Overlay)(nil)

// NewOverlay creates an Overlay serving the given virtual files on top of a
// base FS.
func NewOverlay(base vfs.FS, files map[string]string) vfs.FS {
	return &Overlay{base: base, files: files}
}

// NewBundledOverlay creates an Overlay on top of the bundled OS filesystem,
// which includes the TypeScript lib files the checker needs.
func NewBundledOverlay(files map[string]string) vfs.FS {
	return NewOverlay(bundled.WrapFS(osvfs.FS()), files)
}

func (o *Overlay) UseCaseSensitiveFileNames() bool {
	return o.base.UseCaseSensitiveFileNames()
}

func (o *Overlay) FileExists(path string) bool {
	if _, ok := o.files[path]; ok {
		return true
	}
	return o.base.FileExists(path)
}

func (o *Overlay) ReadFile(path string) (contents string, ok bool) {
	if src, ok := o.files[path]; ok {
		return src, true
	}
	return o.base.ReadFile(path)
}

func (o *Overlay) DirectoryExists(path string) bool {
	dir := normalizedDir(path)
	for p := range o.files {
		if strings.HasPrefix(p, dir) {
			return true
		}
	}
	return o.base.DirectoryExists(path)
}

func (o *Overlay) GetAccessibleEntries(path string) (result vfs.Entries) {
	result = o.base.GetAccessibleEntries(path)

	dir := normalizedDir(path)
	for p := range o.files {
		rest, found := strings.CutPrefix(p, dir)
		if !found {
			continue
		}
		if child, _, ok := strings.Cut(rest, "/"); ok {
			result.Directories = append(result.Directories, child)
		} else {
			result.Files = append(result.Files, rest)
		}
	}
	return result
}

func normalizedDir(path string) string {
	dir := tspath.NormalizePath(path)
	if !strings.HasSuffix(dir, "/") {
		dir += "/"
	}
	return dir
}

type overlayFileInfo struct {
	mode fs.FileMode
	name string
	size int64
}

var (
	_ fs.FileInfo = (*overlayFileInfo)(nil)
	_ fs.DirEntry = (*overlayFileInfo)(nil)
)

func (fi *overlayFileInfo) IsDir() bool                { return fi.mode.IsDir() }
func (fi *overlayFileInfo) ModTime() time.Time         { return time.Time{} }
func (fi *overlayFileInfo) Mode() fs.FileMode          { return fi.mode }
func (fi *overlayFileInfo) Name() string               { return fi.name }
func (fi *overlayFileInfo) Size() int64                { return fi.size }
func (fi *overlayFileInfo) Sys() any                   { return nil }
func (fi *overlayFileInfo) Info() (fs.FileInfo, error) { return fi, nil }
func (fi *overlayFileInfo) Type() fs.FileMode          { return fi.mode.Type() }

func (o *Overlay) Stat(path string) vfs.FileInfo {
	if src, ok := o.files[path]; ok {
		return &overlayFileInfo{name: path, size: int64(len(src))}
	}
	return o.base.Stat(path)
}

func (o *Overlay) WalkDir(root string, walkFn vfs.WalkDirFunc) error {
	return o.base.WalkDir(root, walkFn)
}

func (o *Overlay) Realpath(path string) string {
	if _, ok := o.files[path]; ok {
		return path
	}
	return o.base.Realpath(path)
}

func (o *Overlay) WriteFile(path string, data string, writeByteOrderMark bool) error {
	if _, ok := o.files[path]; ok {
		panic("cannot write to overlay virtual file")
	}
	return o.base.WriteFile(path, data, writeByteOrderMark)
}

func (o *Overlay) Remove(path string) error {
	if _, ok := o.files[path]; ok {
		panic("cannot remove overlay virtual file")
	}
	return o.base.Remove(path)
}

func (o *Overlay) Chtimes(path string, aTime time.Time, mTime time.Time) error {
	if _, ok := o.files[path]; ok {
		panic("cannot change times on overlay virtual file")
	}
	return o.base.Chtimes(path, aTime, mTime)
}
