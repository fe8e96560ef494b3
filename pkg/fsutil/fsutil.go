// Package fsutil holds the filesystem primitives the banner pipeline is
// built on: recursive copy, recursive empty, existence checks and sorted
// directory listings.
//
// Listings are always sorted lexicographically so that every stage of the
// pipeline sees the same order regardless of the underlying filesystem.
// All failures are returned as FILESYSTEM_ERROR values from pkg/errors.
package fsutil

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	cp "github.com/otiai10/copy"

	"github.com/matzehuels/bannerforge/pkg/errors"
)

// dirPerm is used for every directory the pipeline creates.
const dirPerm = 0755

// filePerm is used for every file the pipeline writes.
const filePerm = 0644

// Exists reports whether path exists. Permission errors count as existing so
// that the following operation surfaces the real failure.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil || !os.IsNotExist(err)
}

// EmptyDir removes everything inside dir, creating dir if it does not exist.
func EmptyDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return errors.Filesystem(os.MkdirAll(dir, dirPerm), "create %s", dir)
	}
	if err != nil {
		return errors.Filesystem(err, "read %s", dir)
	}
	for _, e := range entries {
		p := filepath.Join(dir, e.Name())
		if err := os.RemoveAll(p); err != nil {
			return errors.Filesystem(err, "remove %s", p)
		}
	}
	return nil
}

// CopyDir recursively copies src into dst. dst is created if needed;
// existing files in dst are overwritten.
func CopyDir(src, dst string) error {
	return errors.Filesystem(cp.Copy(src, dst), "copy %s to %s", src, dst)
}

// CopyFile overwrites dst with the bytes of src.
func CopyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return errors.Filesystem(err, "read %s", src)
	}
	return WriteFile(dst, data)
}

// WriteFile writes data to path, replacing any existing content.
func WriteFile(path string, data []byte) error {
	return errors.Filesystem(os.WriteFile(path, data, filePerm), "write %s", path)
}

// ReadFile returns the contents of path.
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Filesystem(err, "read %s", path)
	}
	return data, nil
}

// MkdirAll creates dir and any missing parents.
func MkdirAll(dir string) error {
	return errors.Filesystem(os.MkdirAll(dir, dirPerm), "create %s", dir)
}

// ListFiles returns the names of the regular, non-hidden files in dir,
// sorted lexicographically.
func ListFiles(dir string) ([]string, error) {
	return list(dir, false)
}

// ListDirs returns the names of the non-hidden subdirectories of dir,
// sorted lexicographically.
func ListDirs(dir string) ([]string, error) {
	return list(dir, true)
}

func list(dir string, dirs bool) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Filesystem(err, "list %s", dir)
	}
	var names []string
	for _, e := range entries {
		if IsHidden(e.Name()) || e.IsDir() != dirs {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// IsHidden reports whether name is a dotfile or an OS metadata entry such
// as __MACOSX that archive tools leave next to creative assets.
func IsHidden(name string) bool {
	return strings.HasPrefix(name, ".") || name == "__MACOSX" || name == "Thumbs.db"
}
