// Package digest computes content hashes of generated banner trees.
//
// Two runs of the pipeline over unchanged inputs must produce byte-identical
// output roots; Tree reduces a whole directory to one SHA-256 string so that
// property can be checked from the CLI and from tests.
package digest

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/matzehuels/bannerforge/pkg/errors"
)

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// Tree hashes every regular file below root together with its slash-separated
// relative path. Directory entries are visited in lexical order, so the
// result only depends on names and contents.
func Tree(root string) (string, error) {
	h := sha256.New()
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		// Length-prefix the name so "ab"+"c" and "a"+"bc" differ.
		name := filepath.ToSlash(rel)
		fmt.Fprintf(h, "%d:%s\x00", len(name), name)
		_, err = io.Copy(h, f)
		return err
	})
	if err != nil {
		return "", errors.Filesystem(err, "digest %s", root)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Files returns the per-file hashes below root keyed by relative path.
func Files(root string) (map[string]string, error) {
	out := make(map[string]string)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.Type().IsRegular() {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		out[filepath.ToSlash(rel)] = Hash(data)
		return nil
	})
	if err != nil {
		return nil, errors.Filesystem(err, "digest %s", root)
	}
	return out, nil
}
