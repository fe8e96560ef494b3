package banner

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/matzehuels/bannerforge/pkg/errors"
	"github.com/matzehuels/bannerforge/pkg/fsutil"
)

// Template describes a template banner bundle on disk.
type Template struct {
	// Name identifies the bundle (its folder name under sample-banner).
	Name string

	// Dir is the bundle root. For a materialized template this is the
	// clicktag-injected copy.
	Dir string

	// HTMLFile is the name of the banner document inside Dir.
	HTMLFile string

	// Width and Height are the canvas attributes, verbatim.
	Width  string
	Height string

	// PlaceholderDir is the folder inside Dir holding placeholder images.
	PlaceholderDir string
}

// HTMLPath returns the full path of the banner document.
func (t *Template) HTMLPath() string {
	return filepath.Join(t.Dir, t.HTMLFile)
}

// PlaceholderPath returns the full path of the placeholder folder.
func (t *Template) PlaceholderPath() string {
	return filepath.Join(t.Dir, t.PlaceholderDir)
}

// FindHTML returns the first file name in dir (sorted) containing ".html".
func FindHTML(dir string) (string, error) {
	names, err := fsutil.ListFiles(dir)
	if err != nil {
		return "", err
	}
	for _, name := range names {
		if strings.Contains(name, ".html") {
			return name, nil
		}
	}
	return "", errors.Configuration("no html document found in %s", dir)
}

// Inspect reads a template bundle without modifying it.
func Inspect(name, dir, placeholderDir string) (*Template, error) {
	htmlFile, err := FindHTML(dir)
	if err != nil {
		return nil, err
	}
	markup, err := fsutil.ReadFile(filepath.Join(dir, htmlFile))
	if err != nil {
		return nil, err
	}
	doc, err := parseMarkup(markup)
	if err != nil {
		return nil, err
	}
	w, h, err := SurfaceSize(doc)
	if err != nil {
		return nil, fmt.Errorf("template %s: %w", name, err)
	}
	return &Template{
		Name:           name,
		Dir:            dir,
		HTMLFile:       htmlFile,
		Width:          w,
		Height:         h,
		PlaceholderDir: placeholderDir,
	}, nil
}

// Materialize copies the pristine template src into dst (emptied first),
// injects the clicktag markup into the copy's html document and rewrites it
// with indentation. The returned Template points at dst and is the master
// every banner copy is cloned from; src is never modified.
func Materialize(src *Template, dst string) (*Template, error) {
	if err := fsutil.EmptyDir(dst); err != nil {
		return nil, err
	}
	if err := fsutil.CopyDir(src.Dir, dst); err != nil {
		return nil, err
	}

	master := *src
	master.Dir = dst

	markup, err := fsutil.ReadFile(master.HTMLPath())
	if err != nil {
		return nil, err
	}
	doc, err := parseMarkup(markup)
	if err != nil {
		return nil, err
	}
	if err := injectClicktag(doc, master.Width, master.Height); err != nil {
		return nil, fmt.Errorf("template %s: %w", src.Name, err)
	}
	out, err := renderMarkup(doc)
	if err != nil {
		return nil, err
	}
	if err := fsutil.WriteFile(master.HTMLPath(), out); err != nil {
		return nil, err
	}
	return &master, nil
}
