package banner

import (
	"path/filepath"

	"github.com/matzehuels/bannerforge/pkg/errors"
	"github.com/matzehuels/bannerforge/pkg/fsutil"
)

// Category is a named group of interchangeable source images.
type Category struct {
	Name string

	// Images are full paths, sorted by file name.
	Images []string
}

// ScanCategories lists the image categories under root: one per
// subdirectory, each holding the decodable images directly inside it.
func ScanCategories(root string) ([]Category, error) {
	if !fsutil.Exists(root) {
		return nil, errors.Configuration("images folder %s not found", root)
	}
	dirs, err := fsutil.ListDirs(root)
	if err != nil {
		return nil, err
	}

	cats := make([]Category, 0, len(dirs))
	for _, d := range dirs {
		dir := filepath.Join(root, d)
		names, err := fsutil.ListFiles(dir)
		if err != nil {
			return nil, err
		}
		cat := Category{Name: d}
		for _, n := range names {
			if IsImage(n) {
				cat.Images = append(cat.Images, filepath.Join(dir, n))
			}
		}
		cats = append(cats, cat)
	}
	return cats, nil
}

// TotalImages returns the number of images across cats.
func TotalImages(cats []Category) int {
	n := 0
	for _, c := range cats {
		n += len(c.Images)
	}
	return n
}

// TemplateSource is a pristine template bundle found on disk.
type TemplateSource struct {
	Name string
	Dir  string
}

// ListTemplates finds the template bundles under root. Each subdirectory
// containing an html document is one bundle. A root that holds an html
// document itself is treated as a single bundle named after the root.
func ListTemplates(root string) ([]TemplateSource, error) {
	if !fsutil.Exists(root) {
		return nil, errors.Configuration("template folder %s not found", root)
	}
	if _, err := FindHTML(root); err == nil {
		return []TemplateSource{{Name: filepath.Base(root), Dir: root}}, nil
	} else if !errors.Is(err, errors.ErrCodeConfiguration) {
		return nil, err
	}

	dirs, err := fsutil.ListDirs(root)
	if err != nil {
		return nil, err
	}
	var out []TemplateSource
	for _, d := range dirs {
		dir := filepath.Join(root, d)
		if _, err := FindHTML(dir); err != nil {
			if errors.Is(err, errors.ErrCodeConfiguration) {
				continue
			}
			return nil, err
		}
		out = append(out, TemplateSource{Name: d, Dir: dir})
	}
	if len(out) == 0 {
		return nil, errors.Configuration("no html document found in %s or its subfolders", root)
	}
	return out, nil
}
