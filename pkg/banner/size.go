package banner

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/matzehuels/bannerforge/pkg/errors"
	"github.com/matzehuels/bannerforge/pkg/fsutil"
)

// Size is the pixel size of an image.
type Size struct {
	Width  int
	Height int
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// imageExts lists the extensions with a registered header decoder.
var imageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
}

// IsImage reports whether name has an extension ProbeSize can decode.
func IsImage(name string) bool {
	return imageExts[strings.ToLower(filepath.Ext(name))]
}

// ProbeSize reads the image header at path and returns its dimensions.
// Only the header is decoded. A file that cannot be decoded yields a
// CONFIGURATION_ERROR; a file that cannot be opened yields a FILESYSTEM_ERROR.
func ProbeSize(path string) (Size, error) {
	f, err := os.Open(path)
	if err != nil {
		return Size{}, errors.Filesystem(err, "open %s", path)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return Size{}, errors.Wrap(errors.ErrCodeConfiguration, err, "probe %s", path)
	}
	return Size{Width: cfg.Width, Height: cfg.Height}, nil
}

// MatchPlaceholders returns the names of the images in dir whose size equals
// ref exactly, sorted by name. Files that are not decodable images are never
// placeholders.
func MatchPlaceholders(ref Size, dir string) ([]string, error) {
	names, err := fsutil.ListFiles(dir)
	if err != nil {
		return nil, err
	}

	var matches []string
	for _, name := range names {
		if !IsImage(name) {
			continue
		}
		size, err := ProbeSize(filepath.Join(dir, name))
		if errors.Is(err, errors.ErrCodeConfiguration) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if size == ref {
			matches = append(matches, name)
		}
	}
	return matches, nil
}
