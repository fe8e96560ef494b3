// Package config loads the optional bannerforge.toml project file.
//
// A project works without any config: the defaults below describe the fixed
// folder convention (sample-banner, images, sample-banner-clicktag,
// processed-banners). The file only exists to switch on mixed mode or to
// rename folders for projects that predate the convention.
//
//	# bannerforge.toml
//	mixed = true
//	output_dir = "dist"
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/bannerforge/pkg/errors"
)

// FileName is the config file looked up in the project root.
const FileName = "bannerforge.toml"

// Default folder names, relative to the project root.
const (
	DefaultTemplateDir    = "sample-banner"
	DefaultImagesDir      = "images"
	DefaultClicktagDir    = "sample-banner-clicktag"
	DefaultOutputDir      = "processed-banners"
	DefaultPlaceholderDir = "images"
)

// Config is the decoded project configuration.
type Config struct {
	// Mixed enables the cross-category combo output under <output>/mixed.
	Mixed bool `toml:"mixed"`

	TemplateDir string `toml:"template_dir"`
	ImagesDir   string `toml:"images_dir"`
	ClicktagDir string `toml:"clicktag_dir"`
	OutputDir   string `toml:"output_dir"`

	// PlaceholderDir is the folder inside each template bundle holding the
	// candidate placeholder images.
	PlaceholderDir string `toml:"placeholder_dir"`
}

// Default returns the folder convention with mixed mode off.
func Default() Config {
	return Config{
		TemplateDir:    DefaultTemplateDir,
		ImagesDir:      DefaultImagesDir,
		ClicktagDir:    DefaultClicktagDir,
		OutputDir:      DefaultOutputDir,
		PlaceholderDir: DefaultPlaceholderDir,
	}
}

// Load reads path on top of Default. A missing file is not an error.
// Unknown keys are rejected so typos do not silently fall back to defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.Filesystem(err, "read config %s", path)
	}

	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	cfg.fillDefaults()
	return cfg, cfg.Validate()
}

// LoadFile is Load for a path the user named explicitly, so a missing file
// is an error.
func LoadFile(path string) (Config, error) {
	if _, err := os.Stat(path); err != nil {
		return Default(), errors.Filesystem(err, "config %s", path)
	}
	return Load(path)
}

// LoadProject loads FileName from the project root.
func LoadProject(root string) (Config, error) {
	return Load(filepath.Join(root, FileName))
}

// fillDefaults restores defaults for keys set to the empty string.
func (c *Config) fillDefaults() {
	d := Default()
	for _, f := range []struct {
		v   *string
		def string
	}{
		{&c.TemplateDir, d.TemplateDir},
		{&c.ImagesDir, d.ImagesDir},
		{&c.ClicktagDir, d.ClicktagDir},
		{&c.OutputDir, d.OutputDir},
		{&c.PlaceholderDir, d.PlaceholderDir},
	} {
		if *f.v == "" {
			*f.v = f.def
		}
	}
}

// Validate checks that the generated folders cannot clobber the inputs.
// Relative folders are checked as if the project were the working
// directory; Paths.Validate repeats the check once the root is known.
func (c Config) Validate() error {
	return c.Resolve(".").Validate(".")
}

// Paths resolves the configured folders against a project root.
type Paths struct {
	Templates   string
	Images      string
	Clicktag    string
	Output      string
	Placeholder string // relative to each template bundle
}

// Resolve returns the absolute-or-root-relative folder paths for root.
func (c Config) Resolve(root string) Paths {
	join := func(p string) string {
		if filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(root, p)
	}
	return Paths{
		Templates:   join(c.TemplateDir),
		Images:      join(c.ImagesDir),
		Clicktag:    join(c.ClicktagDir),
		Output:      join(c.OutputDir),
		Placeholder: c.PlaceholderDir,
	}
}

// Validate checks the resolved folders against the project root. The output
// and clicktag folders are emptied on every run, so neither may be the root
// or one of its parents, and neither may contain, equal or sit inside an
// input folder or the other generated folder.
func (p Paths) Validate(root string) error {
	rootDir := absPath(root)
	inputs := []struct{ dir, key string }{
		{absPath(p.Templates), "template_dir"},
		{absPath(p.Images), "images_dir"},
	}
	outputs := []struct{ dir, key string }{
		{absPath(p.Clicktag), "clicktag_dir"},
		{absPath(p.Output), "output_dir"},
	}

	for _, out := range outputs {
		if within(rootDir, out.dir) {
			return errors.New(errors.ErrCodeInvalidConfig, "%s %s would empty the project root", out.key, out.dir)
		}
		for _, in := range inputs {
			if overlaps(out.dir, in.dir) {
				return errors.New(errors.ErrCodeInvalidConfig, "%s %s overlaps %s %s", out.key, out.dir, in.key, in.dir)
			}
		}
	}
	if overlaps(outputs[0].dir, outputs[1].dir) {
		return errors.New(errors.ErrCodeInvalidConfig, "clicktag_dir %s overlaps output_dir %s", outputs[0].dir, outputs[1].dir)
	}
	return nil
}

// absPath returns the cleaned absolute form of path, or the cleaned path
// when the working directory is unavailable.
func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}

// within reports whether dir equals parent or lies below it.
func within(dir, parent string) bool {
	rel, err := filepath.Rel(parent, dir)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// overlaps reports whether a and b are the same folder or one contains the other.
func overlaps(a, b string) bool {
	return within(a, b) || within(b, a)
}
