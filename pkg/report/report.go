// Package report exports the image assignments of a pipeline run as JSON.
//
// The report lists, for every template, which source image landed in which
// placeholder of which banner copy. Paths are relative (banner folders to the
// output root, images to the images root) so reports from two machines can
// be diffed.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/matzehuels/bannerforge/pkg/banner"
	"github.com/matzehuels/bannerforge/pkg/pipeline"
)

type report struct {
	Digest    string     `json:"digest,omitempty"`
	Templates []template `json:"templates"`
}

type template struct {
	Name       string     `json:"name"`
	Surface    string     `json:"surface"`
	Categories []category `json:"categories"`
	Mixed      *mixed     `json:"mixed,omitempty"`
}

type category struct {
	Name         string   `json:"name"`
	Reference    string   `json:"reference,omitempty"`
	Placeholders []string `json:"placeholders,omitempty"`
	Banners      []entry  `json:"banners"`
}

type mixed struct {
	Placeholders []string `json:"placeholders"`
	Dropped      int      `json:"dropped"`
	Banners      []entry  `json:"banners"`
}

type entry struct {
	Dir    string   `json:"dir"`
	Images []string `json:"images"`
}

// rel returns path relative to base, or path unchanged if that fails.
func rel(base, path string) string {
	if r, err := filepath.Rel(base, path); err == nil {
		return filepath.ToSlash(r)
	}
	return filepath.ToSlash(path)
}

func entries(res *pipeline.Result, banners []*banner.BannerCopy) []entry {
	out := make([]entry, 0, len(banners))
	for _, b := range banners {
		e := entry{Dir: rel(res.OutputRoot, b.Dir), Images: make([]string, len(b.Assigned))}
		for i, img := range b.Assigned {
			e.Images[i] = rel(res.ImagesRoot, img)
		}
		out = append(out, e)
	}
	return out
}

// WriteJSON encodes the assignments of res as indented JSON and writes it to w.
func WriteJSON(res *pipeline.Result, w io.Writer) error {
	out := report{Digest: res.Digest, Templates: make([]template, 0, len(res.Templates))}
	for _, tr := range res.Templates {
		t := template{Name: tr.Name, Categories: make([]category, 0, len(tr.Categories))}
		if tr.Master != nil {
			t.Surface = tr.Master.Width + "x" + tr.Master.Height
		}
		for _, p := range tr.Categories {
			c := category{Name: p.Category.Name, Placeholders: p.Placeholders, Banners: entries(res, p.Banners)}
			if !p.Skipped() {
				c.Reference = p.Reference.String()
			}
			t.Categories = append(t.Categories, c)
		}
		if tr.Mixed != nil {
			t.Mixed = &mixed{
				Placeholders: tr.Mixed.Placeholders,
				Dropped:      tr.Mixed.Dropped,
				Banners:      entries(res, tr.Mixed.Banners),
			}
		}
		out.Templates = append(out.Templates, t)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes the report for res to a JSON file at path.
func ExportJSON(res *pipeline.Result, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(res, f)
}
