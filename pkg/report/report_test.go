package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/bannerforge/pkg/banner"
	"github.com/matzehuels/bannerforge/pkg/pipeline"
)

func testResult() *pipeline.Result {
	out := filepath.Join("proj", "processed-banners")
	imgs := filepath.Join("proj", "images")
	return &pipeline.Result{
		OutputRoot: out,
		ImagesRoot: imgs,
		Digest:     "abc",
		Templates: []*pipeline.TemplateResult{{
			Name:   "b",
			Master: &banner.Template{Name: "b", Width: "300", Height: "250"},
			Categories: []*banner.CategoryPlan{
				{
					Category:     banner.Category{Name: "puppies"},
					Reference:    banner.Size{Width: 300, Height: 250},
					Placeholders: []string{"p1.png", "p2.png"},
					Copies:       1,
					Banners: []*banner.BannerCopy{{
						Dir:      filepath.Join(out, "puppies", "banner-1"),
						Assigned: []string{filepath.Join(imgs, "puppies", "a.png"), filepath.Join(imgs, "puppies", "b.png")},
					}},
				},
				{Category: banner.Category{Name: "empty"}},
			},
		}},
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(testResult(), &buf); err != nil {
		t.Fatalf("WriteJSON error: %v", err)
	}

	var got report
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	want := report{
		Digest: "abc",
		Templates: []template{{
			Name:    "b",
			Surface: "300x250",
			Categories: []category{
				{
					Name:         "puppies",
					Reference:    "300x250",
					Placeholders: []string{"p1.png", "p2.png"},
					Banners:      []entry{{Dir: "puppies/banner-1", Images: []string{"puppies/a.png", "puppies/b.png"}}},
				},
				{Name: "empty", Banners: []entry{}},
			},
		}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("report mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteJSONMixed(t *testing.T) {
	res := testResult()
	res.Templates[0].Mixed = &banner.MixedPlan{
		Placeholders: []string{"p1.png", "p2.png"},
		Dropped:      1,
		Banners: []*banner.BannerCopy{{
			Dir:      filepath.Join(res.OutputRoot, "mixed", "banner-1"),
			Assigned: []string{filepath.Join(res.ImagesRoot, "kittens", "k.png"), filepath.Join(res.ImagesRoot, "puppies", "a.png")},
		}},
	}

	var buf bytes.Buffer
	if err := WriteJSON(res, &buf); err != nil {
		t.Fatalf("WriteJSON error: %v", err)
	}
	var got report
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	m := got.Templates[0].Mixed
	if m == nil {
		t.Fatal("mixed section missing")
	}
	if m.Dropped != 1 || len(m.Banners) != 1 || m.Banners[0].Dir != "mixed/banner-1" {
		t.Errorf("mixed = %+v", m)
	}
}

func TestExportJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	if err := ExportJSON(testResult(), path); err != nil {
		t.Fatalf("ExportJSON error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !json.Valid(data) {
		t.Errorf("file is not valid JSON:\n%s", data)
	}
}

func TestExportJSONBadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "report.json")
	if err := ExportJSON(testResult(), path); err == nil {
		t.Error("expected error for missing parent directory")
	}
}
