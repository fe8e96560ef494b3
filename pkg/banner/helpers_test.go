package banner

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

const testMarkup = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>puppy-banner</title>
<script src="puppy-banner.js"></script>
</head>
<body>
<div id="animation_container">
<canvas id="canvas" width="300" height="250"></canvas>
</div>
</body>
</html>
`

// pngBytes encodes a w*h image filled with a shade derived from seed, so
// images of equal size still differ byte-wise.
func pngBytes(t *testing.T, w, h, seed int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	c := color.RGBA{R: uint8(seed * 37), G: uint8(seed * 11), B: uint8(seed), A: 255}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
}

func writePNG(t *testing.T, path string, w, h, seed int) {
	t.Helper()
	writeFile(t, path, pngBytes(t, w, h, seed))
}

func readFile(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return data
}

// newTemplateDir builds a pristine bundle with two 300x250 placeholders,
// one decorative 50x50 logo and a non-image file.
func newTemplateDir(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "puppy-banner")
	writeFile(t, filepath.Join(dir, "puppy-banner.html"), []byte(testMarkup))
	writeFile(t, filepath.Join(dir, "puppy-banner.js"), []byte("// animation runtime"))
	writePNG(t, filepath.Join(dir, "images", "ph_b.png"), 300, 250, 200)
	writePNG(t, filepath.Join(dir, "images", "ph_a.png"), 300, 250, 201)
	writePNG(t, filepath.Join(dir, "images", "logo.png"), 50, 50, 202)
	writeFile(t, filepath.Join(dir, "images", "notes.txt"), []byte("not an image"))
	return dir
}

// newTemplate inspects a fresh pristine bundle.
func newTemplate(t *testing.T) *Template {
	t.Helper()
	tpl, err := Inspect("puppy-banner", newTemplateDir(t), "images")
	if err != nil {
		t.Fatalf("Inspect() error: %v", err)
	}
	return tpl
}

// newCategory writes n 300x250 images named img0.png.. into a category dir.
func newCategory(t *testing.T, root, name string, n, seedBase int) Category {
	t.Helper()
	cat := Category{Name: name}
	for i := 0; i < n; i++ {
		p := filepath.Join(root, name, fmt.Sprintf("img%d.png", i))
		writePNG(t, p, 300, 250, seedBase+i)
		cat.Images = append(cat.Images, p)
	}
	return cat
}
