package banner

import (
	"path/filepath"

	"github.com/matzehuels/bannerforge/pkg/fsutil"
)

// Distribute assigns images to copies*slots placeholder slots, banner by
// banner and slot by slot. A cursor walks images and wraps back to the first
// one past the end, so slot i (counting globally) receives images[i%len].
// It returns nil when images is empty.
func Distribute(images []string, copies, slots int) [][]string {
	if len(images) == 0 || copies <= 0 || slots <= 0 {
		return nil
	}
	out := make([][]string, copies)
	cursor := 0
	for c := range out {
		row := make([]string, slots)
		for s := range row {
			if cursor >= len(images) {
				cursor = 0
			}
			row[s] = images[cursor]
			cursor++
		}
		out[c] = row
	}
	return out
}

// writeBanner overwrites the placeholders of b with images and marks it
// POPULATED.
func writeBanner(b *BannerCopy, placeholderDir string, placeholders, images []string) error {
	for i, name := range placeholders {
		dst := filepath.Join(b.Dir, placeholderDir, name)
		if err := fsutil.CopyFile(images[i], dst); err != nil {
			return err
		}
	}
	b.Assigned = images
	return nil
}

// Populate fills every planned copy of p with the category's images and
// returns the number of placeholder files written.
func Populate(tpl *Template, p *CategoryPlan) (int, error) {
	assignments := Distribute(p.Category.Images, len(p.Banners), len(p.Placeholders))
	written := 0
	for i, b := range p.Banners {
		if err := writeBanner(b, tpl.PlaceholderDir, p.Placeholders, assignments[i]); err != nil {
			return written, err
		}
		written += len(assignments[i])
	}
	return written, nil
}
