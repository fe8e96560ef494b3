package banner

import (
	"fmt"
	"path/filepath"

	"github.com/matzehuels/bannerforge/pkg/errors"
	"github.com/matzehuels/bannerforge/pkg/fsutil"
)

// MixedGroup is the output folder holding cross-category combo banners.
const MixedGroup = "mixed"

// CopiesNeeded returns ceil(images / placeholders), or 0 when either count
// is not positive.
func CopiesNeeded(images, placeholders int) int {
	if images <= 0 || placeholders <= 0 {
		return 0
	}
	return (images + placeholders - 1) / placeholders
}

// BannerDir returns <root>/<group>/banner-<n>; n is 1-indexed.
func BannerDir(root, group string, n int) string {
	return filepath.Join(root, group, fmt.Sprintf("banner-%d", n))
}

// BannerCopy is one output banner. It is PLANNED while Assigned is empty
// and POPULATED once every placeholder has been overwritten.
type BannerCopy struct {
	Dir      string
	Assigned []string // source image per placeholder, in placeholder order
}

// Populated reports whether the copy's placeholders have been written.
func (b *BannerCopy) Populated() bool {
	return len(b.Assigned) > 0
}

// CategoryPlan is the planned output of one category against one template.
type CategoryPlan struct {
	Category     Category
	Reference    Size
	Placeholders []string
	Copies       int
	Banners      []*BannerCopy
}

// Skipped reports whether the category produces no banners.
func (p *CategoryPlan) Skipped() bool {
	return p.Copies == 0
}

// referenceSize probes the image the placeholders are matched against.
func referenceSize(path string) (Size, error) {
	ref, err := ProbeSize(path)
	if err != nil {
		return Size{}, fmt.Errorf("reference image: %w", err)
	}
	return ref, nil
}

// placeholdersFor matches tpl's placeholder images against ref and fails
// when none match, since no copy count can be derived from zero slots.
func placeholdersFor(tpl *Template, ref Size) ([]string, error) {
	if !fsutil.Exists(tpl.PlaceholderPath()) {
		return nil, errors.Configuration("no matching placeholder dimensions found: %s does not exist", tpl.PlaceholderPath())
	}
	ph, err := MatchPlaceholders(ref, tpl.PlaceholderPath())
	if err != nil {
		return nil, err
	}
	if len(ph) == 0 {
		return nil, errors.Configuration("no matching placeholder dimensions found: no image in %s is %s", tpl.PlaceholderPath(), ref)
	}
	return ph, nil
}

// PlanCategory computes the placeholder set and copy count for cat without
// touching the output root. An empty category yields a skipped plan.
func PlanCategory(tpl *Template, cat Category) (*CategoryPlan, error) {
	plan := &CategoryPlan{Category: cat}
	if len(cat.Images) == 0 {
		return plan, nil
	}

	ref, err := referenceSize(cat.Images[0])
	if err != nil {
		return nil, fmt.Errorf("category %s: %w", cat.Name, err)
	}
	ph, err := placeholdersFor(tpl, ref)
	if err != nil {
		return nil, fmt.Errorf("category %s: %w", cat.Name, err)
	}

	plan.Reference = ref
	plan.Placeholders = ph
	plan.Copies = CopiesNeeded(len(cat.Images), len(ph))
	return plan, nil
}

// Create clones tpl into <root>/<category>/banner-1..n, leaving every copy
// in the PLANNED state.
func (p *CategoryPlan) Create(tpl *Template, root string) error {
	p.Banners = make([]*BannerCopy, 0, p.Copies)
	for i := 1; i <= p.Copies; i++ {
		dir := BannerDir(root, p.Category.Name, i)
		if err := fsutil.CopyDir(tpl.Dir, dir); err != nil {
			return err
		}
		p.Banners = append(p.Banners, &BannerCopy{Dir: dir})
	}
	return nil
}

// Plan empties root and creates the planned copies of every category.
func Plan(tpl *Template, cats []Category, root string) ([]*CategoryPlan, error) {
	if err := fsutil.EmptyDir(root); err != nil {
		return nil, err
	}
	plans := make([]*CategoryPlan, 0, len(cats))
	for _, cat := range cats {
		plan, err := PlanCategory(tpl, cat)
		if err != nil {
			return nil, err
		}
		if err := plan.Create(tpl, root); err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}
	return plans, nil
}
