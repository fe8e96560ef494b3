package banner

import (
	"fmt"

	"github.com/matzehuels/bannerforge/pkg/errors"
	"github.com/matzehuels/bannerforge/pkg/fsutil"
)

// comboQueue is one category's images consumed through a head index.
type comboQueue struct {
	items []string
	head  int
}

func (q *comboQueue) empty() bool { return q.head >= len(q.items) }

func (q *comboQueue) pop() string {
	v := q.items[q.head]
	q.head++
	return v
}

// Combos interleaves queues into combos of exactly size items. A rotation
// cursor takes the head of the current queue and moves on to the next
// non-empty queue, wrapping at the end; exhausted queues leave the rotation.
// The cursor carries over from one combo to the next. Combos are built while
// at least size items remain, so len(result) == total/size and the
// total%size leftover items are dropped. No item is used twice.
func Combos(queues [][]string, size int) [][]string {
	if size <= 0 {
		return nil
	}

	var active []*comboQueue
	remaining := 0
	for _, items := range queues {
		if len(items) == 0 {
			continue
		}
		active = append(active, &comboQueue{items: items})
		remaining += len(items)
	}

	var out [][]string
	cur := 0
	for remaining >= size {
		combo := make([]string, 0, size)
		for len(combo) < size {
			q := active[cur]
			combo = append(combo, q.pop())
			remaining--
			if q.empty() {
				active = append(active[:cur], active[cur+1:]...)
			} else {
				cur++
			}
			if cur >= len(active) {
				cur = 0
			}
		}
		out = append(out, combo)
	}
	return out
}

// MixedPlan is the planned cross-category output for one template.
type MixedPlan struct {
	Reference    Size
	Placeholders []string
	Combos       [][]string
	Dropped      int // images left over after the last whole combo
	Banners      []*BannerCopy
}

// CheckMixedGroup fails when a category would write into the mixed output
// folder. Call it before any output is written.
func CheckMixedGroup(cats []Category) error {
	for _, c := range cats {
		if c.Name == MixedGroup {
			return errors.Configuration("category %q collides with the mixed output folder", MixedGroup)
		}
	}
	return nil
}

// PlanMixed computes the combos for cats against tpl. The reference image is
// the first image of the first non-empty category.
func PlanMixed(tpl *Template, cats []Category) (*MixedPlan, error) {
	plan := &MixedPlan{}
	queues := make([][]string, 0, len(cats))
	if err := CheckMixedGroup(cats); err != nil {
		return nil, err
	}
	for _, c := range cats {
		queues = append(queues, c.Images)
	}

	var first string
	for _, c := range cats {
		if len(c.Images) > 0 {
			first = c.Images[0]
			break
		}
	}
	if first == "" {
		return plan, nil
	}

	ref, err := referenceSize(first)
	if err != nil {
		return nil, fmt.Errorf("mixed: %w", err)
	}
	ph, err := placeholdersFor(tpl, ref)
	if err != nil {
		return nil, fmt.Errorf("mixed: %w", err)
	}

	plan.Reference = ref
	plan.Placeholders = ph
	plan.Combos = Combos(queues, len(ph))
	plan.Dropped = TotalImages(cats) - len(plan.Combos)*len(ph)
	return plan, nil
}

// PopulateMixed clones tpl once per combo into <root>/mixed/banner-<n> and
// writes the combo's images over the placeholders. It returns the number of
// placeholder files written.
func PopulateMixed(tpl *Template, p *MixedPlan, root string) (int, error) {
	p.Banners = make([]*BannerCopy, 0, len(p.Combos))
	written := 0
	for i, combo := range p.Combos {
		b := &BannerCopy{Dir: BannerDir(root, MixedGroup, i+1)}
		if err := fsutil.CopyDir(tpl.Dir, b.Dir); err != nil {
			return written, err
		}
		p.Banners = append(p.Banners, b)
		if err := writeBanner(b, tpl.PlaceholderDir, p.Placeholders, combo); err != nil {
			return written, err
		}
		written += len(combo)
	}
	return written, nil
}
