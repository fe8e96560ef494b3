package banner

import (
	"bytes"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/bannerforge/pkg/errors"
)

func queue(prefix string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%s%d", prefix, i)
	}
	return out
}

func TestCombosInterleaves(t *testing.T) {
	got := Combos([][]string{queue("a", 3), queue("b", 2)}, 2)
	want := [][]string{{"a0", "b0"}, {"a1", "b1"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Combos() mismatch (-want +got):\n%s", diff)
	}
}

func TestCombosRotationCarriesOver(t *testing.T) {
	got := Combos([][]string{queue("a", 2), queue("b", 2), queue("c", 2)}, 2)
	want := [][]string{{"a0", "b0"}, {"c0", "a1"}, {"b1", "c1"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Combos() mismatch (-want +got):\n%s", diff)
	}
}

func TestCombosSkipsExhaustedQueues(t *testing.T) {
	got := Combos([][]string{queue("a", 1), nil, queue("b", 4)}, 3)
	want := [][]string{{"a0", "b0", "b1"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Combos() mismatch (-want +got):\n%s", diff)
	}
}

func TestCombosProperties(t *testing.T) {
	for _, sizes := range [][]int{{5}, {3, 2}, {1, 1, 1, 1}, {4, 0, 7}, {6, 6}, {2, 9, 1}} {
		for p := 1; p <= 5; p++ {
			var queues [][]string
			total := 0
			for qi, n := range sizes {
				queues = append(queues, queue(string(rune('a'+qi)), n))
				total += n
			}

			combos := Combos(queues, p)
			if len(combos) != total/p {
				t.Fatalf("sizes=%v p=%d: %d combos, want %d", sizes, p, len(combos), total/p)
			}

			seen := map[string]bool{}
			for _, c := range combos {
				if len(c) != p {
					t.Fatalf("sizes=%v p=%d: combo %v has wrong size", sizes, p, c)
				}
				for _, img := range c {
					if seen[img] {
						t.Fatalf("sizes=%v p=%d: %s used twice", sizes, p, img)
					}
					seen[img] = true
				}
			}
			if unused := total - len(seen); unused != total%p {
				t.Errorf("sizes=%v p=%d: %d unused images, want %d", sizes, p, unused, total%p)
			}
		}
	}
}

func TestCombosDegenerate(t *testing.T) {
	if got := Combos([][]string{queue("a", 3)}, 0); got != nil {
		t.Errorf("Combos(size=0) = %v, want nil", got)
	}
	if got := Combos(nil, 2); got != nil {
		t.Errorf("Combos(nil) = %v, want nil", got)
	}
	if got := Combos([][]string{queue("a", 1)}, 2); got != nil {
		t.Errorf("Combos(short) = %v, want nil", got)
	}
}

func TestCombosDoesNotMutateInput(t *testing.T) {
	a := queue("a", 3)
	Combos([][]string{a}, 1)
	if diff := cmp.Diff(queue("a", 3), a); diff != "" {
		t.Errorf("input queue mutated (-want +got):\n%s", diff)
	}
}

func TestPlanMixed(t *testing.T) {
	tpl := newTemplate(t)
	src := t.TempDir()
	cats := []Category{
		{Name: "empty"},
		newCategory(t, src, "kittens", 3, 10),
		newCategory(t, src, "puppies", 2, 20),
	}

	plan, err := PlanMixed(tpl, cats)
	if err != nil {
		t.Fatalf("PlanMixed() error: %v", err)
	}
	if len(plan.Combos) != 2 {
		t.Errorf("combos = %d, want 2", len(plan.Combos))
	}
	if plan.Dropped != 1 {
		t.Errorf("Dropped = %d, want 1", plan.Dropped)
	}
	want := []string{cats[1].Images[0], cats[2].Images[0]}
	if diff := cmp.Diff(want, plan.Combos[0]); diff != "" {
		t.Errorf("first combo mismatch (-want +got):\n%s", diff)
	}
}

func TestPlanMixedRejectsMixedCategory(t *testing.T) {
	_, err := PlanMixed(newTemplate(t), []Category{{Name: MixedGroup}})
	if !errors.Is(err, errors.ErrCodeConfiguration) {
		t.Errorf("PlanMixed() error = %v, want CONFIGURATION_ERROR", err)
	}
}

func TestCheckMixedGroup(t *testing.T) {
	if err := CheckMixedGroup([]Category{{Name: "puppies"}, {Name: "mixed-media"}}); err != nil {
		t.Errorf("CheckMixedGroup() error = %v, want nil", err)
	}
	err := CheckMixedGroup([]Category{{Name: "puppies"}, {Name: MixedGroup}})
	if !errors.Is(err, errors.ErrCodeConfiguration) {
		t.Errorf("CheckMixedGroup() error = %v, want CONFIGURATION_ERROR", err)
	}
}

func TestPlanMixedNoImages(t *testing.T) {
	plan, err := PlanMixed(newTemplate(t), []Category{{Name: "a"}})
	if err != nil {
		t.Fatalf("PlanMixed() error: %v", err)
	}
	if len(plan.Combos) != 0 {
		t.Errorf("combos = %d, want 0", len(plan.Combos))
	}
}

func TestPopulateMixed(t *testing.T) {
	master, err := Materialize(newTemplate(t), filepath.Join(t.TempDir(), "master"))
	if err != nil {
		t.Fatal(err)
	}
	src := t.TempDir()
	cats := []Category{
		newCategory(t, src, "kittens", 2, 10),
		newCategory(t, src, "puppies", 2, 20),
	}
	plan, err := PlanMixed(master, cats)
	if err != nil {
		t.Fatal(err)
	}

	out := t.TempDir()
	written, err := PopulateMixed(master, plan, out)
	if err != nil {
		t.Fatalf("PopulateMixed() error: %v", err)
	}
	if written != 4 {
		t.Errorf("written = %d, want 4", written)
	}
	if len(plan.Banners) != 2 {
		t.Fatalf("banners = %d, want 2", len(plan.Banners))
	}
	for i, b := range plan.Banners {
		if b.Dir != BannerDir(out, MixedGroup, i+1) {
			t.Errorf("banner %d dir = %s", i, b.Dir)
		}
		for si, ph := range plan.Placeholders {
			got := readFile(t, filepath.Join(b.Dir, "images", ph))
			if !bytes.Equal(got, readFile(t, plan.Combos[i][si])) {
				t.Errorf("mixed/banner-%d/%s does not hold %s", i+1, ph, plan.Combos[i][si])
			}
		}
	}
}
