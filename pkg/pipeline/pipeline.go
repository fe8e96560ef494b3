// Package pipeline runs the banner generation batch job end to end.
//
// The pipeline has three stages, executed in order, once per template:
//
//  1. Materialize: copy the pristine template and inject the clicktag markup
//  2. Plan: empty the output root and clone one banner copy per slot group
//  3. Populate: overwrite placeholders round-robin per category, and
//     optionally build the cross-category mixed combos
//
// Everything runs synchronously on the calling goroutine. The output root and
// the materialized templates are owned by the run and fully regenerated;
// concurrent runs against the same project are not supported.
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	result, err := runner.Execute(ctx, pipeline.Options{Root: "src/project"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Digest)
package pipeline

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/bannerforge/pkg/banner"
	"github.com/matzehuels/bannerforge/pkg/config"
	"github.com/matzehuels/bannerforge/pkg/errors"
)

// DefaultRoot is the project folder used when Options.Root is empty.
const DefaultRoot = "src/project"

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
type Options struct {
	// Root is the project folder holding the template and images folders.
	Root string

	// Config holds folder names and mode switches. When nil, the project's
	// bannerforge.toml is loaded (or the defaults when it is absent).
	Config *config.Config

	// Mixed forces mixed mode on in addition to Config.Mixed.
	Mixed bool

	// Logger receives progress output. Defaults to a discarding logger.
	Logger *log.Logger

	validated bool
}

// ValidateAndSetDefaults applies defaults, checks that the project root
// exists and that the generated folders do not overlap the inputs. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Root == "" {
		o.Root = DefaultRoot
	}
	if info, err := os.Stat(o.Root); err != nil || !info.IsDir() {
		return errors.Configuration("project root %s not found", o.Root)
	}
	if o.Config == nil {
		cfg, err := config.LoadProject(o.Root)
		if err != nil {
			return err
		}
		o.Config = &cfg
	}
	if err := o.Config.Resolve(o.Root).Validate(o.Root); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// MixedEnabled reports whether the mixed combo output is produced.
func (o *Options) MixedEnabled() bool {
	return o.Mixed || (o.Config != nil && o.Config.Mixed)
}

// Paths returns the resolved project folders.
func (o *Options) Paths() config.Paths {
	return o.Config.Resolve(o.Root)
}

// =============================================================================
// Result
// =============================================================================

// Result contains the outputs of a pipeline run.
type Result struct {
	// Templates holds one entry per template bundle, in name order.
	Templates []*TemplateResult

	// OutputRoot is the regenerated output folder.
	OutputRoot string

	// ImagesRoot is the folder the categories were read from.
	ImagesRoot string

	// Digest is the SHA-256 tree digest of OutputRoot. Empty for previews.
	Digest string

	Stats Stats
}

// TemplateResult is the output produced from one template bundle.
type TemplateResult struct {
	Name string

	// Master is the clicktag-injected template (the pristine one for previews).
	Master *banner.Template

	// OutputRoot is where this template's banner copies live.
	OutputRoot string

	Categories []*banner.CategoryPlan

	// Mixed is nil unless mixed mode is enabled.
	Mixed *banner.MixedPlan
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Templates    int
	Categories   int
	Skipped      int // categories without images
	Banners      int // per-category banner copies
	MixedBanners int
	Assignments  int // placeholder files written
	Dropped      int // images left out of the mixed combos

	MaterializeTime time.Duration
	PlanTime        time.Duration
	PopulateTime    time.Duration
}

// add folds one template's plans into the stats.
func (s *Stats) add(tr *TemplateResult) {
	s.Templates++
	for _, p := range tr.Categories {
		s.Categories++
		if p.Skipped() {
			s.Skipped++
		}
		s.Banners += p.Copies
	}
	if tr.Mixed != nil {
		s.MixedBanners += len(tr.Mixed.Combos)
		s.Dropped += tr.Mixed.Dropped
	}
}
