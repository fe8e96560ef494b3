package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/bannerforge/pkg/banner"
	"github.com/matzehuels/bannerforge/pkg/digest"
	"github.com/matzehuels/bannerforge/pkg/fsutil"
	"github.com/matzehuels/bannerforge/pkg/observability"
)

// Runner executes the pipeline. It holds no per-run state.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. If logger is nil, log.Default() is used.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// applyLogger sets the runner's logger on opts unless one is already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// source is a pristine template bundle paired with its output locations.
type source struct {
	tpl        *banner.Template
	clicktag   string
	outputRoot string
}

// inputs scans the project for templates and categories.
func (r *Runner) inputs(opts *Options) ([]source, []banner.Category, error) {
	paths := opts.Paths()

	found, err := banner.ListTemplates(paths.Templates)
	if err != nil {
		return nil, nil, err
	}
	cats, err := banner.ScanCategories(paths.Images)
	if err != nil {
		return nil, nil, err
	}
	if opts.MixedEnabled() {
		if err := banner.CheckMixedGroup(cats); err != nil {
			return nil, nil, err
		}
	}

	sources := make([]source, 0, len(found))
	for _, f := range found {
		tpl, err := banner.Inspect(f.Name, f.Dir, paths.Placeholder)
		if err != nil {
			return nil, nil, err
		}
		s := source{tpl: tpl, clicktag: paths.Clicktag, outputRoot: paths.Output}
		if f.Dir != filepath.Clean(paths.Templates) {
			s.clicktag = filepath.Join(paths.Clicktag, f.Name)
		}
		if len(found) > 1 {
			s.outputRoot = filepath.Join(paths.Output, f.Name)
		}
		sources = append(sources, s)
	}
	return sources, cats, nil
}

// Execute runs materialize → plan → populate for every template and returns
// the populated plans and the digest of the regenerated output root.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	logger := opts.Logger.With("run", uuid.NewString()[:8])
	paths := opts.Paths()

	sources, cats, err := r.inputs(&opts)
	if err != nil {
		return nil, err
	}
	logger.Info("scanned project",
		"root", opts.Root,
		"templates", len(sources),
		"categories", len(cats),
		"images", banner.TotalImages(cats))

	if err := fsutil.EmptyDir(paths.Clicktag); err != nil {
		return nil, err
	}
	if err := fsutil.EmptyDir(paths.Output); err != nil {
		return nil, err
	}

	result := &Result{OutputRoot: paths.Output, ImagesRoot: paths.Images}
	for _, s := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		tr, err := r.runTemplate(ctx, logger, &opts, s, cats, &result.Stats)
		if err != nil {
			return nil, fmt.Errorf("template %s: %w", s.tpl.Name, err)
		}
		result.Templates = append(result.Templates, tr)
		result.Stats.add(tr)
	}

	sum, err := digest.Tree(paths.Output)
	if err != nil {
		return nil, err
	}
	result.Digest = sum

	logger.Info("generated banners",
		"banners", result.Stats.Banners,
		"mixed", result.Stats.MixedBanners,
		"assignments", result.Stats.Assignments,
		"digest", sum[:12])
	return result, nil
}

// runTemplate processes one template bundle.
func (r *Runner) runTemplate(ctx context.Context, logger *log.Logger, opts *Options, s source, cats []banner.Category, stats *Stats) (*TemplateResult, error) {
	logger = logger.With("template", s.tpl.Name)

	start := time.Now()
	track := observability.Track(ctx, observability.StageMaterialize, s.tpl.Name)
	master, err := banner.Materialize(s.tpl, s.clicktag)
	track(0, err)
	if err != nil {
		return nil, fmt.Errorf("materialize: %w", err)
	}
	stats.MaterializeTime += time.Since(start)
	logger.Debug("materialized template", "dir", master.Dir, "surface", master.Width+"x"+master.Height)

	start = time.Now()
	track = observability.Track(ctx, observability.StagePlan, s.tpl.Name)
	plans, err := banner.Plan(master, cats, s.outputRoot)
	track(countCopies(plans), err)
	if err != nil {
		return nil, fmt.Errorf("plan: %w", err)
	}
	stats.PlanTime += time.Since(start)

	tr := &TemplateResult{
		Name:       s.tpl.Name,
		Master:     master,
		OutputRoot: s.outputRoot,
		Categories: plans,
	}

	start = time.Now()
	for _, p := range plans {
		if p.Skipped() {
			logger.Debug("skipped empty category", "category", p.Category.Name)
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		track := observability.Track(ctx, observability.StagePopulate, p.Category.Name)
		n, err := banner.Populate(master, p)
		track(len(p.Banners), err)
		if err != nil {
			return nil, fmt.Errorf("populate %s: %w", p.Category.Name, err)
		}
		stats.Assignments += n
		logger.Info("populated category",
			"category", p.Category.Name,
			"images", len(p.Category.Images),
			"placeholders", len(p.Placeholders),
			"banners", p.Copies)
	}

	if opts.MixedEnabled() {
		track := observability.Track(ctx, observability.StageMixed, s.tpl.Name)
		mixed, err := banner.PlanMixed(master, cats)
		if err != nil {
			track(0, err)
			return nil, err
		}
		n, err := banner.PopulateMixed(master, mixed, s.outputRoot)
		track(len(mixed.Banners), err)
		if err != nil {
			return nil, fmt.Errorf("populate mixed: %w", err)
		}
		stats.Assignments += n
		tr.Mixed = mixed
		logger.Info("populated mixed", "banners", len(mixed.Combos), "placeholders", len(mixed.Placeholders))
		if mixed.Dropped > 0 {
			logger.Warn("images left out of mixed combos", "dropped", mixed.Dropped)
		}
	}
	stats.PopulateTime += time.Since(start)
	return tr, nil
}

// countCopies sums the planned copies of plans.
func countCopies(plans []*banner.CategoryPlan) int {
	n := 0
	for _, p := range plans {
		n += p.Copies
	}
	return n
}

// Preview computes the same plans as Execute without writing anything.
// Templates are inspected in place; no clicktag copy is made.
func (r *Runner) Preview(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	sources, cats, err := r.inputs(&opts)
	if err != nil {
		return nil, err
	}

	result := &Result{OutputRoot: opts.Paths().Output, ImagesRoot: opts.Paths().Images}
	for _, s := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		tr := &TemplateResult{Name: s.tpl.Name, Master: s.tpl, OutputRoot: s.outputRoot}
		for _, cat := range cats {
			p, err := banner.PlanCategory(s.tpl, cat)
			if err != nil {
				return nil, fmt.Errorf("template %s: %w", s.tpl.Name, err)
			}
			tr.Categories = append(tr.Categories, p)
		}
		if opts.MixedEnabled() {
			mixed, err := banner.PlanMixed(s.tpl, cats)
			if err != nil {
				return nil, fmt.Errorf("template %s: %w", s.tpl.Name, err)
			}
			tr.Mixed = mixed
		}
		result.Templates = append(result.Templates, tr)
		result.Stats.add(tr)
	}
	return result, nil
}
