// Package pkg provides the core libraries for bannerforge, a batch generator
// for HTML5 ad-banner variants.
//
// # Overview
//
// A project folder holds one or more banner templates, a set of image
// categories and two output folders. bannerforge injects clickTag markup into
// each template, then fills the template's placeholder images with every image
// of every category, writing as many banner copies as needed.
//
//	src/project/
//	    sample-banner/           templates (one folder per banner, or flat)
//	    images/<category>/       source images
//	    sample-banner-clicktag/  clicktag-injected templates (regenerated)
//	    processed-banners/       banner copies (regenerated)
//
// # Architecture
//
// The data flow through bannerforge:
//
//	sample-banner/<name>
//	         ↓
//	    [banner] Materialize (clickTag injection)
//	         ↓
//	    [banner] Plan / PlanMixed (copies per category)
//	         ↓
//	    [banner] Populate / PopulateMixed (image distribution)
//	         ↓
//	    processed-banners/
//
// [pipeline] drives these steps for every template and is shared by all CLI
// commands.
//
// # Quick Start
//
//	runner := pipeline.NewRunner(logger)
//	result, err := runner.Execute(ctx, pipeline.Options{Root: "src/project"})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(result.Stats.Banners, result.Digest)
//
// # Main Packages
//
// [banner] - Template inspection, clickTag injection, copy planning and image
// distribution, including mixed-mode combos across categories.
//
// [pipeline] - Orchestration (materialize → plan → populate) with stats and
// dry-run previews.
//
// [config] - Optional bannerforge.toml with folder names and the mixed flag.
//
// [report] - JSON export of which image went into which banner.
//
// [digest] - Content digests of output trees, used to check that runs are
// reproducible.
//
// [fsutil] - Sorted listings and directory copies that skip hidden files.
//
// [observability] - Hooks around pipeline stages.
//
// [errors] - Coded errors (configuration, filesystem, invalid config).
//
// [banner]: https://pkg.go.dev/github.com/matzehuels/bannerforge/pkg/banner
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/bannerforge/pkg/pipeline
// [config]: https://pkg.go.dev/github.com/matzehuels/bannerforge/pkg/config
// [report]: https://pkg.go.dev/github.com/matzehuels/bannerforge/pkg/report
// [digest]: https://pkg.go.dev/github.com/matzehuels/bannerforge/pkg/digest
// [fsutil]: https://pkg.go.dev/github.com/matzehuels/bannerforge/pkg/fsutil
// [observability]: https://pkg.go.dev/github.com/matzehuels/bannerforge/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/bannerforge/pkg/errors
package pkg
