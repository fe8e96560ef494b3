package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bannerforge/pkg/errors"
	"github.com/matzehuels/bannerforge/pkg/pipeline"
	"github.com/matzehuels/bannerforge/pkg/report"
)

// generateCommand creates the generate command, which is also what the root
// command runs when no subcommand is given.
func (c *CLI) generateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write every banner variant to processed-banners/",
		Long: `Generate materializes each template in sample-banner/ with clicktag markup
into sample-banner-clicktag/, then empties processed-banners/ and writes
ceil(images / placeholders) banner copies per image category. With --mixed it
also writes cross-category combos to processed-banners/mixed/.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(cmd)
		},
	}
	cmd.Flags().StringVar(&c.reportPath, "report", "", "write the image assignments as JSON to this file")
	return cmd
}

// runGenerate executes the pipeline and prints a summary.
func (c *CLI) runGenerate(cmd *cobra.Command) error {
	opts, err := c.options()
	if err != nil {
		return err
	}

	prog := newProgress(c.Logger)
	result, err := c.newRunner().Execute(cmd.Context(), opts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Generated %d banners", result.Stats.Banners+result.Stats.MixedBanners))

	printResult(result, false)
	printFile(result.OutputRoot)
	printKeyValue("digest", result.Digest)
	return c.writeReport(result)
}

// writeReport exports result when --report was given.
func (c *CLI) writeReport(result *pipeline.Result) error {
	if c.reportPath == "" {
		return nil
	}
	if err := report.ExportJSON(result, c.reportPath); err != nil {
		return errors.Wrap(errors.ErrCodeFilesystem, err, "failed to write report")
	}
	printFile(c.reportPath)
	return nil
}

// printResult prints per-template category counts. preview switches the
// wording from "written" to "planned".
func printResult(result *pipeline.Result, preview bool) {
	verb := "Generated"
	if preview {
		verb = "Would generate"
	}
	printSuccess("%s %s from %s",
		verb,
		plural(result.Stats.Banners+result.Stats.MixedBanners, "banner"),
		plural(result.Stats.Templates, "template"))

	for _, tr := range result.Templates {
		printTitle("%s", tr.Name)
		if tr.Master != nil {
			printDetail("surface %sx%s, %s", tr.Master.Width, tr.Master.Height, filepath.Base(tr.Master.HTMLFile))
		}
		for _, p := range tr.Categories {
			if p.Skipped() {
				printKeyValue(p.Category.Name, StyleDim.Render("no images, skipped"))
				continue
			}
			printKeyValue(p.Category.Name, fmt.Sprintf("%s × %s → %s",
				plural(len(p.Category.Images), "image"),
				plural(len(p.Placeholders), "placeholder"),
				plural(p.Copies, "banner")))
		}
		if tr.Mixed != nil {
			printKeyValue("mixed", fmt.Sprintf("%s of %s",
				plural(len(tr.Mixed.Combos), "combo"),
				plural(len(tr.Mixed.Placeholders), "image")))
			if tr.Mixed.Dropped > 0 {
				printWarning("%d images do not fill a whole combo and are left out", tr.Mixed.Dropped)
			}
		}
	}
}
