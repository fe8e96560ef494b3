// Package cli implements the bannerforge command-line interface.
//
// Running bannerforge without a subcommand generates every banner variant
// for the project in src/project. The CLI is built using cobra and logs
// progress via the charmbracelet/log library.
//
// # Commands
//
//   - generate: materialize templates and write all banner copies (default)
//   - plan: print how many copies each category needs without writing
//   - digest: print the content digest of an output folder
//   - completion: shell completion scripts
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bannerforge/pkg/buildinfo"
	"github.com/matzehuels/bannerforge/pkg/config"
	"github.com/matzehuels/bannerforge/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "bannerforge"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// project flags shared by generate and plan
	root       string
	mixed      bool
	configPath string

	// generate only
	reportPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
// Without a subcommand the root behaves like generate.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "bannerforge batch-produces HTML5 banner variants",
		Long: `bannerforge injects clicktag markup into a template banner and fills its
placeholder images with creatives from images/<category>/, writing one banner
folder per combination to processed-banners/.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(cmd)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.StringVar(&c.root, "root", pipeline.DefaultRoot, "project folder holding sample-banner/ and images/")
	flags.BoolVar(&c.mixed, "mixed", false, "also write cross-category combos to processed-banners/mixed")
	flags.StringVar(&c.configPath, "config", "", "config file (default <root>/"+config.FileName+")")

	root.AddCommand(c.generateCommand())
	root.AddCommand(c.planCommand())
	root.AddCommand(c.digestCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner() *pipeline.Runner {
	return pipeline.NewRunner(c.Logger)
}

// options builds pipeline options from the shared flags. An explicit
// --config path must exist; the project default may be absent.
func (c *CLI) options() (pipeline.Options, error) {
	opts := pipeline.Options{
		Root:   c.root,
		Mixed:  c.mixed,
		Logger: c.Logger,
	}
	if c.configPath != "" {
		cfg, err := config.LoadFile(c.configPath)
		if err != nil {
			return opts, err
		}
		opts.Config = &cfg
	}
	return opts, nil
}
