package cli

import (
	"sort"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bannerforge/pkg/digest"
)

// digestCommand creates the digest command. Two runs over unchanged inputs
// print the same digest.
func (c *CLI) digestCommand() *cobra.Command {
	var files bool

	cmd := &cobra.Command{
		Use:   "digest [dir]",
		Short: "Print the content digest of a generated output folder",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := c.digestDir(args)
			if err != nil {
				return err
			}
			if files {
				hashes, err := digest.Files(dir)
				if err != nil {
					return err
				}
				names := make([]string, 0, len(hashes))
				for name := range hashes {
					names = append(names, name)
				}
				sort.Strings(names)
				for _, name := range names {
					printKeyValue(hashes[name][:12], name)
				}
			}
			sum, err := digest.Tree(dir)
			if err != nil {
				return err
			}
			printFile(dir)
			printKeyValue("digest", sum)
			return nil
		},
	}

	cmd.Flags().BoolVar(&files, "files", false, "also list the digest of every file")
	return cmd
}

// digestDir returns the explicit argument or the project's output folder.
func (c *CLI) digestDir(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	opts, err := c.options()
	if err != nil {
		return "", err
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return "", err
	}
	return opts.Paths().Output, nil
}
