package cli

import (
	"github.com/spf13/cobra"
)

// planCommand creates the plan command: a dry run of generate.
func (c *CLI) planCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "plan",
		Short: "Show how many banners each category needs without writing anything",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.options()
			if err != nil {
				return err
			}
			result, err := c.newRunner().Preview(cmd.Context(), opts)
			if err != nil {
				return err
			}
			printResult(result, true)
			printInfo("Output would be written to %s", result.OutputRoot)
			return nil
		},
	}
}
