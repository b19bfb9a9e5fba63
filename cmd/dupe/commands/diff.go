package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newDiffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff <a> <b>",
		Short: "Compare two images pixel by pixel",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			output, _ := cmd.Flags().GetString("output")
			report, err := c.app.Diff(cmd.Context(), args[0], args[1], output)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d of %d pixels differ\n",
				report.Different, report.Width*report.Height)
			return nil
		},
	}
	cmd.Flags().StringP("output", "o", "", "Write the difference image to this path")
	return cmd
}
