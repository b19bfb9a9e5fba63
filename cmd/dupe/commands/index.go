package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newIndexCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index",
		Short: "Precompute cache entries for every corpus image",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := c.app.Index(cmd.Context(), settings(cmd))
			return err
		},
	}
	addCorpusFlags(cmd)
	return cmd
}
