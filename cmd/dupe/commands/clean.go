package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove the cached encoded forms of the corpus",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Clean(cmd.Context(), settings(cmd))
		},
	}
	cmd.Flags().String("corpus", "", "Corpus directory (overrides the configuration)")
	return cmd
}
