package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <inbox>",
		Short: "Check every image that lands in an inbox directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Watch(cmd.Context(), args[0], settings(cmd))
		},
	}
	addScanFlags(cmd)
	return cmd
}
