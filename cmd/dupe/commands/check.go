package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/dupe/internal/app"
	"go.trai.ch/dupe/internal/core/domain"
)

func (c *CLI) newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <image>",
		Short: "Check whether an image duplicates an image in the corpus",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := c.app.Check(cmd.Context(), args[0], settings(cmd))
			if report.Verdict != domain.VerdictFailed {
				printReport(cmd.OutOrStdout(), report)
			}
			if err != nil {
				return err
			}

			exitCode, _ := cmd.Flags().GetBool("exit-code")
			if exitCode && report.Verdict == domain.VerdictDuplicate {
				return ErrDuplicateFound
			}
			return nil
		},
	}
	addScanFlags(cmd)
	cmd.Flags().Bool("exit-code", false, "Exit with status 3 when the image is a duplicate")
	return cmd
}

func printReport(w io.Writer, r app.CheckReport) {
	switch {
	case r.Verdict == domain.VerdictDuplicate:
		_, _ = fmt.Fprintf(w, "duplicate\t%s\n", r.Match)
	case r.Published != "":
		_, _ = fmt.Fprintf(w, "new\t%s\n", r.Published)
	default:
		_, _ = fmt.Fprintln(w, "new")
	}
}
