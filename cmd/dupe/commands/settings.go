package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/dupe/internal/app"
	"go.trai.ch/dupe/internal/core/domain"
)

// addCorpusFlags registers the flags shared by every command that reads a corpus.
func addCorpusFlags(cmd *cobra.Command) {
	cmd.Flags().String("corpus", "", "Corpus directory (overrides the configuration)")
	cmd.Flags().String("palette", "", "Palette applied before encoding: none or gameboy")
	cmd.Flags().IntP("concurrency", "j", 0, "Number of concurrent workers (0 keeps the configured value)")
}

// addScanFlags registers the flags that tune a duplicate scan.
func addScanFlags(cmd *cobra.Command) {
	addCorpusFlags(cmd)
	cmd.Flags().IntP("threshold", "t", 0, "Differing pixel count at which images count as distinct")
	cmd.Flags().String("policy", "", "Run alignment policy: scanline or legacy")
	cmd.Flags().Duration("task-timeout", 0, "Time limit for evaluating a single corpus entry")
	cmd.Flags().Bool("publish", false, "Copy new images into the corpus")
}

// settings collects the configuration path and every flag the user set.
// Flags a command does not register keep their zero value.
func settings(cmd *cobra.Command) app.Settings {
	flags := cmd.Flags()
	s := app.Settings{
		ConfigPath:     stringFlag(cmd, "config"),
		ConfigRequired: flags.Changed("config"),
		Corpus:         stringFlag(cmd, "corpus"),
		Palette:        domain.Palette(stringFlag(cmd, "palette")),
		Policy:         domain.ComparePolicy(stringFlag(cmd, "policy")),
	}

	if flags.Changed("concurrency") {
		s.Concurrency, _ = flags.GetInt("concurrency")
	}
	if flags.Changed("task-timeout") {
		s.TaskTimeout, _ = flags.GetDuration("task-timeout")
	}
	if flags.Changed("threshold") {
		threshold, _ := flags.GetInt("threshold")
		s.Threshold = &threshold
	}
	if flags.Changed("publish") {
		publish, _ := flags.GetBool("publish")
		s.Publish = &publish
	}
	return s
}

func stringFlag(cmd *cobra.Command, name string) string {
	f := cmd.Flags().Lookup(name)
	if f == nil {
		return ""
	}
	return f.Value.String()
}
