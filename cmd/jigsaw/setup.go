package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-jigsaw/internal/imageio"
	"github.com/vovakirdan/tui-jigsaw/internal/setup"
)

var (
	flagArchiveDir string
	flagTargetDir  string
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Unpack sample picture archives into the picture folder",
	Long: `Create the picture folder with its locator file, extract every *.zip in
the archive directory into it (folder structure inside the archives is
dropped), then remove empty folders left below it.

Examples:
  jigsaw setup
  jigsaw setup --archives ./downloads --target ./pictures`,
	Args: cobra.NoArgs,
	RunE: runSetup,
}

func init() {
	setupCmd.Flags().StringVar(&flagArchiveDir, "archives", "", "Directory holding *.zip archives (default from config)")
	setupCmd.Flags().StringVar(&flagTargetDir, "target", "", "Picture folder to create (default from config)")
}

func runSetup(cmd *cobra.Command, _ []string) error {
	logger := loggerFromContext(cmd.Context())
	sc := appConfig.Setup

	prog := newProgress(logger)
	report, err := setup.Run(cmd.Context(), setup.Options{
		ArchiveDir: firstNonEmpty(flagArchiveDir, sc.ArchiveDir),
		TargetDir:  firstNonEmpty(flagTargetDir, sc.TargetDir),
		Locator:    sc.Locator,
	})
	if report != nil {
		for _, a := range report.Archives {
			logger.Debug("extracted archive", "path", a)
		}
		for _, d := range report.Pruned {
			logger.Info("deleted empty folder", "path", d)
		}
	}
	if err != nil {
		return err
	}

	pictures := 0
	for _, f := range report.Extracted {
		if imageio.Supported(f) {
			pictures++
		}
	}
	prog.done("setup finished", "archives", len(report.Archives), "files", len(report.Extracted))
	fmt.Printf("%d pictures ready in %s\n", pictures, firstNonEmpty(flagTargetDir, sc.TargetDir))
	return nil
}
