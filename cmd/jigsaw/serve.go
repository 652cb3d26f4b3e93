package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-jigsaw/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagPictureDir  string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the jigsaw SSH server",
	Long: `Start an SSH server where every connection gets a fresh puzzle cut
from a random picture of the picture directory.

Runs and solves are stored per-server (all users share the same history).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.jigsaw/host_key

Examples:
  jigsaw serve                          # Listen on :23235, pictures from config
  jigsaw serve --ssh :2222 --pictures ./pictures
  jigsaw serve --difficulty hard

Users can connect with:
  ssh localhost -p 23235`,
	RunE: runServe,
}

func init() {
	addCutFlags(serveCmd)
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (default from config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().StringVar(&flagPictureDir, "pictures", "", "Directory of pictures to serve (default from config)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout in minutes (default from config)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	sc := appConfig.Server
	cfg := tui.SSHServerConfig{
		Address:     firstNonEmpty(flagSSHAddr, sc.Address),
		HostKeyPath: firstNonEmpty(flagHostKey, sc.HostKey),
		DBPath:      appConfig.Storage.DBPath,
		IdleTimeout: time.Duration(sc.IdleTimeoutMinutes) * time.Minute,
		PictureDir:  firstNonEmpty(flagPictureDir, sc.PictureDir),
		Puzzle:      cutOptions(),
		CellWidth:   appConfig.Play.CellWidth,
		ShowPreview: appConfig.Play.ShowPreview,
		Logger:      loggerFromContext(cmd.Context()).WithPrefix("ssh"),
	}
	if flagIdleTimeout > 0 {
		cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	fmt.Printf("Starting jigsaw SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe(cmd.Context())
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
