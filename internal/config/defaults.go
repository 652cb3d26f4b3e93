package config

import (
	_ "embed"
)

//go:embed defaults/jigsaw.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Grid: GridConfig{
			Size:    4,
			Shuffle: true,
			Rotate:  true,
		},
		Sheet: SheetConfig{
			Gap:        4,
			Background: "#ffffff",
			Titles:     true,
		},
		Play: PlayConfig{
			CellWidth:   8,
			ShowPreview: true,
		},
		Storage: StorageConfig{
			DBPath: "~/.jigsaw/history.db",
		},
		Server: ServerConfig{
			Address:            ":23235",
			IdleTimeoutMinutes: 30,
			PictureDir:         "./pictures",
		},
		Setup: SetupConfig{
			ArchiveDir: ".",
			TargetDir:  "./pictures",
			Locator:    ".locator",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
