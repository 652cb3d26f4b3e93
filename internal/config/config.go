// Package config provides YAML/TOML configuration loading and difficulty
// presets for the jigsaw tool.
package config

import "fmt"

// Config contains every tunable of the jigsaw tool.
type Config struct {
	Grid    GridConfig    `yaml:"grid" toml:"grid"`
	Sheet   SheetConfig   `yaml:"sheet" toml:"sheet"`
	Play    PlayConfig    `yaml:"play" toml:"play"`
	Storage StorageConfig `yaml:"storage" toml:"storage"`
	Server  ServerConfig  `yaml:"server" toml:"server"`
	Setup   SetupConfig   `yaml:"setup" toml:"setup"`
}

// GridConfig defines how pictures are cut.
type GridConfig struct {
	Size    int  `yaml:"size" toml:"size"`       // Tiles per side
	Shuffle bool `yaml:"shuffle" toml:"shuffle"` // Permute tiles
	Rotate  bool `yaml:"rotate" toml:"rotate"`   // Turn tiles by random right angles
}

// SheetConfig defines the contact sheets written next to a bundle.
type SheetConfig struct {
	Gap        int    `yaml:"gap" toml:"gap"`
	Background string `yaml:"background" toml:"background"` // #rrggbb
	Titles     bool   `yaml:"titles" toml:"titles"`
}

// PlayConfig defines the interactive board.
type PlayConfig struct {
	CellWidth   int  `yaml:"cell_width" toml:"cell_width"` // Terminal columns per tile
	ShowPreview bool `yaml:"show_preview" toml:"show_preview"`
}

// StorageConfig locates the history database.
type StorageConfig struct {
	DBPath string `yaml:"db_path" toml:"db_path"`
}

// ServerConfig defines the SSH server.
type ServerConfig struct {
	Address            string `yaml:"address" toml:"address"`
	HostKey            string `yaml:"host_key" toml:"host_key"`
	IdleTimeoutMinutes int    `yaml:"idle_timeout_minutes" toml:"idle_timeout_minutes"`
	PictureDir         string `yaml:"picture_dir" toml:"picture_dir"`
}

// SetupConfig defines where sample archives are unpacked.
type SetupConfig struct {
	ArchiveDir string `yaml:"archive_dir" toml:"archive_dir"`
	TargetDir  string `yaml:"target_dir" toml:"target_dir"`
	Locator    string `yaml:"locator" toml:"locator"`
}

// Validate rejects settings no command can work with.
func (c Config) Validate() error {
	if c.Grid.Size < 1 {
		return fmt.Errorf("config: grid.size must be at least 1, got %d", c.Grid.Size)
	}
	if c.Sheet.Gap < 0 {
		return fmt.Errorf("config: sheet.gap must not be negative, got %d", c.Sheet.Gap)
	}
	if c.Play.CellWidth < 2 {
		return fmt.Errorf("config: play.cell_width must be at least 2, got %d", c.Play.CellWidth)
	}
	if c.Server.IdleTimeoutMinutes < 0 {
		return fmt.Errorf("config: server.idle_timeout_minutes must not be negative")
	}
	return nil
}

// Preset represents a named difficulty level.
type Preset string

const (
	PresetEasy   Preset = "easy"
	PresetNormal Preset = "normal"
	PresetHard   Preset = "hard"
)

// ApplyPreset overrides the grid settings for a difficulty preset.
// An empty preset leaves cfg untouched.
func ApplyPreset(cfg *Config, preset Preset) error {
	switch preset {
	case "":
		return nil
	case PresetEasy:
		cfg.Grid.Size = 3
		cfg.Grid.Rotate = false
	case PresetNormal:
		cfg.Grid.Size = 4
		cfg.Grid.Rotate = true
	case PresetHard:
		cfg.Grid.Size = 6
		cfg.Grid.Rotate = true
	default:
		return fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", preset)
	}
	cfg.Grid.Shuffle = true
	return nil
}
