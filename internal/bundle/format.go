package bundle

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-jigsaw/internal/puzzle"
)

// formatVersion is bumped when the placement file layout changes.
const formatVersion = 1

// YAMLBundle is the placement.yaml document.
type YAMLBundle struct {
	Version  int         `yaml:"version"`
	RunID    string      `yaml:"run_id,omitempty"`
	Source   string      `yaml:"source,omitempty"`
	Seed     int64       `yaml:"seed,omitempty"`
	GridSize int         `yaml:"grid_size"`
	Tiles    []YAMLEntry `yaml:"tiles"`
}

// YAMLEntry is one placement entry, keyed by original grid index.
type YAMLEntry struct {
	Orig      int `yaml:"orig"`
	ShuffleID int `yaml:"shuffle_id"`
	Angle     int `yaml:"angle"`
}

// EncodePlacement renders pm as a bare placement document.
func EncodePlacement(pm puzzle.PlacementMap) ([]byte, error) {
	return yaml.Marshal(toYAML(pm, Meta{}))
}

// DecodePlacement parses a placement document produced by EncodePlacement or
// found in a bundle's placement.yaml.
func DecodePlacement(data []byte) (puzzle.PlacementMap, error) {
	pm, _, err := parse(data)
	return pm, err
}

// Meta is the descriptive part of a bundle.
type Meta struct {
	RunID  string
	Source string
	Seed   int64
}

func toYAML(pm puzzle.PlacementMap, meta Meta) YAMLBundle {
	doc := YAMLBundle{
		Version:  formatVersion,
		RunID:    meta.RunID,
		Source:   meta.Source,
		Seed:     meta.Seed,
		GridSize: pm.GridSize(),
		Tiles:    make([]YAMLEntry, pm.Len()),
	}
	for k, e := range pm.Entries() {
		doc.Tiles[k] = YAMLEntry{Orig: k, ShuffleID: e.ShuffleID, Angle: int(e.Angle)}
	}
	return doc
}

func parse(data []byte) (puzzle.PlacementMap, Meta, error) {
	var doc YAMLBundle
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return puzzle.PlacementMap{}, Meta{}, fmt.Errorf("bundle: yaml unmarshal: %w", err)
	}
	if doc.Version > formatVersion {
		return puzzle.PlacementMap{}, Meta{}, fmt.Errorf("bundle: unsupported version %d", doc.Version)
	}

	meta := Meta{RunID: doc.RunID, Source: doc.Source, Seed: doc.Seed}
	if doc.GridSize*doc.GridSize != len(doc.Tiles) {
		return puzzle.PlacementMap{}, meta, puzzle.ConsistencyError{
			Code:    "NOT_SQUARE",
			Message: fmt.Sprintf("grid size %d does not match %d tile entries", doc.GridSize, len(doc.Tiles)),
		}
	}

	entries := make([]puzzle.PlacementEntry, len(doc.Tiles))
	filled := make([]bool, len(doc.Tiles))
	for _, t := range doc.Tiles {
		if t.Orig < 0 || t.Orig >= len(entries) {
			return puzzle.PlacementMap{}, meta, puzzle.ConsistencyError{
				Code:    "OUT_OF_RANGE",
				Message: fmt.Sprintf("original index %d outside [0, %d)", t.Orig, len(entries)),
			}
		}
		if filled[t.Orig] {
			return puzzle.PlacementMap{}, meta, puzzle.ConsistencyError{
				Code:    "DUPLICATE_ORIGIN",
				Message: fmt.Sprintf("original index %d listed twice", t.Orig),
			}
		}
		filled[t.Orig] = true
		entries[t.Orig] = puzzle.PlacementEntry{ShuffleID: t.ShuffleID, Angle: puzzle.Angle(t.Angle)}
	}

	pm, err := puzzle.NewPlacementMap(entries)
	return pm, meta, err
}
