package main

import (
	"errors"

	"github.com/vovakirdan/tui-jigsaw/internal/puzzle"
)

// describe prefixes errors from the puzzle core with their class.
func describe(err error) string {
	switch {
	case errors.Is(err, puzzle.ErrConsistency):
		return "inconsistent placement metadata: " + err.Error()
	case errors.Is(err, puzzle.ErrInput):
		return "invalid input: " + err.Error()
	default:
		return err.Error()
	}
}
