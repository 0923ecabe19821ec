package levels

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/wricardo/sokoban/game/engine"
)

// ErrInvalidLevel is returned when a parsed level fails validation
var ErrInvalidLevel = errors.New("invalid level")

// Build parses every level in src, validates them all and writes them to
// dir as level<N>.bin, numbering from first. Nothing is written unless
// every level is valid. It returns the written paths.
func Build(src io.Reader, dir string, first int) ([]string, error) {
	if first < 1 {
		return nil, fmt.Errorf("%w: first level must be at least 1, got %d", engine.ErrLevelOutOfRange, first)
	}
	parsed, err := Parse(src)
	if err != nil {
		return nil, err
	}

	for i, level := range parsed {
		level.Number = first + i
		if result := Validate(level); !result.Valid {
			return nil, fmt.Errorf("%w: level %d: %s", ErrInvalidLevel, level.Number, strings.Join(result.Errors, "; "))
		}
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create levels dir: %w", err)
	}

	paths := make([]string, 0, len(parsed))
	for _, level := range parsed {
		path := engine.LevelPath(dir, level.Number)
		if err := engine.WriteLevelFile(path, level); err != nil {
			return paths, fmt.Errorf("write level %d: %w", level.Number, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
