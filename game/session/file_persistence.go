package session

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/wricardo/sokoban/game/engine"
)

// FilePersistence implements SnapshotPersistence with one binary save file
type FilePersistence struct {
	path string
}

// NewFilePersistence creates a file-backed save slot, creating the parent
// directory if needed
func NewFilePersistence(path string) (*FilePersistence, error) {
	if path == "" {
		return nil, fmt.Errorf("save file path cannot be empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create save directory: %w", err)
	}
	return &FilePersistence{path: path}, nil
}

// Path returns the save file location
func (fp *FilePersistence) Path() string {
	return fp.path
}

// Save writes the snapshot to a temporary file and renames it over the save
// file, so a failed save never clobbers the previous snapshot
func (fp *FilePersistence) Save(snap *engine.Level) error {
	if snap == nil {
		return fmt.Errorf("snapshot cannot be nil")
	}

	tmp, err := os.CreateTemp(filepath.Dir(fp.path), filepath.Base(fp.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp save file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // no-op after a successful rename

	bw := bufio.NewWriter(tmp)
	if err := engine.EncodeSnapshot(bw, snap); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := bw.Flush(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write save file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync save file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close save file: %w", err)
	}

	if err := os.Rename(tmpPath, fp.path); err != nil {
		return fmt.Errorf("failed to replace save file: %w", err)
	}
	return nil
}

// Load reads and decodes the save file
func (fp *FilePersistence) Load() (*engine.Level, error) {
	f, err := os.Open(fp.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &engine.LoadError{Op: "load snapshot", Path: fp.path, Err: engine.ErrNotFound}
		}
		return nil, &engine.LoadError{Op: "load snapshot", Path: fp.path, Err: err}
	}
	defer f.Close()

	snap, err := engine.DecodeSnapshot(bufio.NewReader(f))
	if err != nil {
		var le *engine.LoadError
		if errors.As(err, &le) {
			le.Path = fp.path
			return nil, le
		}
		return nil, &engine.LoadError{Op: "load snapshot", Path: fp.path, Err: err}
	}
	return snap, nil
}

// Delete removes the save file
func (fp *FilePersistence) Delete() error {
	if !fp.Exists() {
		return &engine.LoadError{Op: "delete snapshot", Path: fp.path, Err: engine.ErrNotFound}
	}
	if err := os.Remove(fp.path); err != nil {
		return fmt.Errorf("failed to remove save file: %w", err)
	}
	return nil
}

// Exists checks if the save file exists
func (fp *FilePersistence) Exists() bool {
	info, err := os.Stat(fp.path)
	return err == nil && !info.IsDir()
}
