package engine

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Snapshot returns the current state as a Level value, which is also the
// in-memory form of a save file. The undo window is not part of it.
func (gs *GameState) Snapshot() (*Level, error) {
	if !gs.Loaded() {
		return nil, ErrNoLevelLoaded
	}
	return &Level{
		Number: gs.level,
		Rows:   gs.rows,
		Cols:   gs.cols,
		Player: gs.player,
		Cells:  gs.Grid(),
		Boxes:  gs.Boxes(),
	}, nil
}

// Restore installs a snapshot. Like a level load it starts a fresh undo
// window and step count. On error the state is left untouched.
func (gs *GameState) Restore(snap *Level) error {
	if snap.Number < 1 {
		return fmt.Errorf("%w: level %d", ErrInvalid, snap.Number)
	}
	return gs.Reset(snap)
}

// EncodeSnapshot writes the save format: the shared header, then one field
// byte per cell, then one box byte per cell
func EncodeSnapshot(w io.Writer, snap *Level) error {
	if err := validateLevel(snap); err != nil {
		return err
	}

	hdr := fileHeader{
		Level:     int32(snap.Number),
		Rows:      int32(snap.Rows),
		Cols:      int32(snap.Cols),
		PlayerRow: int32(snap.Player.Row),
		PlayerCol: int32(snap.Player.Col),
	}
	if err := binary.Write(w, binary.NativeEndian, &hdr); err != nil {
		return fmt.Errorf("write snapshot header: %w", err)
	}

	n := len(snap.Cells)
	body := make([]byte, 2*n)
	for i, kind := range snap.Cells {
		switch kind {
		case Wall:
			body[i] = codeWall
		case Goal:
			body[i] = codeGoal
		default:
			body[i] = codeEmpty
		}
		if snap.Boxes[i] {
			body[n+i] = codeBox
		}
	}
	if _, err := w.Write(body); err != nil {
		return fmt.Errorf("write snapshot cells: %w", err)
	}
	return nil
}

// DecodeSnapshot parses the save format produced by EncodeSnapshot
func DecodeSnapshot(r io.Reader) (*Level, error) {
	hdr, err := readHeader(r, "decode snapshot")
	if err != nil {
		return nil, err
	}
	if hdr.Level < 1 {
		return nil, &LoadError{Op: "decode snapshot", Err: fmt.Errorf("%w: level %d", ErrInvalid, hdr.Level)}
	}

	snap := &Level{
		Number: int(hdr.Level),
		Rows:   int(hdr.Rows),
		Cols:   int(hdr.Cols),
		Player: Position{Row: int(hdr.PlayerRow), Col: int(hdr.PlayerCol)},
	}

	n := snap.Rows * snap.Cols
	body := make([]byte, 2*n)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, &LoadError{Op: "decode snapshot", Err: readErr(err)}
	}

	snap.Cells = make([]CellKind, n)
	snap.Boxes = make([]bool, n)
	for i := 0; i < n; i++ {
		switch body[i] {
		case codeWall:
			snap.Cells[i] = Wall
		case codeGoal:
			snap.Cells[i] = Goal
		}
		snap.Boxes[i] = body[n+i] == codeBox
	}

	if err := checkLayers(snap.Cells, snap.Boxes, snap.Cols, snap.Player); err != nil {
		return nil, &LoadError{Op: "decode snapshot", Err: err}
	}
	return snap, nil
}
