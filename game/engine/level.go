package engine

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Cell codes used by level files
const (
	codeEmpty   byte = 0
	codeWall    byte = 1
	codeGoal    byte = 2
	codeBox     byte = 3
	codeGoalBox byte = 4
)

// fileHeader is the fixed-width prefix shared by level and save files.
// Integers are 4 bytes in host byte order.
type fileHeader struct {
	Level     int32
	Rows      int32
	Cols      int32
	PlayerRow int32
	PlayerCol int32
}

// LevelSource provides decoded levels by number
type LevelSource interface {
	LoadLevel(number int) (*Level, error)
}

// LevelLoader reads level<N>.bin files from a directory
type LevelLoader struct {
	Dir string
}

// NewLevelLoader creates a loader rooted at dir
func NewLevelLoader(dir string) *LevelLoader {
	return &LevelLoader{Dir: dir}
}

// LevelFileName returns the file name used for a level number
func LevelFileName(number int) string {
	return fmt.Sprintf("level%d.bin", number)
}

// LevelPath returns the path of a level file inside dir
func LevelPath(dir string, number int) string {
	return filepath.Join(dir, LevelFileName(number))
}

// LoadLevel reads and decodes the level file for number
func (l *LevelLoader) LoadLevel(number int) (*Level, error) {
	if number < 1 {
		return nil, &LoadError{Op: "load level", Err: fmt.Errorf("%w: %d", ErrLevelOutOfRange, number)}
	}
	return ReadLevelFile(LevelPath(l.Dir, number))
}

// ReadLevelFile opens and decodes a single level file
func ReadLevelFile(path string) (*Level, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &LoadError{Op: "load level", Path: path, Err: ErrNotFound}
		}
		return nil, &LoadError{Op: "load level", Path: path, Err: err}
	}
	defer f.Close()

	level, err := DecodeLevel(bufio.NewReader(f))
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Path = path
			return nil, le
		}
		return nil, &LoadError{Op: "load level", Path: path, Err: err}
	}
	return level, nil
}

// DecodeLevel parses the binary level format
func DecodeLevel(r io.Reader) (*Level, error) {
	hdr, err := readHeader(r, "decode level")
	if err != nil {
		return nil, err
	}

	level := &Level{
		Number: int(hdr.Level),
		Rows:   int(hdr.Rows),
		Cols:   int(hdr.Cols),
		Player: Position{Row: int(hdr.PlayerRow), Col: int(hdr.PlayerCol)},
	}

	body := make([]byte, level.Rows*level.Cols)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, &LoadError{Op: "decode level", Err: readErr(err)}
	}

	level.Cells = make([]CellKind, len(body))
	level.Boxes = make([]bool, len(body))
	for i, code := range body {
		level.Cells[i], level.Boxes[i] = decodeCell(code)
	}

	if err := checkLayers(level.Cells, level.Boxes, level.Cols, level.Player); err != nil {
		return nil, &LoadError{Op: "decode level", Err: err}
	}

	return level, nil
}

// EncodeLevel writes level in the binary level format
func EncodeLevel(w io.Writer, level *Level) error {
	if err := checkShape(level.Rows, level.Cols, level.Player); err != nil {
		return err
	}
	if len(level.Cells) != level.Rows*level.Cols || len(level.Boxes) != len(level.Cells) {
		return fmt.Errorf("%w: buffers do not match %dx%d", ErrInvalid, level.Rows, level.Cols)
	}

	hdr := fileHeader{
		Level:     int32(level.Number),
		Rows:      int32(level.Rows),
		Cols:      int32(level.Cols),
		PlayerRow: int32(level.Player.Row),
		PlayerCol: int32(level.Player.Col),
	}
	if err := binary.Write(w, binary.NativeEndian, &hdr); err != nil {
		return fmt.Errorf("write level header: %w", err)
	}

	body := make([]byte, len(level.Cells))
	for i := range level.Cells {
		code, err := encodeCell(level.Cells[i], level.Boxes[i])
		if err != nil {
			return fmt.Errorf("cell %d: %w", i, err)
		}
		body[i] = code
	}
	if _, err := w.Write(body); err != nil {
		return fmt.Errorf("write level cells: %w", err)
	}
	return nil
}

// WriteLevelFile encodes level into path
func WriteLevelFile(path string, level *Level) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create level file: %w", err)
	}
	bw := bufio.NewWriter(f)
	if err := EncodeLevel(bw, level); err != nil {
		f.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("flush level file: %w", err)
	}
	return f.Close()
}

func readHeader(r io.Reader, op string) (fileHeader, error) {
	var hdr fileHeader
	if err := binary.Read(r, binary.NativeEndian, &hdr); err != nil {
		return hdr, &LoadError{Op: op, Err: readErr(err)}
	}
	player := Position{Row: int(hdr.PlayerRow), Col: int(hdr.PlayerCol)}
	if err := checkShape(int(hdr.Rows), int(hdr.Cols), player); err != nil {
		return hdr, &LoadError{Op: op, Err: err}
	}
	return hdr, nil
}

// checkShape validates dimensions and the player position
func checkShape(rows, cols int, player Position) error {
	if rows <= 0 || cols <= 0 {
		return fmt.Errorf("%w: dimensions %dx%d", ErrInvalid, rows, cols)
	}
	if int64(rows)*int64(cols) > MaxCells {
		return fmt.Errorf("%w: %dx%d exceeds %d cells", ErrInvalid, rows, cols, MaxCells)
	}
	if player.Row < 0 || player.Row >= rows || player.Col < 0 || player.Col >= cols {
		return fmt.Errorf("%w: player %s outside %dx%d grid", ErrInvalid, player, rows, cols)
	}
	return nil
}

func readErr(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return ErrTruncated
	}
	return err
}

// decodeCell splits a level byte into its cell kind and box bit.
// Unknown codes decode as an empty cell without a box.
func decodeCell(code byte) (CellKind, bool) {
	switch code {
	case codeWall:
		return Wall, false
	case codeGoal:
		return Goal, false
	case codeBox:
		return Empty, true
	case codeGoalBox:
		return Goal, true
	default:
		return Empty, false
	}
}

func encodeCell(kind CellKind, box bool) (byte, error) {
	switch {
	case kind == Wall && box:
		return 0, fmt.Errorf("%w: box on wall", ErrInvalid)
	case kind == Wall:
		return codeWall, nil
	case kind == Goal && box:
		return codeGoalBox, nil
	case kind == Goal:
		return codeGoal, nil
	case box:
		return codeBox, nil
	default:
		return codeEmpty, nil
	}
}
