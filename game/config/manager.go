package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/wricardo/sokoban/game/engine"
	"github.com/wricardo/sokoban/game/service"
)

var ErrLevelsDirNotFound = errors.New("levels directory not found")

// Manager handles level loading and caching for one levels directory
type Manager struct {
	levelsDir string
	maxLevel  int
	loader    *engine.LevelLoader
	levels    map[int]*engine.Level
	mu        sync.RWMutex
}

// NewManager creates a level manager. maxLevel <= 0 selects engine.DefaultMaxLevel.
func NewManager(levelsDir string, maxLevel int) (*Manager, error) {
	info, err := os.Stat(levelsDir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrLevelsDirNotFound, levelsDir)
	}
	if maxLevel <= 0 {
		maxLevel = engine.DefaultMaxLevel
	}

	return &Manager{
		levelsDir: levelsDir,
		maxLevel:  maxLevel,
		loader:    engine.NewLevelLoader(levelsDir),
		levels:    make(map[int]*engine.Level),
	}, nil
}

// Dir returns the levels directory
func (m *Manager) Dir() string {
	return m.levelsDir
}

// MaxLevel returns the highest level number sequential play may reach
func (m *Manager) MaxLevel() int {
	return m.maxLevel
}

// LoadLevel loads a level by number. Callers receive their own copy.
func (m *Manager) LoadLevel(number int) (*engine.Level, error) {
	if number < 1 || number > m.maxLevel {
		return nil, &engine.LoadError{
			Op:  "load level",
			Err: fmt.Errorf("%w: %d not in 1..%d", engine.ErrLevelOutOfRange, number, m.maxLevel),
		}
	}

	m.mu.RLock()
	// Check cache first
	if level, exists := m.levels[number]; exists {
		m.mu.RUnlock()
		return level.Clone(), nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if level, exists := m.levels[number]; exists {
		return level.Clone(), nil
	}

	level, err := m.loader.LoadLevel(number)
	if err != nil {
		return nil, err
	}

	m.levels[number] = level
	return level.Clone(), nil
}

// ListLevels returns information about every readable level file in range
func (m *Manager) ListLevels() ([]*service.LevelInfo, error) {
	entries, err := os.ReadDir(m.levelsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read levels directory: %w", err)
	}

	var levels []*service.LevelInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		number, ok := levelNumber(entry.Name())
		if !ok || number > m.maxLevel {
			continue
		}

		level, err := m.LoadLevel(number)
		if err != nil {
			// Skip unreadable levels
			continue
		}

		levels = append(levels, &service.LevelInfo{
			Number:      number,
			Filename:    entry.Name(),
			Rows:        level.Rows,
			Cols:        level.Cols,
			Goals:       engine.CountCells(level.Cells, engine.Goal),
			Boxes:       engine.CountBoxes(level.Boxes),
			GoalsFilled: engine.CountFilledGoals(level.Cells, level.Boxes),
		})
	}

	sort.Slice(levels, func(i, j int) bool { return levels[i].Number < levels[j].Number })
	return levels, nil
}

// RefreshCache drops every cached level so the next load rereads the files
func (m *Manager) RefreshCache() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.levels = make(map[int]*engine.Level)
}

// levelNumber parses N out of a level<N>.bin file name
func levelNumber(name string) (int, bool) {
	if !strings.HasPrefix(name, "level") || !strings.HasSuffix(name, ".bin") {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(name, "level"), ".bin"))
	if err != nil || n < 1 || engine.LevelFileName(n) != name {
		return 0, false
	}
	return n, true
}
