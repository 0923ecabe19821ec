// Package config provides process configuration and level management.
//
// Config is read from SOKOBAN_* environment variables (a .env file is
// loaded by main before parsing) and validated with struct tags:
//
//	SOKOBAN_LEVELS_DIR   directory holding level<N>.bin files (levels)
//	SOKOBAN_MAX_LEVEL    highest level sequential play reaches (20)
//	SOKOBAN_START_LEVEL  level loaded at startup (1)
//	SOKOBAN_SAVE_FILE    fixed snapshot slot (save.sav)
//	SOKOBAN_RECORDS_DB   sqlite file for best step counts, empty disables
//	SOKOBAN_LOG_FILE     JSON log file, empty disables logging
//	SOKOBAN_LOG_LEVEL    debug, info, warn or error
//	SOKOBAN_TICK         terminal redraw interval (50ms)
//
// Manager caches decoded levels from the levels directory and enforces the
// 1..MaxLevel range. It satisfies engine.LevelSource.
//
// Usage:
//
//	cfg, err := config.Load()
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	levels, err := config.NewManager(cfg.LevelsDir, cfg.MaxLevel)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	state := engine.NewGameState()
//	err = state.LoadLevel(levels, cfg.StartLevel)
package config
