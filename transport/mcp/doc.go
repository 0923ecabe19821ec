// Package mcp provides a Model Context Protocol server for Sokoban.
//
// The server runs over stdio for a single local agent and exposes these
// tools:
//   - game_state: current level, numbered board and goal progress
//   - move: single directional move
//   - bulk_move: up to service.MaxBulkMoves moves in sequence
//   - undo: take back the last move
//   - restart_level, next_level: level navigation
//   - save_game, load_game: the single save slot
//   - list_levels: available level files
//   - game_instructions: rules and legend
//
// Usage:
//
//	srv := mcp.NewServer(gameService, version)
//	if err := srv.ServeStdio(ctx, os.Stdin, os.Stdout, nil); err != nil {
//		log.Fatal(err)
//	}
//
// Every tool returns plain text. Service errors become tool errors rather
// than protocol errors, so an agent sees the message and can retry.
package mcp
