// Package service provides the business logic layer for remote front ends.
//
// GameService wraps a single controller.Controller behind a mutex so that
// concurrent tool calls from the MCP transport are applied one at a time.
// Results are JSON friendly: the board is rendered as text rows using the
// level text symbols, and rejected moves carry an AttemptInfo naming the
// cell that blocked them.
//
// Usage:
//
//	ctrl, err := controller.New(ctx, controller.Options{Levels: levels})
//	if err != nil {
//		log.Fatal(err)
//	}
//	gameService := service.NewGameService(ctrl, levels)
//
//	result, err := gameService.BulkMove(ctx, []string{"up", "up", "left"})
//
// BulkMove executes at most MaxBulkMoves moves and stops at the first
// rejected move or when the level is completed.
package service
