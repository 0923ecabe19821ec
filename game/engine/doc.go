// Package engine provides the core game logic for terminal Sokoban.
//
// The engine package implements the game mechanics including:
//   - Grid-based movement with box pushing and collision detection
//   - A bounded undo window of the most recent moves
//   - Level completion detection
//   - Binary level and save file codecs
//
// Core Types:
//
// GameState owns the grid, the box overlay, the player position, the step
// counter and the StepHistory undo window. Levels are decoded into Level
// values by a LevelSource, normally a LevelLoader reading level<N>.bin files.
//
// Usage:
//
//	state := engine.NewGameState()
//	if err := state.LoadLevel(engine.NewLevelLoader("levels"), 1); err != nil {
//		log.Fatal(err)
//	}
//
//	if state.ApplyMove(engine.Right) && state.IsComplete() {
//		fmt.Println("solved in", state.StepCount(), "steps")
//	}
//	state.Undo()
//
// Game Rules:
//
// The player walks on empty and goal cells and pushes a box by walking into
// it, provided the cell behind the box is inside the grid, not a wall and not
// another box. A level is complete when every goal cell holds a box. Only the
// last MaxUndo moves can be undone; older moves fall out of the window.
package engine
