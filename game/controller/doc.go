// Package controller runs the game loop state machine shared by the front
// ends.
//
// A Controller owns one engine.GameState and moves between four phases:
//
//	Playing    moves and undo are applied
//	Paused     input other than the menu is ignored
//	Completed  every goal holds a box; the menu offers the next level
//	Stopped    the loop should exit
//
// Front ends decode raw input into Commands and feed them to Dispatch, and
// show Menu entries while paused or completed, passing the chosen entry to
// Select. Completions are written to the Recorder once per transition into
// Completed, and Save and Load go through the SnapshotStore.
package controller
