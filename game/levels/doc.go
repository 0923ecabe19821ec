// Package levels converts between the plain text level format and engine
// levels, and checks levels before they are written as level files.
//
// The text format uses one character per cell:
//
//	#  wall
//	.  goal
//	$  box
//	*  box on a goal
//	@  player
//	+  player on a goal
//	   floor (space, '-' or '_')
//
// A file may hold several levels separated by blank lines. Lines starting
// with ';' are comments and also end the current level.
package levels
