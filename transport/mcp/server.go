package mcp

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/wricardo/sokoban/game/service"
)

// Server exposes a GameService as MCP tools
type Server struct {
	service   service.GameService
	mcpServer *server.MCPServer
}

// NewServer creates an MCP server for the given game service
func NewServer(gameService service.GameService, version string) *Server {
	s := &Server{service: gameService}
	s.initMCPServer(version)
	return s
}

// initMCPServer initializes the MCP server with all tools
func (s *Server) initMCPServer(version string) {
	s.mcpServer = server.NewMCPServer(
		"Sokoban",
		version,
		server.WithToolCapabilities(true),
		server.WithInstructions(`Sokoban - MCP Interface

GAME OBJECTIVE:
Push every box ($) onto a goal (.) to complete the level. You (@) can push one
box at a time and can never pull a box.

AVAILABLE TOOLS:
- game_state: Get current game state and board
- move: Single move (up/down/left/right) - requires intent explanation
- bulk_move: Multiple moves at once - requires intent explanation
- undo: Take back the last move (only the last 32 moves can be undone)
- restart_level: Reload the current level
- next_level: Advance to the next level
- save_game / load_game: Use the single save slot
- list_levels: List available levels
- game_instructions: Get rules and strategy notes

NOTE: The 'intent' parameter on move/bulk_move tools serves as rubber duck debugging - explain your reasoning!`),
	)

	// Register all tools
	s.registerTools()
}

// registerTools registers all MCP tools
func (s *Server) registerTools() {
	noArgs := mcp.ToolInputSchema{
		Type:       "object",
		Properties: map[string]interface{}{},
	}

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the current game state: level, board rows, step count, undo depth and goal progress",
		InputSchema: noArgs,
	}, s.handleGameState)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "move",
		Description: "Move the player one cell. Walking into a box pushes it if the cell behind it is free.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"direction": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"up", "down", "left", "right"},
					"description": "Direction to move",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Why you are making this move",
				},
			},
			Required: []string{"direction", "intent"},
		},
	}, s.handleMove)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "bulk_move",
		Description: fmt.Sprintf("Execute up to %d moves in order. Stops at the first blocked move or when the level is complete.", service.MaxBulkMoves),
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"moves": map[string]interface{}{
					"type": "array",
					"items": map[string]interface{}{
						"type": "string",
						"enum": []string{"up", "down", "left", "right"},
					},
					"description": "Moves to execute",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "What this sequence is meant to achieve",
				},
			},
			Required: []string{"moves", "intent"},
		},
	}, s.handleBulkMove)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "undo",
		Description: "Undo the last move, pulling back a pushed box",
		InputSchema: noArgs,
	}, s.handleUndo)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "restart_level",
		Description: "Reload the current level from its file",
		InputSchema: noArgs,
	}, s.handleRestart)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "next_level",
		Description: "Load the next level",
		InputSchema: noArgs,
	}, s.handleNextLevel)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "save_game",
		Description: "Save the current game to the save slot, replacing the previous save",
		InputSchema: noArgs,
	}, s.handleSave)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "load_game",
		Description: "Restore the game from the save slot. The undo history starts empty.",
		InputSchema: noArgs,
	}, s.handleLoad)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "list_levels",
		Description: "List available levels with their sizes and goal counts",
		InputSchema: noArgs,
	}, s.handleListLevels)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get the rules, board legend and strategy notes",
		InputSchema: noArgs,
	}, s.handleGameInstructions)
}

// GetMCPServer returns the underlying MCP server
func (s *Server) GetMCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio serves MCP over the given streams until ctx is cancelled or
// stdin closes
func (s *Server) ServeStdio(ctx context.Context, stdin io.Reader, stdout io.Writer, errLog *log.Logger) error {
	stdio := server.NewStdioServer(s.mcpServer)
	if errLog != nil {
		stdio.SetErrorLogger(errLog)
	}
	return stdio.Listen(ctx, stdin, stdout)
}

// arguments returns the tool arguments, tolerating a missing object
func arguments(request mcp.CallToolRequest) map[string]interface{} {
	args, _ := request.Params.Arguments.(map[string]interface{})
	if args == nil {
		return map[string]interface{}{}
	}
	return args
}

func (s *Server) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	state, err := s.service.GetState(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatGameState(state)), nil
}

func (s *Server) handleMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	direction, _ := args["direction"].(string)
	intent, _ := args["intent"].(string)

	// Intent parameter serves as rubber duck debugging - we don't need to process it further
	_ = intent

	result, err := s.service.Move(ctx, direction)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatMoveResult(result)), nil
}

func (s *Server) handleBulkMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	movesRaw, _ := args["moves"].([]interface{})
	intent, _ := args["intent"].(string)

	// Intent parameter serves as rubber duck debugging - we don't need to process it further
	_ = intent

	// Convert moves to string array
	moves := make([]string, 0, len(movesRaw))
	for _, m := range movesRaw {
		if move, ok := m.(string); ok {
			moves = append(moves, move)
		}
	}
	if len(moves) == 0 {
		return mcp.NewToolResultError("moves must be a non-empty array of directions"), nil
	}

	result, err := s.service.BulkMove(ctx, moves)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatBulkMoveResult(result)), nil
}

func (s *Server) handleUndo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := s.service.Undo(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	headline := "Undid the last move."
	if !result.Undone {
		headline = "Nothing to undo."
	}
	return mcp.NewToolResultText(headline + "\n\n" + formatGameState(result.GameState)), nil
}

func (s *Server) handleRestart(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	state, err := s.service.Restart(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText("Level restarted.\n\n" + formatGameState(state)), nil
}

func (s *Server) handleNextLevel(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	state, err := s.service.NextLevel(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Now playing level %d.\n\n%s", state.Level, formatGameState(state))), nil
}

func (s *Server) handleSave(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	state, err := s.service.Save(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Game saved at level %d after %d steps.", state.Level, state.StepCount)), nil
}

func (s *Server) handleLoad(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	state, err := s.service.Load(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText("Game loaded.\n\n" + formatGameState(state)), nil
}

func (s *Server) handleListLevels(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	levels, err := s.service.ListLevels(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(levels) == 0 {
		return mcp.NewToolResultText("No levels available."), nil
	}

	var sb strings.Builder
	sb.WriteString("Available levels:\n")
	for _, l := range levels {
		sb.WriteString(fmt.Sprintf("- Level %d (%s): %dx%d, %d goals, %d boxes\n",
			l.Number, l.Filename, l.Rows, l.Cols, l.Goals, l.Boxes))
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func (s *Server) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `Sokoban - Complete Instructions

GAME OBJECTIVE:
Push every box onto a goal cell. The level is complete when no goal is empty.

RULES:
- Each move walks one cell up, down, left or right
- Walking into a box pushes it one cell, if the cell behind it is inside the
  board and is neither a wall nor another box
- Boxes cannot be pulled; only the last 32 moves can be undone
- Moves are ignored once the level is complete; use next_level or
  restart_level

BOARD LEGEND:
  #  wall
  .  goal
  $  box
  *  box on goal
  @  player
  +  player on goal
     (space) floor

Rows are numbered from 0 at the top, columns from 0 at the left.

STRATEGY NOTES:
- A box pushed into a corner that is not a goal can never be moved again
- A box against a wall can only slide along that wall
- Plan the order boxes are delivered so early boxes do not block later ones
- Use bulk_move for corridors and undo to back out of dead ends
- save_game before trying a risky sequence; load_game restores it`

	return mcp.NewToolResultText(instructions), nil
}
