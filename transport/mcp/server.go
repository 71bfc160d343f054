package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"

	"github.com/wricardo/shadok-gibby/game/engine"
	"github.com/wricardo/shadok-gibby/game/service"
	"github.com/wricardo/shadok-gibby/transport/terminal"
)

const (
	serverName    = "Shadok and Gibby"
	serverVersion = "1.0.0"
)

// configKeys are the create_session arguments that override the defaults
var configKeys = []string{
	"field_width", "field_height", "number_of_enemies", "number_of_flowers",
	"flower_scores_min", "flower_scores_max", "max_player_steps", "min_player_scores",
}

// Server maps MCP tool calls onto a GameService
type Server struct {
	svc       service.GameService
	configs   service.ConfigProvider
	log       logrus.FieldLogger
	mcpServer *server.MCPServer
}

// NewServer creates an MCP server with all game tools registered
func NewServer(svc service.GameService, configs service.ConfigProvider, log logrus.FieldLogger) *Server {
	if log == nil {
		log = logrus.StandardLogger()
	}
	s := &Server{svc: svc, configs: configs, log: log}

	s.mcpServer = server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithToolCapabilities(true),
		server.WithInstructions(`Shadok and Gibby - MCP Interface

GAME OBJECTIVE:
Walk the player (@) onto flowers (*) to collect their points. Reach the
minimum score before running out of steps. Enemies (E) block you and eat
flowers too.

AVAILABLE TOOLS:
- create_session: Create a new game session
- list_sessions: List all active sessions
- delete_session: Remove a session
- start_game: Start (or restart) the game in a session
- move: Play one turn
- game_state: Get the board and counters
- game_instructions: Full rules

NOTE: The 'intent' parameter on move serves as rubber duck debugging - explain your reasoning!`),
	)

	s.registerTools()
	return s
}

// MCPServer returns the underlying MCP server for serving
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio blocks serving the protocol on stdin/stdout
func (s *Server) ServeStdio() error {
	s.log.Info("serving MCP over stdio")
	return server.ServeStdio(s.mcpServer)
}

func sessionIDSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Session ID",
	}
}

// registerTools registers all MCP tools
func (s *Server) registerTools() {
	createProps := map[string]interface{}{}
	for _, key := range configKeys {
		createProps[key] = map[string]interface{}{
			"type":        "integer",
			"description": fmt.Sprintf("Override %s (optional)", key),
		}
	}

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new game session. Unset keys use the server configuration.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: createProps,
		},
	}, s.handleCreateSession)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active game sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleListSessions)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "delete_session",
		Description: "Delete a game session",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{"session_id": sessionIDSchema()},
			Required:   []string{"session_id"},
		},
	}, s.handleDeleteSession)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "start_game",
		Description: "Start a new game in the session, discarding the current one",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{"session_id": sessionIDSchema()},
			Required:   []string{"session_id"},
		},
	}, s.handleStartGame)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "move",
		Description: "Move the player one cell; enemies answer unless the move was blocked",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDSchema(),
				"direction": map[string]interface{}{
					"type":        "string",
					"description": "Direction to move (y grows upwards)",
					"enum":        engine.DirectionNames(),
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Why you chose this move",
				},
			},
			Required: []string{"session_id", "direction"},
		},
	}, s.handleMove)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the current game state",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{"session_id": sessionIDSchema()},
			Required:   []string{"session_id"},
		},
	}, s.handleGameState)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get the game rules and conventions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleGameInstructions)
}

func arguments(request mcp.CallToolRequest) map[string]interface{} {
	args, _ := request.Params.Arguments.(map[string]interface{})
	if args == nil {
		return map[string]interface{}{}
	}
	return args
}

func (s *Server) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	config, err := configFromArgs(s.configs.Current(), arguments(request))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	info, err := s.svc.CreateSession(ctx, config)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	cfg := info.GameConfig
	result := fmt.Sprintf("Created session: %s\nField: %dx%d | Enemies: %d | Flowers: %d | Goal: %d points in %d steps\nCall start_game to begin.\n",
		info.ID, cfg.FieldWidth, cfg.FieldHeight, cfg.NumberOfEnemies, cfg.NumberOfFlowers,
		cfg.MinPlayerScores, cfg.MaxPlayerSteps)
	return mcp.NewToolResultText(result), nil
}

// configFromArgs applies the overrides to a copy of base. It returns nil
// when no override is present so the service uses its own configuration.
func configFromArgs(base *engine.Config, args map[string]interface{}) (*engine.Config, error) {
	var config *engine.Config
	for _, key := range configKeys {
		raw, ok := args[key]
		if !ok {
			continue
		}
		n, ok := raw.(float64)
		if !ok || n < 0 || n != float64(int(n)) {
			return nil, fmt.Errorf("%s must be a non-negative integer", key)
		}
		if config == nil {
			copied := *base
			config = &copied
		}
		v := int(n)
		switch key {
		case "field_width":
			config.FieldWidth = v
		case "field_height":
			config.FieldHeight = v
		case "number_of_enemies":
			config.NumberOfEnemies = uint(v)
		case "number_of_flowers":
			config.NumberOfFlowers = uint(v)
		case "flower_scores_min":
			config.FlowerScoresMin = uint(v)
		case "flower_scores_max":
			config.FlowerScoresMax = uint(v)
		case "max_player_steps":
			config.MaxPlayerSteps = uint(v)
		case "min_player_scores":
			config.MinPlayerScores = uint(v)
		}
	}
	return config, nil
}

func (s *Server) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessions, err := s.svc.ListSessions(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Active Sessions (%d):\n\n", len(sessions))
	for _, info := range sessions {
		status := "not started"
		if info.Started {
			status = info.GameState.Status.String()
		}
		fmt.Fprintf(&b, "- %s (%s, score %d, steps %d, created %s)\n",
			info.ID, status, info.GameState.Player.Score, info.GameState.Player.Steps,
			info.CreatedAt.Format("15:04:05"))
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) handleDeleteSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	if err := s.svc.DeleteSession(ctx, sessionID); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Deleted session: %s", sessionID)), nil
}

func (s *Server) handleStartGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	info, err := s.svc.GetSession(ctx, sessionID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	state, err := s.svc.Start(ctx, sessionID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatGameState(*state, info.GameConfig)), nil
}

func (s *Server) handleMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)
	name, _ := args["direction"].(string)
	intent, _ := args["intent"].(string)

	direction, err := engine.ParseDirection(name)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("%v (valid: %s)", err, strings.Join(engine.DirectionNames(), ", "))), nil
	}

	info, err := s.svc.GetSession(ctx, sessionID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.svc.Move(ctx, sessionID, direction)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	s.log.WithFields(logrus.Fields{
		"session":   sessionID,
		"direction": direction,
		"intent":    intent,
	}).Debug("mcp move")

	return mcp.NewToolResultText(formatMoveResult(result, info.GameConfig)), nil
}

func (s *Server) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	info, err := s.svc.GetSession(ctx, sessionID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if !info.Started {
		return mcp.NewToolResultText(fmt.Sprintf("Session %s has no game yet. Call start_game.", info.ID)), nil
	}
	return mcp.NewToolResultText(formatGameState(info.GameState, info.GameConfig)), nil
}

func (s *Server) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(instructions), nil
}

const instructions = `# Shadok and Gibby

## Board
- The field is a grid; (0,0) is the bottom-left cell and y grows upwards.
- @ is you, E is an enemy, * is a flower, . is empty.
- Every cell holds at most one token.

## Turns
1. You move one cell in one of nine directions: up, down, left, right,
   up_left, up_right, down_left, down_right, or none.
2. Moving off the board is clamped to the edge. Moving into an enemy, into
   the edge, or choosing none is a blocked move: nothing else happens and no
   step is used.
3. Stepping onto a flower adds its points to your score. The flower then
   grows again somewhere else with a new value.
4. After every successful move each enemy may step toward a flower. The
   flowers closest to you are targeted first, each by the nearest free enemy.
   Enemies that reach a flower eat it and it regrows elsewhere.

## Winning
- Reach the minimum score to win.
- Use up all your steps before that and you lose.
- Winning is checked before losing.

## Tips
- Flowers near you attract enemies: grab them first.
- Blocked moves are free, but they do not make enemies move either.
`

func formatGameState(state engine.State, config *engine.Config) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Position: %s | Score: %d/%d | Steps: %d/%d | Status: %s\n\n",
		state.Player.Position, state.Player.Score, config.MinPlayerScores,
		state.Player.Steps, config.MaxPlayerSteps, state.Status)

	b.WriteString(terminal.RenderBoard(state, config))

	b.WriteString("\nFlowers:\n")
	for i, pos := range state.Flowers.Positions {
		fmt.Fprintf(&b, "- %s worth %d\n", pos, state.Flowers.Scores[i])
	}
	if len(state.Enemies.Positions) > 0 {
		b.WriteString("Enemies:")
		for _, pos := range state.Enemies.Positions {
			fmt.Fprintf(&b, " %s", pos)
		}
		b.WriteString("\n")
	}

	switch state.Status {
	case engine.PlayerWon:
		b.WriteString("\nVICTORY! Call start_game to play again.")
	case engine.PlayerLost:
		b.WriteString("\nGAME OVER. Call start_game to play again.")
	}

	return b.String()
}

func formatMoveResult(result *service.MoveResult, config *engine.Config) string {
	var b strings.Builder

	if result.Moved {
		fmt.Fprintf(&b, "✓ %s: %s→%s", result.Direction, result.From, result.To)
	} else {
		fmt.Fprintf(&b, "✗ %s: blocked at %s", result.Direction, result.From)
	}
	if result.ScoreDelta > 0 {
		fmt.Fprintf(&b, " (+%d)", result.ScoreDelta)
	}
	b.WriteString("\n")

	if len(result.Events) > 0 {
		b.WriteString("Events:\n")
		for _, event := range result.Events {
			fmt.Fprintf(&b, "- %s: %s\n", event.Type, event.Message)
		}
	}

	b.WriteString("\n" + formatGameState(result.GameState, config))
	return b.String()
}
