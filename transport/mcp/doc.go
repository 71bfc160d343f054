// Package mcp exposes Shadok and Gibby to AI agents over the Model Context
// Protocol.
//
// MCP Tools:
//   - create_session: Create a new game session, optionally overriding config keys
//   - list_sessions: List all active sessions
//   - delete_session: Remove a session
//   - start_game: Deal a fresh board in a session
//   - move: Play one turn in one of nine directions
//   - game_state: Get the board and counters of a session
//   - game_instructions: Rules and coordinate conventions
//
// The server only speaks stdio. Stdout carries protocol frames, so callers
// must send logs to stderr.
//
// Usage:
//
//	srv := mcp.NewServer(gameService, configManager, logger)
//	if err := srv.ServeStdio(); err != nil {
//		log.Fatal(err)
//	}
package mcp
