// Package service provides the business logic layer for Shadok and Gibby.
//
// The service package implements:
//   - Multi-session game management
//   - Turn processing with per-turn event reports
//   - Serialized access to the per-session engines
//
// Core Interfaces:
//
// GameService is the main service interface used by every presenter.
// SessionManager handles session creation, retrieval, and lifecycle.
// ConfigProvider supplies the configuration for new sessions.
//
// Architecture:
//
// The service layer sits between the presenters (terminal, MCP, bots) and
// the game engine. Each session owns its own engine. Move compares the state
// before and after the turn and reports what changed as GameEvents:
// player_moved or player_blocked, flower_eaten, enemy_moved,
// flower_respawned, and won or lost.
//
// Usage:
//
//	sessions := session.NewManager(logger)
//	configs := config.NewManager(path, logger)
//	configs.LoadOrInit()
//	gameService := service.NewGameService(sessions, configs, logger)
//
//	info, err := gameService.CreateSession(ctx, nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//	gameService.Start(ctx, info.ID)
//	result, err := gameService.Move(ctx, info.ID, engine.UpLeft)
package service
