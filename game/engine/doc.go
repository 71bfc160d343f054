// Package engine provides the core game logic for Shadok and Gibby.
//
// The engine package implements the game mechanics including:
//   - Occupancy grid with uniform random placement of entities
//   - Player movement with edge clamping and collision resolution
//   - Flower consumption, score accumulation and flower slot recycling
//   - Enemy pursuit: greedy enemy-to-flower assignment and one-step chase
//   - Win/loss detection against the configured score and step limits
//
// Core Types:
//
// Engine is the authoritative state machine. It owns a Grid (cell -> occupant
// index), a ScoreGenerator and the current State. State is the snapshot
// presenters read after every call; the grid is only an index over it.
//
// Usage:
//
//	cfg := engine.DefaultConfig()
//	eng, err := engine.NewEngine(cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	eng.StartGame()
//	if err := eng.Move(engine.Up.Vector()); err != nil {
//		// engine.ErrGameOver once the game reached a terminal status
//	}
//	state := eng.GetState()
//
// Game Rules:
//
// The player walks the board in eight directions collecting flowers worth a
// random number of points. Each real step counts against max_player_steps.
// Enemies cannot hurt the player but they race for the flowers nearest to
// the player and eat them first. Reaching min_player_scores wins the game,
// running out of steps loses it.
//
// Concurrency:
//
// Engine is not safe for concurrent use. Callers serialize access (see the
// service package).
package engine
