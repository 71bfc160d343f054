// Package config provides configuration management for Shadok and Gibby.
//
// The config package handles:
//   - Locating the configuration file under the user config directory
//   - Loading the YAML file on top of the built-in defaults
//   - Validation through engine.ValidateConfig
//   - Writing the defaults on first run
//
// Configuration Format:
//
//	# Shadok and Gibby config
//
//	field_width: 18
//	field_height: 18
//	number_of_enemies: 5
//	number_of_flowers: 15
//	flower_scores_min: 5
//	flower_scores_max: 10
//	max_player_steps: 100
//	min_player_scores: 100
//
// Keys that are missing from the file keep their default value.
//
// Usage:
//
//	path, _ := config.DefaultPath()
//	manager := config.NewManager(path, logger)
//
//	// Valid file, or defaults (written to disk when the file is missing)
//	gameConfig := manager.LoadOrInit()
package config
