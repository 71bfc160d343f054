package engine

import "fmt"

// movePlayer resolves the player's half-turn. It reports whether the player
// actually changed cell; blocked moves leave steps and score untouched.
func (e *Engine) movePlayer(direction Vector) bool {
	prev := e.state.Player.Position
	next := e.grid.Clamp(prev.Add(direction))

	if next == prev {
		e.state.Sound = SoundPlayerCouldNotMove
		return false
	}

	switch kind := e.grid.Get(next); kind {
	case Empty:
		e.relocatePlayer(prev, next)
		e.state.Sound = SoundPlayerMoved

	case PlayerKind:
		e.fatal(fmt.Errorf("second player at %s", next))

	case EnemyKind:
		// Enemies are solid; bumping into one costs nothing.
		e.state.Sound = SoundPlayerCouldNotMove
		return false

	case FlowerKind:
		e.relocatePlayer(prev, next)
		e.eatFlowerByPlayer(next)
		e.state.Sound = SoundPlayerAteFlower

	default:
		e.fatal(fmt.Errorf("unknown occupant %s at %s", kind, next))
	}

	return true
}

func (e *Engine) relocatePlayer(from, to Position) {
	e.grid.Set(from, Empty)
	e.grid.Set(to, PlayerKind)
	e.state.Player.Position = to
	e.state.Player.Steps++
}

// eatFlowerByPlayer credits the flower at pos and recycles its slot. The
// player must already stand on pos so the slot cannot respawn there.
func (e *Engine) eatFlowerByPlayer(pos Position) {
	i := e.flowerIndex(pos)
	e.state.Player.Score += e.state.Flowers.Scores[i]
	e.placeFlower(i)
}

// flowerIndex finds the slot at pos; the grid said a flower is there, so a
// miss means the grid and state diverged.
func (e *Engine) flowerIndex(pos Position) int {
	i := FlowerIndexAt(e.state.Flowers, pos)
	if i < 0 {
		e.fatal(fmt.Errorf("grid has a flower at %s that no slot owns", pos))
	}
	return i
}
