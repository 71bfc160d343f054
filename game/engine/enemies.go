package engine

import (
	"cmp"
	"slices"
)

// moveEnemies runs the enemies' half-turn. The min(enemies, flowers) flowers
// nearest to the player are visited in distance order; each is chased by the
// nearest enemy not yet committed this turn. Ties go to the lower flower
// index, then to the lower enemy index.
func (e *Engine) moveEnemies() {
	targets := e.nearestFlowers()

	pool := make([]int, len(e.state.Enemies.Positions))
	for i := range pool {
		pool[i] = i
	}

	for _, flower := range targets {
		// Read the slot now: an earlier enemy may have eaten and respawned it.
		target := e.state.Flowers.Positions[flower]

		best := 0
		bestDist := ChebyshevDistance(e.state.Enemies.Positions[pool[0]], target)
		for slot := 1; slot < len(pool); slot++ {
			d := ChebyshevDistance(e.state.Enemies.Positions[pool[slot]], target)
			if d < bestDist || (d == bestDist && pool[slot] < pool[best]) {
				best, bestDist = slot, d
			}
		}

		enemy := pool[best]
		pool[best] = pool[len(pool)-1]
		pool = pool[:len(pool)-1]

		e.forwardEnemy(enemy, target)
	}

	e.state.Status = PlayerTurn
}

// nearestFlowers returns the slots of the min(enemies, flowers) flowers
// closest to the player, nearest first.
func (e *Engine) nearestFlowers() []int {
	n := min(len(e.state.Enemies.Positions), len(e.state.Flowers.Positions))
	if n == 0 {
		return nil
	}

	player := e.state.Player.Position
	order := make([]int, len(e.state.Flowers.Positions))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(
			ChebyshevDistance(e.state.Flowers.Positions[a], player),
			ChebyshevDistance(e.state.Flowers.Positions[b], player),
		)
	})

	return order[:n]
}

// forwardEnemy moves enemy i one step toward target. A cell held by the
// player or another enemy is blocked; the step is retried rotated +45 then
// -45 degrees, and the enemy waits if all three are blocked.
func (e *Engine) forwardEnemy(i int, target Position) {
	from := e.state.Enemies.Positions[i]
	straight := StepToward(from, target)

	for _, dir := range [...]Vector{straight, straight.Rotate45(), straight.RotateMinus45()} {
		to := e.grid.Clamp(from.Add(dir))
		if to == from {
			continue
		}

		switch e.grid.Get(to) {
		case PlayerKind, EnemyKind:
			continue
		case FlowerKind:
			e.relocateEnemy(i, from, to)
			// Enemies score nothing; eating only recycles the slot.
			e.placeFlower(e.flowerIndex(to))
			return
		default:
			e.relocateEnemy(i, from, to)
			return
		}
	}
}

func (e *Engine) relocateEnemy(i int, from, to Position) {
	e.grid.Set(from, Empty)
	e.grid.Set(to, EnemyKind)
	e.state.Enemies.Positions[i] = to
}
