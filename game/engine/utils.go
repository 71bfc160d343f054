package engine

// ChebyshevDistance is the king-move distance between two cells
func ChebyshevDistance(from, to Position) int {
	dx := abs(from.X - to.X)
	dy := abs(from.Y - to.Y)
	if dx > dy {
		return dx
	}
	return dy
}

// StepToward returns the unit vector pointing from one cell toward another
func StepToward(from, to Position) Vector {
	return Vector{X: sign(to.X - from.X), Y: sign(to.Y - from.Y)}
}

// FlowerIndexAt returns the slot of the flower at pos, or -1
func FlowerIndexAt(flowers Flowers, pos Position) int {
	for i, p := range flowers.Positions {
		if p == pos {
			return i
		}
	}
	return -1
}

// EnemyIndexAt returns the index of the enemy at pos, or -1
func EnemyIndexAt(enemies Enemies, pos Position) int {
	for i, p := range enemies.Positions {
		if p == pos {
			return i
		}
	}
	return -1
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

// abs returns the absolute value of x
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
