package engine

import (
	"fmt"
	"math/rand/v2"
)

// Grid is the occupancy index: what occupies cell (x,y). State stays
// authoritative; the engine keeps the grid consistent with it.
type Grid struct {
	width  int
	height int
	free   int
	cells  []OccupantKind
	rng    *rand.Rand
}

// NewGrid creates an empty width x height grid drawing placements from rng
func NewGrid(width, height int, rng *rand.Rand) *Grid {
	return &Grid{
		width:  width,
		height: height,
		free:   width * height,
		cells:  make([]OccupantKind, width*height),
		rng:    rng,
	}
}

// Width returns the number of columns
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows
func (g *Grid) Height() int { return g.height }

// Free returns the number of empty cells
func (g *Grid) Free() int { return g.free }

// Clear marks all cells Empty
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = Empty
	}
	g.free = len(g.cells)
}

// Contains reports whether pos is on the board
func (g *Grid) Contains(pos Position) bool {
	return pos.X >= 0 && pos.X < g.width && pos.Y >= 0 && pos.Y < g.height
}

// Clamp pulls pos back onto the board, axis by axis
func (g *Grid) Clamp(pos Position) Position {
	return Position{
		X: clamp(pos.X, 0, g.width-1),
		Y: clamp(pos.Y, 0, g.height-1),
	}
}

// Get returns the occupant of pos. pos must be on the board.
func (g *Grid) Get(pos Position) OccupantKind {
	return g.cells[g.index(pos)]
}

// Set overwrites the occupant of pos. pos must be on the board.
func (g *Grid) Set(pos Position, kind OccupantKind) {
	i := g.index(pos)
	prev := g.cells[i]
	switch {
	case prev == Empty && kind != Empty:
		g.free--
	case prev != Empty && kind == Empty:
		g.free++
	}
	g.cells[i] = kind
}

// PlaceRandom samples independent uniform coordinates until it hits an Empty
// cell, marks it with kind and returns it. It fails with ErrGridFull instead
// of spinning forever when no Empty cell is left.
func (g *Grid) PlaceRandom(kind OccupantKind) (Position, error) {
	if g.free == 0 {
		return Position{}, fmt.Errorf("place %s: %w", kind, ErrGridFull)
	}
	for {
		pos := Position{X: g.rng.IntN(g.width), Y: g.rng.IntN(g.height)}
		if g.Get(pos) == Empty {
			g.Set(pos, kind)
			return pos, nil
		}
	}
}

// Occupied lists every non-empty cell with its occupant, row by row
func (g *Grid) Occupied() map[Position]OccupantKind {
	out := make(map[Position]OccupantKind, len(g.cells)-g.free)
	for i, kind := range g.cells {
		if kind != Empty {
			out[Position{X: i % g.width, Y: i / g.width}] = kind
		}
	}
	return out
}

func (g *Grid) index(pos Position) int {
	if !g.Contains(pos) {
		panic(fmt.Sprintf("grid: position %s outside %dx%d board", pos, g.width, g.height))
	}
	return pos.Y*g.width + pos.X
}
