package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreGenerator_Range(t *testing.T) {
	gen := NewScoreGenerator(5, 10, seededRand(7))

	seen := map[uint]bool{}
	for i := 0; i < 2000; i++ {
		v := gen.Generate()
		if v < 5 || v > 10 {
			t.Fatalf("score %d outside [5,10]", v)
		}
		seen[v] = true
	}

	// Both ends of the inclusive range are reachable
	for v := uint(5); v <= 10; v++ {
		assert.True(t, seen[v], "value %d never drawn", v)
	}
}

func TestScoreGenerator_Constant(t *testing.T) {
	gen := NewScoreGenerator(3, 3, seededRand(8))
	for i := 0; i < 10; i++ {
		assert.Equal(t, uint(3), gen.Generate())
	}
}

func TestScoreGenerator_Seeded(t *testing.T) {
	a := NewScoreGenerator(0, 1000, seededRand(9))
	b := NewScoreGenerator(0, 1000, seededRand(9))
	for i := 0; i < 50; i++ {
		assert.Equal(t, a.Generate(), b.Generate())
	}
}
