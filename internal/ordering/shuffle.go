package ordering

import (
	"math"
	"math/rand/v2"
)

// Linear congruential generator constants. They are kept fixed so a given
// seed always produces the same permutation.
const (
	lcgMultiplier = 9301
	lcgIncrement  = 49297
	lcgModulus    = 233280
)

type lcg struct {
	seed int64
}

func newLCG(seed int64) *lcg {
	s := seed % lcgModulus
	if s < 0 {
		s += lcgModulus
	}
	return &lcg{seed: s}
}

// next advances the generator and returns a draw in [0, 1).
func (g *lcg) next() float64 {
	g.seed = (g.seed*lcgMultiplier + lcgIncrement) % lcgModulus
	return float64(g.seed) / lcgModulus
}

// Shuffle permutes items in place with Fisher-Yates driven by the seeded LCG.
func Shuffle[T any](items []T, seed int64) {
	g := newLCG(seed)
	for i := len(items) - 1; i > 0; i-- {
		j := int(math.Floor(g.next() * float64(i+1)))
		items[i], items[j] = items[j], items[i]
	}
}

// NewSeed returns a fresh seed for random mode.
func NewSeed() int64 {
	return rand.Int64N(lcgModulus)
}
