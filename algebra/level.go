package algebra

import (
	"fmt"

	"github.com/aces-fhe/aces/aces"
	"github.com/aces-fhe/aces/errs"
)

// AddLevel returns k1 + k2, component-wise (addlvl).
func (a *Algebra) AddLevel(k1, k2 *aces.LevelVector) *aces.LevelVector {
	if len(k1.K) != len(k2.K) {
		panic(&errs.ArithmeticError{Reason: fmt.Sprintf("addlvl: level vectors have lengths %d and %d", len(k1.K), len(k2.K))})
	}
	out := make([]uint64, len(k1.K))
	for i := range out {
		out[i] = k1.K[i] + k2.K[i]
	}
	return &aces.LevelVector{K: out}
}

// MultLevel returns a bound satisfying l(multlvl(k1,k2)) >= p.l(k1).l(k2):
// it distributes p times the pairwise product of every component across
// the width, which conservatively dominates the bilinear blow-up Mult
// introduces.
func (a *Algebra) MultLevel(k1, k2 *aces.LevelVector, p uint64) *aces.LevelVector {
	if len(k1.K) != len(k2.K) {
		panic(&errs.ArithmeticError{Reason: fmt.Sprintf("multlvl: level vectors have lengths %d and %d", len(k1.K), len(k2.K))})
	}
	out := make([]uint64, len(k1.K))
	for i := range out {
		out[i] = p * k1.K[i] * k2.K[i]
	}
	return &aces.LevelVector{K: out}
}
