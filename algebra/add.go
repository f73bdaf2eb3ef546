package algebra

import (
	"fmt"

	"github.com/aces-fhe/aces/aces"
	"github.com/aces-fhe/aces/errs"
	"github.com/aces-fhe/aces/ring"
)

// Add returns c1 + c2: component-wise polynomial addition mod u and mod
// q, with the level bound added too. Commutative and associative.
func (a *Algebra) Add(c1, c2 *aces.Ciphertext) *aces.Ciphertext {
	if len(c1.C) != len(c2.C) {
		panic(&errs.ArithmeticError{Reason: fmt.Sprintf("add: ciphertexts have %d and %d components", len(c1.C), len(c2.C))})
	}
	r := a.ring()
	out := make([]*ring.Poly, len(c1.C))
	for i := range out {
		out[i] = r.Add(c1.C[i], c2.C[i])
	}
	return &aces.Ciphertext{
		C:     out,
		Cp:    r.Add(c1.Cp, c2.Cp),
		UpLvl: c1.UpLvl + c2.UpLvl,
	}
}
