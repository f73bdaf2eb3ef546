// Package aces implements encryption and decryption on an ArithChannel.
package aces

import (
	"github.com/aces-fhe/aces/internal/sampling"
	"github.com/aces-fhe/aces/ring"
)

// Ciphertext is the pair (c, c', uplvl): an n-vector of polynomials, a
// single polynomial, and a public upper bound on the current noise
// level.
type Ciphertext struct {
	C     []*ring.Poly
	Cp    *ring.Poly
	UpLvl uint64
}

// LevelVector is the secret N-vector k tracking how many times each
// e'_i's contribution has accumulated into a ciphertext. Its public
// shadow is the ciphertext's UpLvl.
type LevelVector struct {
	K []uint64
}

// Scalar returns the level vector's dot product with lvlE: l(k) = k . lvl_e.
func (lv *LevelVector) Scalar(lvlE []uint64) uint64 {
	var sum uint64
	for i, k := range lv.K {
		sum += k * lvlE[i]
	}
	return sum
}

// Zeroize destroys the level vector's contents. Level vectors are secret
// and MUST be zeroized on release.
func (lv *LevelVector) Zeroize() {
	for i := range lv.K {
		lv.K[i] = 0
	}
}

// PseudoCipher is ct's scalar projection at omega = 1: Enc is c'(1), and
// each Dec[i] is -c_i(1) reduced into [0, q). c and c' are the
// ciphertext itself, transmitted in the clear, so this projection needs
// no secret key — it mirrors pyaces/aces.py's ACESCipher.pseudo, which
// evaluates the same two quantities the same way.
type PseudoCipher struct {
	Dec []uint64
	Enc uint64
}

// Pseudo evaluates ct's components at omega, producing the projection
// Refresh recombines.
func (ct *Ciphertext) Pseudo(r *ring.Ring) *PseudoCipher {
	dec := make([]uint64, len(ct.C))
	for i, ci := range ct.C {
		dec[i] = (r.Q - r.EvalAtOmega(ci)) % r.Q
	}
	return &PseudoCipher{Dec: dec, Enc: r.EvalAtOmega(ct.Cp)}
}

// Corefresher re-encrypts ct's pseudo-cipher, reduced mod p: one fresh
// ciphertext per Dec component plus one for Enc. Algebra.Refresh
// combines these homomorphically against a Refresher's encrypted
// secret-key images, mirroring pyaces/aces.py's
// ACESPseudoCipher.corefresher (invoked through ACESCipher.corefresher),
// which likewise re-encrypts dec_i % p for every i and enc % p
// separately. The residues being encrypted are already public, so any
// Encryptor built from the channel's public view will do — no secret
// material is needed here.
func (ct *Ciphertext) Corefresher(r *ring.Ring, enc *Encryptor, p uint64, prng sampling.PRNG) ([]*Ciphertext, *Ciphertext, error) {
	pseudo := ct.Pseudo(r)

	a := make([]*Ciphertext, len(pseudo.Dec))
	for i, di := range pseudo.Dec {
		c, lv, err := enc.Encrypt(prng, di%p)
		if err != nil {
			return nil, nil, err
		}
		lv.Zeroize()
		a[i] = c
	}

	b, lv, err := enc.Encrypt(prng, pseudo.Enc%p)
	if err != nil {
		return nil, nil, err
	}
	lv.Zeroize()

	return a, b, nil
}
