package aces

import (
	"github.com/aces-fhe/aces/channel"
	"github.com/aces-fhe/aces/internal/sampling"
	"github.com/aces-fhe/aces/ring"
)

// Encryptor turns a plaintext in Z_p into a ciphertext under a channel's
// public view. It holds no secret material.
type Encryptor struct {
	Pub channel.PublicView
}

// NewEncryptor builds an Encryptor from a channel's public view.
func NewEncryptor(pub channel.PublicView) *Encryptor {
	return &Encryptor{Pub: pub}
}

// Encrypt draws fresh randomness from prng and encrypts m, which must lie
// in [0, p). It returns the ciphertext together with the level vector k
// the caller should track (and zeroize) alongside it.
func (e *Encryptor) Encrypt(prng sampling.PRNG, m uint64) (*Ciphertext, *LevelVector, error) {
	r := e.Pub.Ring
	p := e.Pub.Params.P()
	width := e.Pub.Params.Width()
	degree := e.Pub.Params.Degree()

	b := make([]*ring.Poly, width)
	k := make([]uint64, width)
	for i := 0; i < width; i++ {
		beta := sampling.Uint64n(prng, p+1)
		b[i] = r.PolyWithEval(prng, beta)
		k[i] = beta
	}

	rm := r.PolyWithEval(prng, m%p)

	c := make([]*ring.Poly, degree)
	for i := 0; i < degree; i++ {
		acc := r.Zero()
		for j := 0; j < width; j++ {
			acc = r.Add(acc, r.Mul(e.Pub.F0[i][j], b[j]))
		}
		c[i] = acc
	}

	cp := rm
	for j := 0; j < width; j++ {
		cp = r.Add(cp, r.Mul(b[j], e.Pub.F1[j]))
	}

	var upLvl uint64
	for _, lvl := range e.Pub.LvlE {
		upLvl += lvl * (p + 1)
	}

	return &Ciphertext{C: c, Cp: cp, UpLvl: upLvl}, &LevelVector{K: k}, nil
}
