package aces

import (
	"github.com/aces-fhe/aces/channel"
	"github.com/aces-fhe/aces/internal/sampling"
)

// Refresher holds encryptions of each secret-key component's own image
// under p, generated once at setup time. Algebra's refresh operation uses
// them to homomorphically correct for the noise tail it discards,
// mirroring pyaces/aces.py's ACESReader.generate_refresher — the original
// encrypts "known" quantities derived from x so that a later refresh can
// combine them linearly without ever seeing x itself.
type Refresher struct {
	Pub    channel.PublicView
	Images []*Ciphertext
}

// GenerateRefresher encrypts eval_at_omega(x_i) mod p for every secret-key
// component x_i, using enc (built from the same channel's public view).
// It takes, uses, and zeroizes its own copy of the secret; the returned
// Refresher carries none.
func GenerateRefresher(ch *channel.Channel, enc *Encryptor, prng sampling.PRNG) (*Refresher, error) {
	secret := ch.Secret()
	defer func() {
		for _, xi := range secret {
			xi.Zeroize()
		}
	}()

	p := ch.Params.P()
	images := make([]*Ciphertext, len(secret))
	for i, xi := range secret {
		v := ch.Ring.EvalAtOmega(xi) % p
		ct, lv, err := enc.Encrypt(prng, v)
		if err != nil {
			return nil, err
		}
		lv.Zeroize()
		images[i] = ct
	}
	return &Refresher{Pub: ch.Publish(), Images: images}, nil
}
