package aces

import (
	"math/big"

	"github.com/aces-fhe/aces/channel"
)

// RefreshClassifier decides whether recombining a ciphertext's
// corefresher against a Refresher will reconstruct the same plaintext
// exactly. It is grounded on pyaces/algebras.py's ACESRefreshClassifier,
// which is likewise constructed from the ArithChannel — the secret
// holder — rather than from the ciphertext's public data alone: the
// question "is the combined tail small enough" fundamentally depends on
// the magnitude of the secret key's own evaluated images (x_i(1)), which
// a purely public classifier cannot see, and on the ciphertext's own
// Cp/enc tail, which the original's is_locator/is_director test folds
// into the same iota sum rather than checking separately.
//
// xImages holds eval_at_omega(x_i) mod q for each secret-key component.
// This is secret-derived data, not the secret key itself, but callers
// MUST treat a RefreshClassifier with the same care as a Decryptor.
type RefreshClassifier struct {
	p, q    uint64
	xImages []uint64
}

// NewRefreshClassifier builds a classifier bound to ch's secret key. It
// takes and zeroizes its own copy of the secret; the returned classifier
// retains only the evaluated images, not the polynomials themselves.
func NewRefreshClassifier(ch *channel.Channel) *RefreshClassifier {
	secret := ch.Secret()
	defer func() {
		for _, xi := range secret {
			xi.Zeroize()
		}
	}()

	images := make([]uint64, len(secret))
	for i, xi := range secret {
		images[i] = ch.Ring.EvalAtOmega(xi)
	}
	return &RefreshClassifier{p: ch.Params.P(), q: ch.Params.Q(), xImages: images}
}

// IsRefreshable reports whether pseudo's corefresher recombination will
// reconstruct the ciphertext's plaintext exactly. It recomputes
// iota = enc + sum_i dec_i*x_i(1) as an unbounded integer (via math/big,
// since iota can exceed 64 bits once q runs into the hundreds of
// millions and the degree grows), then checks that the carry from
// reducing iota into [0, q) is itself a multiple of p. This is the exact
// ground-truth condition pyaces/algebras.py's
// ACESRefreshClassifier.is_refreshable checks — stronger than the
// heuristic is_locator/is_director margin the original actually uses in
// its search loop, but available to us for free since constructing a
// RefreshClassifier already requires the same secret access
// is_refreshable does, and an exact test is strictly preferable to a
// heuristic one when both are within reach.
func (rc *RefreshClassifier) IsRefreshable(pseudo *PseudoCipher) bool {
	if len(pseudo.Dec) != len(rc.xImages) {
		return false
	}

	iota := new(big.Int).SetUint64(pseudo.Enc)
	term := new(big.Int)
	for i, di := range pseudo.Dec {
		term.SetUint64(di)
		term.Mul(term, new(big.Int).SetUint64(rc.xImages[i]))
		iota.Add(iota, term)
	}

	q := new(big.Int).SetUint64(rc.q)
	p := new(big.Int).SetUint64(rc.p)

	mkp := new(big.Int).Mod(iota, q)
	k0p := new(big.Int).Sub(iota, mkp)
	k0p.Div(k0p, q)

	return new(big.Int).Mod(k0p, p).Sign() == 0
}
