package algebra

import (
	"fmt"

	"github.com/aces-fhe/aces/aces"
	"github.com/aces-fhe/aces/errs"
	"github.com/aces-fhe/aces/internal/sampling"
)

// Refresh re-encrypts ct's own pseudo-cipher residues (ct.Corefresher)
// and homomorphically recombines them against the channel's Refresher,
// producing a ciphertext with the same decrypted value. The result's
// UpLvl does not depend on ct.UpLvl: it is the sum of the UpLvl of
// Degree products of two fresh ciphertexts and that of one fresh
// ciphertext, so it is lower than ct.UpLvl only when ct.UpLvl exceeds
// that sum. This mirrors pyaces/algebras.py's
// ACESAlgebra.refresh exactly:
//
//	def refresh(self, refresher, corefresher):
//	    a, b = corefresher
//	    return self.add(b, reduce(self.add, [self.mult(a[i], r_i)
//	                                          for i, r_i in enumerate(refresher)]))
//
// a[i] and refresher.Images[i] are both genuine ciphertexts — Mult here
// is the real tensor-based homomorphic multiplication of two encrypted,
// secret-derived quantities, not a scale by a public plaintext scalar.
// classifier gates the attempt: it is built from the secret key's
// evaluated images (aces.NewRefreshClassifier), since Algebra itself
// never sees the secret key and cannot make that determination from
// ct's public data alone.
func (a *Algebra) Refresh(ct *aces.Ciphertext, refresher *aces.Refresher, classifier *aces.RefreshClassifier, prng sampling.PRNG) (*aces.Ciphertext, error) {
	r := a.ring()
	pseudo := ct.Pseudo(r)

	if !classifier.IsRefreshable(pseudo) {
		return nil, &errs.RefreshError{Reason: "ciphertext's pseudo-cipher does not satisfy the refresh classifier"}
	}

	enc := aces.NewEncryptor(a.Pub)
	corefresherA, corefresherB, err := ct.Corefresher(r, enc, a.Pub.Params.P(), prng)
	if err != nil {
		return nil, err
	}
	if len(corefresherA) != len(refresher.Images) {
		panic(&errs.ArithmeticError{Reason: fmt.Sprintf("refresh: corefresher has %d components, refresher has %d images", len(corefresherA), len(refresher.Images))})
	}

	acc := a.Mult(corefresherA[0], refresher.Images[0])
	for i := 1; i < len(corefresherA); i++ {
		acc = a.Add(acc, a.Mult(corefresherA[i], refresher.Images[i]))
	}
	return a.Add(corefresherB, acc), nil
}
