package aces

import (
	"fmt"

	"github.com/aces-fhe/aces/channel"
	"github.com/aces-fhe/aces/errs"
	"github.com/aces-fhe/aces/ring"
)

// Decryptor recovers plaintexts using a channel's secret key. Construct
// one only from the channel's own holder — NewDecryptor takes a
// defensive copy of the secret via Channel.Secret and owns its
// zeroization from then on.
type Decryptor struct {
	pub    channel.PublicView
	secret []*ring.Poly
}

// NewDecryptor builds a Decryptor bound to ch's secret key. Call Destroy
// when done to zeroize the copied secret.
func NewDecryptor(ch *channel.Channel) *Decryptor {
	return &Decryptor{pub: ch.Publish(), secret: ch.Secret()}
}

// Destroy zeroizes the decryptor's private copy of the secret key.
func (d *Decryptor) Destroy() {
	for _, xi := range d.secret {
		xi.Zeroize()
	}
}

// Decrypt recovers m = v mod p from ct, where v = eval_at_omega(c' -
// c^T.x). If ct.UpLvl >= q/p the correctness bound no longer holds; Decrypt
// still returns its best-effort value but also returns a non-nil
// *errs.DecryptWarning rather than refusing to answer.
func (d *Decryptor) Decrypt(ct *Ciphertext) (uint64, error) {
	r := d.pub.Ring
	p := d.pub.Params.P()
	q := d.pub.Params.Q()

	if len(ct.C) != len(d.secret) {
		panic(&errs.ArithmeticError{Reason: fmt.Sprintf("decrypt: ciphertext has %d components, secret key has %d", len(ct.C), len(d.secret))})
	}

	acc := r.Zero()
	for i, ci := range ct.C {
		acc = r.Add(acc, r.Mul(ci, d.secret[i]))
	}
	dpoly := r.Sub(ct.Cp, acc)

	v := r.EvalAtOmega(dpoly)
	m := v % p

	if ct.UpLvl >= q/p {
		return m, &errs.DecryptWarning{Reason: fmt.Sprintf("uplvl=%d exceeds q/p=%d; decrypted value is not guaranteed correct", ct.UpLvl, q/p)}
	}
	return m, nil
}
