// Package algebra implements the homomorphic operations: ciphertext add,
// multiply via the channel's 3-tensor, refresh via corefresher
// recombination against a Refresher's encrypted secret-key images, and
// the parallel level sub-algebra.
package algebra

import (
	"runtime"

	"github.com/aces-fhe/aces/channel"
	"github.com/aces-fhe/aces/ring"
)

// Algebra holds read-only references to a channel's public material. It
// never sees a secret key.
type Algebra struct {
	Pub channel.PublicView
}

// New builds an Algebra over pub.
func New(pub channel.PublicView) *Algebra {
	return &Algebra{Pub: pub}
}

func workerCount(jobs int) int {
	n := runtime.NumCPU()
	if n > jobs {
		n = jobs
	}
	if n < 1 {
		n = 1
	}
	return n
}

func (a *Algebra) ring() *ring.Ring { return a.Pub.Ring }
