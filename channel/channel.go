package channel

import (
	"runtime"
	"sync"

	"github.com/aces-fhe/aces/internal/sampling"
	"github.com/aces-fhe/aces/ring"
)

// Channel is the validated parameters, the ring context, the published
// key material (F0, F1, Tensor, LvlE), and the privately held secret
// key x. Build one with NewChannel.
type Channel struct {
	Params Parameters
	Ring   *ring.Ring

	// F0 is an n x N matrix of zero-divisor-at-omega polynomials.
	F0 [][]*ring.Poly
	// F1 is f0^T x + e', an N-vector of polynomials.
	F1 []*ring.Poly
	// TensorData linearizes products of secret-key components.
	TensorData *Tensor
	// LvlE[i] is the deterministic level contribution of e'_i.
	LvlE []uint64

	x []*ring.Poly
}

// workerCount bounds the goroutine fan-out for the independent
// per-column loops in key generation by the host's core count (package
// algebra keeps its own copy of this rule for its tensor contraction), the same sync.WaitGroup dispatch
// examples/dbfv/pir uses with a caller-supplied goroutine count,
// generalized here to size itself instead of taking one.
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

// NewChannel samples u, the secret key x, the public matrix f0, and the
// noise vector e', then derives f1 and solves the tensor. Parameter
// validation and prime-q replacement are NewParameters's responsibility
// and must already be reflected in params.
func NewChannel(params Parameters, prng sampling.PRNG) (*Channel, error) {
	q, n, width := params.Q(), params.Degree(), params.Width()

	u := ring.GenerateU(prng, q, n)
	r, err := ring.NewRing(q, n, u)
	if err != nil {
		return nil, err
	}

	x := make([]*ring.Poly, n)
	for i := range x {
		x[i] = r.UniformPoly(prng)
	}

	f0 := make([][]*ring.Poly, n)
	for i := range f0 {
		f0[i] = make([]*ring.Poly, width)
		for j := range f0[i] {
			k := sampling.Uint64n(prng, params.P())
			f0[i][j] = r.PolyWithEval(prng, mulModQ(params.P(), k, q))
		}
	}

	ePrime := make([]*ring.Poly, width)
	lvlE := make([]uint64, width)
	for i := range ePrime {
		delta := uint64(0)
		if sampling.Bit(prng, params.P0()) {
			delta = 1
		}
		ePrime[i] = r.PolyWithEval(prng, mulModQ(params.P(), delta, q))
		lvlE[i] = delta * params.P()
	}

	f1 := computeF1(r, f0, x, ePrime, workerCount(width))

	tensor, err := BuildTensor(r, x)
	if err != nil {
		return nil, err
	}

	return &Channel{
		Params:     params,
		Ring:       r,
		F0:         f0,
		F1:         f1,
		TensorData: tensor,
		LvlE:       lvlE,
		x:          x,
	}, nil
}

// computeF1 computes f1_j = sum_i f0[i][j]*x[i] + e'[j], spreading the N
// independent columns across workerCount goroutines.
func computeF1(r *ring.Ring, f0 [][]*ring.Poly, x, ePrime []*ring.Poly, workers int) []*ring.Poly {
	width := len(ePrime)
	degree := len(x)
	f1 := make([]*ring.Poly, width)

	var wg sync.WaitGroup
	jobs := make(chan int, width)
	for j := 0; j < width; j++ {
		jobs <- j
	}
	close(jobs)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				acc := r.Zero()
				for i := 0; i < degree; i++ {
					acc = r.Add(acc, r.Mul(f0[i][j], x[i]))
				}
				f1[j] = r.Add(acc, ePrime[j])
			}
		}()
	}
	wg.Wait()
	return f1
}

// PublicView is the record a Channel exposes to encryptors, decryptors and
// the algebra — everything except the secret key.
type PublicView struct {
	Params     Parameters
	Ring       *ring.Ring
	F0         [][]*ring.Poly
	F1         []*ring.Poly
	TensorData *Tensor
	LvlE       []uint64
}

// Publish returns the channel's public material. The secret key x never
// appears in the returned value.
func (c *Channel) Publish() PublicView {
	return PublicView{
		Params:     c.Params,
		Ring:       c.Ring,
		F0:         c.F0,
		F1:         c.F1,
		TensorData: c.TensorData,
		LvlE:       c.LvlE,
	}
}

// Secret returns a defensive copy of the channel's secret key. It exists
// so a trusted holder can hand the secret key to holder-side helpers in
// other packages, such as aces.NewDecryptor; callers MUST zeroize the returned polynomials once
// they are done and MUST NOT pass them to untrusted code.
func (c *Channel) Secret() []*ring.Poly {
	out := make([]*ring.Poly, len(c.x))
	for i, xi := range c.x {
		out[i] = xi.CopyNew()
	}
	return out
}

// Zeroize destroys the channel's secret key in place. Call this when the
// channel itself is being released.
func (c *Channel) Zeroize() {
	for _, xi := range c.x {
		xi.Zeroize()
	}
}
