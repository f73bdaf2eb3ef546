package ring

import (
	"fmt"

	"github.com/aces-fhe/aces/errs"
	"github.com/aces-fhe/aces/internal/sampling"
)

// Ring is the arithmetic context for Z_q[X]/(U): a fixed modulus Q, a
// working degree N, and the monic reduction polynomial U of degree N. Like
// lattigo's ring.Context, operations are methods on the context rather
// than free functions, so every call site carries its modulus explicitly.
type Ring struct {
	Q uint64
	N int
	U *Poly
}

// NewRing validates U (monic, degree N, U(1) = 0 mod q) and builds the
// context. It does not validate p, q, n, N against the channel's own
// construction invariants — that is channel.NewParameters's job; Ring
// only needs a modulus and a reduction polynomial to be internally
// consistent.
func NewRing(q uint64, n int, u *Poly) (*Ring, error) {
	if n <= 0 {
		return nil, fmt.Errorf("ring: degree must be positive, got %d", n)
	}
	if len(u.Coeffs) != n+1 {
		return nil, fmt.Errorf("ring: reduction polynomial must have degree %d, got %d coefficients", n, len(u.Coeffs)-1)
	}
	if u.Coeffs[n] != 1 {
		return nil, fmt.Errorf("ring: reduction polynomial must be monic")
	}
	r := &Ring{Q: q, N: n, U: u.CopyNew()}
	if r.EvalAtOmega(u) != 0 {
		return nil, fmt.Errorf("ring: reduction polynomial must satisfy u(1) = 0 mod q")
	}
	return r, nil
}

func (r *Ring) checkLen(p *Poly, op string) {
	if len(p.Coeffs) != r.N {
		panic(&errs.ArithmeticError{Reason: fmt.Sprintf("%s: expected degree-%d element, got %d coefficients", op, r.N, len(p.Coeffs))})
	}
}

// Zero returns the additive identity, a length-N zero polynomial.
func (r *Ring) Zero() *Poly {
	return NewPoly(r.N)
}

// Add returns a + b, coefficient-wise mod q.
func (r *Ring) Add(a, b *Poly) *Poly {
	r.checkLen(a, "Add")
	r.checkLen(b, "Add")
	out := NewPoly(r.N)
	for i := 0; i < r.N; i++ {
		out.Coeffs[i] = addMod(a.Coeffs[i], b.Coeffs[i], r.Q)
	}
	return out
}

// Sub returns a - b, coefficient-wise mod q, normalized into [0, q).
func (r *Ring) Sub(a, b *Poly) *Poly {
	r.checkLen(a, "Sub")
	r.checkLen(b, "Sub")
	out := NewPoly(r.N)
	for i := 0; i < r.N; i++ {
		out.Coeffs[i] = subMod(a.Coeffs[i], b.Coeffs[i], r.Q)
	}
	return out
}

// Neg returns -a mod q.
func (r *Ring) Neg(a *Poly) *Poly {
	return r.Sub(r.Zero(), a)
}

// MulUnreduced returns the schoolbook convolution of a and b, a
// length-(len(a)+len(b)-1) vector, without reducing modulo U. Mul is
// Reduce applied to this product; the channel's tensor solve and
// algebra's bilinear-form expansion call Mul, not MulUnreduced.
func (r *Ring) MulUnreduced(a, b *Poly) *Poly {
	out := NewPoly(len(a.Coeffs) + len(b.Coeffs) - 1)
	for i, av := range a.Coeffs {
		if av == 0 {
			continue
		}
		for j, bv := range b.Coeffs {
			if bv == 0 {
				continue
			}
			out.Coeffs[i+j] = addMod(out.Coeffs[i+j], mulMod(av, bv, r.Q), r.Q)
		}
	}
	return out
}

// Reduce reduces t modulo U, returning a length-N result. Since U is
// monic, each step exactly cancels the leading term of t by subtracting
// lead(t)*X^shift*U, shift = deg(t) - N, with no remainder correction
// needed.
func (r *Ring) Reduce(t *Poly) *Poly {
	work := make([]uint64, len(t.Coeffs))
	copy(work, t.Coeffs)
	w := &Poly{Coeffs: work}

	for {
		d := w.degree()
		if d < r.N {
			break
		}
		lead := w.Coeffs[d]
		if lead == 0 {
			w.Coeffs = w.Coeffs[:d]
			continue
		}
		shift := d - r.N
		for k := 0; k <= r.N; k++ {
			uc := r.U.Coeffs[k]
			if uc == 0 {
				continue
			}
			idx := shift + k
			w.Coeffs[idx] = subMod(w.Coeffs[idx], mulMod(lead, uc, r.Q), r.Q)
		}
	}

	out := NewPoly(r.N)
	copy(out.Coeffs, w.Coeffs)
	return out
}

// Mul returns a*b reduced modulo U — the ring's full multiplication.
func (r *Ring) Mul(a, b *Poly) *Poly {
	r.checkLen(a, "Mul")
	r.checkLen(b, "Mul")
	return r.Reduce(r.MulUnreduced(a, b))
}

// ScalarMul returns k*a mod q, coefficient-wise.
func (r *Ring) ScalarMul(a *Poly, k uint64) *Poly {
	out := NewPoly(len(a.Coeffs))
	k %= r.Q
	for i, c := range a.Coeffs {
		out.Coeffs[i] = mulMod(c, k, r.Q)
	}
	return out
}

// EvalAtOmega evaluates a at the fixed point omega = 1, i.e. sums the
// coefficients mod q. This is a ring homomorphism Z_q[X]/(U) -> Z_q exactly
// when U(1) = 0 mod q, which NewRing enforces at construction.
func (r *Ring) EvalAtOmega(a *Poly) uint64 {
	sum := uint64(0)
	for _, c := range a.Coeffs {
		sum = addMod(sum, c%r.Q, r.Q)
	}
	return sum
}

// Equal reports whether a and b are coefficient-wise equal.
func (r *Ring) Equal(a, b *Poly) bool {
	if len(a.Coeffs) != len(b.Coeffs) {
		return false
	}
	for i := range a.Coeffs {
		if a.Coeffs[i] != b.Coeffs[i] {
			return false
		}
	}
	return true
}

// UniformPoly samples a degree-N element with every coefficient drawn
// independently and uniformly from [0, q).
func (r *Ring) UniformPoly(prng sampling.PRNG) *Poly {
	out := NewPoly(r.N)
	for i := range out.Coeffs {
		out.Coeffs[i] = sampling.Uint64n(prng, r.Q)
	}
	return out
}

// GenerateU samples a monic degree-n reduction polynomial with
// coefficients in [0, q) satisfying u(1) = 0 mod q: sample the n free
// coefficients uniformly, then nudge one of them so the full sum
// (including the implicit leading 1) vanishes mod q.
func GenerateU(prng sampling.PRNG, q uint64, n int) *Poly {
	u := NewPoly(n + 1)
	u.Coeffs[n] = 1
	sum := uint64(1)
	for i := 0; i < n; i++ {
		u.Coeffs[i] = sampling.Uint64n(prng, q)
		sum = addMod(sum, u.Coeffs[i], q)
	}
	s := sampling.Uint64n(prng, uint64(n))
	sumWithoutS := subMod(sum, u.Coeffs[s], q)
	u.Coeffs[s] = subMod(0, sumWithoutS, q)
	return u
}

// PolyWithEval samples a degree-N element whose coefficients are uniform
// at every position except one, chosen at random, which is fixed up so
// that EvalAtOmega of the result equals target mod q exactly. This same
// "sample then adjust one coefficient" construction underlies u, f0
// entries, e', b and r_m, each with its own target value.
func (r *Ring) PolyWithEval(prng sampling.PRNG, target uint64) *Poly {
	out := NewPoly(r.N)
	sum := uint64(0)
	for i := range out.Coeffs {
		out.Coeffs[i] = sampling.Uint64n(prng, r.Q)
		sum = addMod(sum, out.Coeffs[i], r.Q)
	}
	s := sampling.Uint64n(prng, uint64(r.N))
	sumWithoutS := subMod(sum, out.Coeffs[s], r.Q)
	out.Coeffs[s] = subMod(target%r.Q, sumWithoutS, r.Q)
	return out
}
