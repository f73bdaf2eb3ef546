// Package ring implements polynomial arithmetic over Z_q[X]/(u), the
// ground arithmetic PolyRing. Coefficients are stored low-order first
// (Coeffs[i] is the X^i coefficient), the same convention lattigo's
// ring.Poly uses for its RNS limbs, specialized here to a single 64-bit
// modulus instead of an RNS basis.
package ring

// Poly is a polynomial over Z_q, represented by its coefficient vector.
// A Poly produced by Ring arithmetic has degree < Ring.N except for the
// reduction polynomial U itself, which carries the implicit leading
// coefficient at degree N.
type Poly struct {
	Coeffs []uint64
}

// NewPoly allocates a poly of the given length with all-zero coefficients.
func NewPoly(length int) *Poly {
	return &Poly{Coeffs: make([]uint64, length)}
}

// CopyNew returns a deep copy of p.
func (p *Poly) CopyNew() *Poly {
	c := make([]uint64, len(p.Coeffs))
	copy(c, p.Coeffs)
	return &Poly{Coeffs: c}
}

// Zeroize overwrites p's coefficients with zero. Callers holding secret
// polynomials (such as the channel's secret key) MUST call this before releasing the last reference.
func (p *Poly) Zeroize() {
	for i := range p.Coeffs {
		p.Coeffs[i] = 0
	}
}

// IsZero reports whether every coefficient of p is zero.
func (p *Poly) IsZero() bool {
	for _, c := range p.Coeffs {
		if c != 0 {
			return false
		}
	}
	return true
}

// degree returns the index of the highest nonzero coefficient, or -1 for
// the zero polynomial.
func (p *Poly) degree() int {
	for d := len(p.Coeffs) - 1; d >= 0; d-- {
		if p.Coeffs[d] != 0 {
			return d
		}
	}
	return -1
}
