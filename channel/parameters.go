// Package channel implements ArithChannel: key generation, the public
// material a channel publishes, and the parameter validation the channel
// requires at construction.
package channel

import (
	"fmt"
	"math/big"

	"github.com/aces-fhe/aces/errs"
	"github.com/aces-fhe/aces/internal/primeoracle"
)

// ParametersLiteral is the user-facing, unvalidated parameter set. Field
// names spell out the algebraic symbols they carry (P = p, Q = q,
// Degree = n, Width = N) rather than reusing the bare single-letter names,
// since Go field names are exported identifiers callers read in isolation.
type ParametersLiteral struct {
	P      uint64
	Q      uint64
	Degree int
	Width  int

	// P0 is the probability that a noise component e'_i vanishes
	// (delta_i = 0) during key generation. Zero means "use the default",
	// 1/(p+1).
	P0 float64

	// AllowCompositeReplacement permits NewParameters to silently swap a
	// prime Q for the nearest composite >= Q and report the change,
	// rather than rejecting a prime modulus outright. Defaults to true's
	// behavior when unset is handled by the caller; NewParameters takes
	// it at face value.
	AllowCompositeReplacement bool
}

// Parameters is the validated, immutable parameter set a Channel is built
// from. Construct it with NewParameters; the zero value is not valid.
type Parameters struct {
	p      uint64
	q      uint64
	degree int
	width  int
	p0     float64

	// replacedQ records the original Q when NewParameters swapped a
	// prime modulus for a composite one, so callers can log the change.
	replacedQ   uint64
	wasReplaced bool
}

func (params Parameters) P() uint64      { return params.p }
func (params Parameters) Q() uint64      { return params.q }
func (params Parameters) Degree() int    { return params.degree }
func (params Parameters) Width() int     { return params.width }
func (params Parameters) P0() float64    { return params.p0 }

// ReplacedQ reports whether NewParameters replaced a prime Q with a nearby
// composite, and if so, what the original value was.
func (params Parameters) ReplacedQ() (original uint64, replaced bool) {
	return params.replacedQ, params.wasReplaced
}

// NewParameters validates lit against the channel's structural invariants
// and returns an immutable Parameters, or a *errs.ParameterError.
//
// p >= 2, q >= 2, n > 4, N >= 1; p^2 < q; gcd(p, q) = 1; q composite.
func NewParameters(lit ParametersLiteral) (Parameters, error) {
	if lit.P < 2 {
		return Parameters{}, &errs.ParameterError{Reason: fmt.Sprintf("p must be >= 2, got %d", lit.P)}
	}
	if lit.Q < 2 {
		return Parameters{}, &errs.ParameterError{Reason: fmt.Sprintf("q must be >= 2, got %d", lit.Q)}
	}
	if lit.Degree <= 4 {
		return Parameters{}, &errs.ParameterError{Reason: fmt.Sprintf("n must be > 4, got %d", lit.Degree)}
	}
	if lit.Width < 1 {
		return Parameters{}, &errs.ParameterError{Reason: fmt.Sprintf("N must be >= 1, got %d", lit.Width)}
	}

	q := lit.Q
	var replacedQ uint64
	wasReplaced := false
	if primeoracle.IsPrime(q) {
		if !lit.AllowCompositeReplacement {
			return Parameters{}, &errs.ParameterError{Reason: fmt.Sprintf("q=%d is prime and composite replacement was not permitted", q)}
		}
		replacedQ = q
		q = primeoracle.NearestComposite(q + 1)
		wasReplaced = true
	}
	if !primeoracle.IsComposite(q) {
		return Parameters{}, &errs.ParameterError{Reason: fmt.Sprintf("q=%d has fewer than 2 distinct prime factors", q)}
	}

	pSq := new(big.Int).Mul(new(big.Int).SetUint64(lit.P), new(big.Int).SetUint64(lit.P))
	if pSq.Cmp(new(big.Int).SetUint64(q)) >= 0 {
		return Parameters{}, &errs.ParameterError{Reason: fmt.Sprintf("p^2 must be < q, got p^2=%s, q=%d", pSq.String(), q)}
	}

	g := new(big.Int).GCD(nil, nil, new(big.Int).SetUint64(lit.P), new(big.Int).SetUint64(q))
	if g.Cmp(big.NewInt(1)) != 0 {
		return Parameters{}, &errs.ParameterError{Reason: fmt.Sprintf("gcd(p, q) must be 1, got %s", g.String())}
	}

	p0 := lit.P0
	if p0 <= 0 {
		p0 = 1 / float64(lit.P+1)
	}

	return Parameters{
		p:           lit.P,
		q:           q,
		degree:      lit.Degree,
		width:       lit.Width,
		p0:          p0,
		replacedQ:   replacedQ,
		wasReplaced: wasReplaced,
	}, nil
}
