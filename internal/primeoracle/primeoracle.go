// Package primeoracle is the core's small-prime / composite-modulus
// collaborator: it answers "is q prime", factorizes q, and searches for a
// nearby composite modulus when a caller hands the channel a prime q.
//
// It mirrors lattigo's ring.IsPrime (Baillie-PSW via math/big) and
// pyaces/arith.go's Primes.find_candidates (search upward for a composite
// whose factorization avoids an excluded set).
package primeoracle

import (
	"math/big"

	"golang.org/x/exp/slices"
)

// IsPrime reports whether n is prime, using the Baillie-PSW test math/big
// implements — 100% accurate below 2^64, probabilistic above it.
func IsPrime(n uint64) bool {
	if n < 2 {
		return false
	}
	return new(big.Int).SetUint64(n).ProbablyPrime(20)
}

// Factorize returns the prime factorization of n as factor -> multiplicity.
// It panics if n == 0.
func Factorize(n uint64) map[uint64]int {
	if n == 0 {
		panic("primeoracle: Factorize called with n == 0")
	}
	factors := map[uint64]int{}
	for n%2 == 0 {
		factors[2]++
		n /= 2
	}
	for d := uint64(3); d*d <= n; d += 2 {
		for n%d == 0 {
			factors[d]++
			n /= d
		}
	}
	if n > 1 {
		factors[n]++
	}
	return factors
}

// SortedFactors returns the keys of a factorization in ascending order,
// using golang.org/x/exp/slices for the sort rather than the newer stdlib
// slices package, matching the x/exp/slices import lattigo's own code uses.
func SortedFactors(factors map[uint64]int) []uint64 {
	out := make([]uint64, 0, len(factors))
	for f := range factors {
		out = append(out, f)
	}
	slices.Sort(out)
	return out
}

// DistinctFactorCount reports how many distinct prime factors n has.
func DistinctFactorCount(n uint64) int {
	return len(Factorize(n))
}

// IsComposite reports whether n has at least two distinct prime factors,
// the requirement the cipher modulus q must satisfy.
func IsComposite(n uint64) bool {
	return DistinctFactorCount(n) >= 2
}

// NearestComposite returns the smallest m >= q such that m has at least
// two distinct prime factors. Used to replace a prime cipher modulus
// with a nearby composite one, the way pyaces/arith.go's
// Primes.find_candidates searches upward from a bound.
func NearestComposite(q uint64) uint64 {
	for m := q; ; m++ {
		if IsComposite(m) {
			return m
		}
	}
}

// Candidates returns up to limit composite numbers >= lowerBound whose
// factorization contains none of the excluded primes, sorted by factor
// count then by value — the same ordering pyaces/arith.go's
// Primes.find_candidates sorts by (factor_count, candidate_q, min, max).
func Candidates(lowerBound uint64, excluded map[uint64]bool, limit int) []uint64 {
	var out []uint64
	for m := lowerBound; len(out) < limit; m++ {
		factors := Factorize(m)
		if len(factors) < 2 {
			continue
		}
		skip := false
		for f := range factors {
			if excluded[f] {
				skip = true
				break
			}
		}
		if skip {
			continue
		}
		out = append(out, m)
	}
	slices.SortFunc(out, func(a, b uint64) bool {
		ca, cb := len(Factorize(a)), len(Factorize(b))
		if ca != cb {
			return ca < cb
		}
		return a < b
	})
	return out
}
