package ring

import "math/bits"

// addMod returns (a + b) mod q, assuming a, b < q.
func addMod(a, b, q uint64) uint64 {
	s := a + b
	if s >= q || s < a {
		s -= q
	}
	return s
}

// subMod returns (a - b) mod q, assuming a, b < q.
func subMod(a, b, q uint64) uint64 {
	if a >= b {
		return a - b
	}
	return q - (b - a)
}

// mulMod returns (a * b) mod q via a 128-bit intermediate product, so
// the core never silently overflows when q runs into the hundreds of
// millions.
func mulMod(a, b, q uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	_, rem := bits.Div64(hi, lo, q)
	return rem
}
