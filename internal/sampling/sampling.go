package sampling

import (
	"encoding/binary"
	"math/big"
)

// Uint64 draws a uniform value in [0, 2^64).
func Uint64(prng PRNG) uint64 {
	b := make([]byte, 8)
	if _, err := readFull(prng, b); err != nil {
		panic(err)
	}
	return binary.LittleEndian.Uint64(b)
}

// readFull reads exactly len(b) bytes from prng, looping over short reads.
func readFull(prng PRNG, b []byte) (int, error) {
	total := 0
	for total < len(b) {
		n, err := prng.Read(b[total:])
		if err != nil {
			return total, err
		}
		if n == 0 {
			continue
		}
		total += n
	}
	return total, nil
}

// Uint64n draws a uniform value in [0, n). It panics if n == 0.
func Uint64n(prng PRNG, n uint64) uint64 {
	if n == 0 {
		panic("sampling: Uint64n called with n == 0")
	}
	bound := new(big.Int).SetUint64(n)
	buf := make([]byte, 8)
	// rejection sampling against the largest multiple of n representable in 64 bits,
	// so the result stays uniform instead of biased toward small residues.
	limit := new(big.Int).Lsh(big.NewInt(1), 64)
	limit.Sub(limit, new(big.Int).Mod(limit, bound))
	for {
		if _, err := readFull(prng, buf); err != nil {
			panic(err)
		}
		v := new(big.Int).SetUint64(binary.LittleEndian.Uint64(buf))
		if v.Cmp(limit) < 0 {
			return new(big.Int).Mod(v, bound).Uint64()
		}
	}
}

// Bit draws a pseudo-random boolean that is true with probability 1-p0
// and false (the "vanishing" outcome) with probability p0, the delta_i
// selector used during key generation.
func Bit(prng PRNG, p0 float64) bool {
	const scale = 1 << 24
	threshold := uint64(p0 * float64(scale))
	return Uint64n(prng, scale) >= threshold
}
