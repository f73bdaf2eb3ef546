package sampling

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKeyedPRNGDeterministic(t *testing.T) {
	require := require.New(t)

	key := []byte("a fixed test key, 32 bytes long")
	a, err := NewKeyedPRNG(key)
	require.NoError(err)
	b, err := NewKeyedPRNG(key)
	require.NoError(err)

	bufA := make([]byte, 64)
	bufB := make([]byte, 64)
	_, err = a.Read(bufA)
	require.NoError(err)
	_, err = b.Read(bufB)
	require.NoError(err)
	require.Equal(bufA, bufB, "two KeyedPRNGs seeded with the same key must produce the same stream")
}

func TestKeyedPRNGReset(t *testing.T) {
	require := require.New(t)

	prng, err := NewKeyedPRNG([]byte("reset-test-key"))
	require.NoError(err)

	first := make([]byte, 32)
	_, err = prng.Read(first)
	require.NoError(err)

	prng.Reset()
	second := make([]byte, 32)
	_, err = prng.Read(second)
	require.NoError(err)

	require.Equal(first, second)
}

func TestUint64nStaysInRange(t *testing.T) {
	require := require.New(t)

	prng, err := NewKeyedPRNG([]byte("range-test-key"))
	require.NoError(err)

	const bound = uint64(97)
	for i := 0; i < 2000; i++ {
		v := Uint64n(prng, bound)
		require.Less(v, bound)
	}
}

func TestBitRespectsExtremeProbabilities(t *testing.T) {
	require := require.New(t)

	prng, err := NewKeyedPRNG([]byte("bit-test-key"))
	require.NoError(err)

	for i := 0; i < 256; i++ {
		require.True(Bit(prng, 0), "p0=0 must never select the vanishing outcome")
	}

	prng2, err := NewKeyedPRNG([]byte("bit-test-key-2"))
	require.NoError(err)
	for i := 0; i < 256; i++ {
		require.False(Bit(prng2, 1), "p0=1 must always select the vanishing outcome")
	}
}

func TestThreadSafePRNGProducesDistinctOutput(t *testing.T) {
	require := require.New(t)

	prng, err := NewPRNG()
	require.NoError(err)

	a := make([]byte, 32)
	b := make([]byte, 32)
	_, err = prng.Read(a)
	require.NoError(err)
	_, err = prng.Read(b)
	require.NoError(err)
	require.NotEqual(a, b, "two consecutive crypto/rand draws should not collide")
}
