// Package sampling implements the random-source seam the core draws from:
// a cryptographically strong source for production use, and a deterministic,
// keyed source for reproducible tests.
package sampling

import (
	"crypto/rand"
	"io"
	"sync"

	"golang.org/x/crypto/blake2b"
)

// PRNG is the interface every sampler in the core draws bytes from. It is the
// only seam between the core and an external randomness collaborator: no
// package outside this one calls crypto/rand or math/rand directly.
type PRNG interface {
	io.Reader
}

// ThreadSafePRNG draws from the process-wide CSPRNG. Use this in production;
// it never exposes internal state and is safe for concurrent use.
type ThreadSafePRNG struct{}

// NewPRNG returns a PRNG backed by crypto/rand.
func NewPRNG() (*ThreadSafePRNG, error) {
	return &ThreadSafePRNG{}, nil
}

// Read implements PRNG.
func (prng *ThreadSafePRNG) Read(sum []byte) (n int, err error) {
	return rand.Read(sum)
}

// KeyedPRNG deterministically reproduces the same byte stream for the same
// key, via blake2b's XOF. It exists for tests that need a fixed random
// stream. Reads are serialized by a mutex, so concurrent use is safe, but
// concurrent readers each receive interleaved parts of the one stream. It
// MUST NOT be used to generate secret material outside of test fixtures.
type KeyedPRNG struct {
	mutex sync.Mutex
	key   []byte
	xof   blake2b.XOF
}

// NewKeyedPRNG builds a deterministic PRNG seeded by key.
func NewKeyedPRNG(key []byte) (*KeyedPRNG, error) {
	xof, err := blake2b.NewXOF(blake2b.OutputLengthUnknown, key)
	if err != nil {
		return nil, err
	}
	k := make([]byte, len(key))
	copy(k, key)
	return &KeyedPRNG{key: k, xof: xof}, nil
}

// Read implements PRNG.
func (prng *KeyedPRNG) Read(sum []byte) (n int, err error) {
	prng.mutex.Lock()
	defer prng.mutex.Unlock()
	return prng.xof.Read(sum)
}

// Reset rewinds the stream to its initial state.
func (prng *KeyedPRNG) Reset() {
	prng.mutex.Lock()
	defer prng.mutex.Unlock()
	prng.xof.Reset()
}
