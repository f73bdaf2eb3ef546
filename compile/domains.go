package compile

import (
	"fmt"

	"github.com/aces-fhe/aces/aces"
	"github.com/aces-fhe/aces/algebra"
	"github.com/aces-fhe/aces/internal/sampling"
)

// PlainDomain evaluates a Program directly over Z_p, for checking a
// circuit's expected plaintext result alongside the ciphertext and level
// evaluations the other two domains produce.
type PlainDomain struct {
	P uint64
}

func (d PlainDomain) Add(a, b interface{}) (interface{}, error) {
	av, bv, err := asUint64Pair(a, b)
	if err != nil {
		return nil, err
	}
	return (av + bv) % d.P, nil
}

func (d PlainDomain) Mult(a, b interface{}) (interface{}, error) {
	av, bv, err := asUint64Pair(a, b)
	if err != nil {
		return nil, err
	}
	return (av * bv) % d.P, nil
}

func asUint64Pair(a, b interface{}) (uint64, uint64, error) {
	av, ok := a.(uint64)
	if !ok {
		return 0, 0, fmt.Errorf("compile: plaintext domain expects uint64 leaves, got %T", a)
	}
	bv, ok := b.(uint64)
	if !ok {
		return 0, 0, fmt.Errorf("compile: plaintext domain expects uint64 leaves, got %T", b)
	}
	return av, bv, nil
}

// CipherDomain evaluates a Program over ciphertexts using an Algebra's
// add and tensor-based multiply. It optionally implements Refreshable
// when Refresher, Classifier and PRNG are all set, for callers that
// refresh a sub-circuit's result between two Compile/Eval passes.
// Classifier must come from aces.NewRefreshClassifier, built by whoever
// holds the channel's secret key — Algebra itself never sees it.
type CipherDomain struct {
	Algebra    *algebra.Algebra
	Refresher  *aces.Refresher
	Classifier *aces.RefreshClassifier
	PRNG       sampling.PRNG
}

func (d CipherDomain) Add(a, b interface{}) (interface{}, error) {
	av, bv, err := asCiphertextPair(a, b)
	if err != nil {
		return nil, err
	}
	return d.Algebra.Add(av, bv), nil
}

func (d CipherDomain) Mult(a, b interface{}) (interface{}, error) {
	av, bv, err := asCiphertextPair(a, b)
	if err != nil {
		return nil, err
	}
	return d.Algebra.Mult(av, bv), nil
}

// Refresh implements Refreshable by calling through to Algebra.Refresh
// with the domain's configured refresher and classifier.
func (d CipherDomain) Refresh(v interface{}) (interface{}, error) {
	ct, ok := v.(*aces.Ciphertext)
	if !ok {
		return nil, fmt.Errorf("compile: ciphertext domain expects *aces.Ciphertext, got %T", v)
	}
	return d.Algebra.Refresh(ct, d.Refresher, d.Classifier, d.PRNG)
}

func asCiphertextPair(a, b interface{}) (*aces.Ciphertext, *aces.Ciphertext, error) {
	av, ok := a.(*aces.Ciphertext)
	if !ok {
		return nil, nil, fmt.Errorf("compile: ciphertext domain expects *aces.Ciphertext leaves, got %T", a)
	}
	bv, ok := b.(*aces.Ciphertext)
	if !ok {
		return nil, nil, fmt.Errorf("compile: ciphertext domain expects *aces.Ciphertext leaves, got %T", b)
	}
	return av, bv, nil
}

// LevelDomain evaluates a Program over level vectors using the algebra's
// level sub-algebra (addlvl, multlvl), for tracking the scalar noise
// bound a circuit will produce without touching any ciphertext.
type LevelDomain struct {
	Algebra *algebra.Algebra
	P       uint64
}

func (d LevelDomain) Add(a, b interface{}) (interface{}, error) {
	av, bv, err := asLevelPair(a, b)
	if err != nil {
		return nil, err
	}
	return d.Algebra.AddLevel(av, bv), nil
}

func (d LevelDomain) Mult(a, b interface{}) (interface{}, error) {
	av, bv, err := asLevelPair(a, b)
	if err != nil {
		return nil, err
	}
	return d.Algebra.MultLevel(av, bv, d.P), nil
}

func asLevelPair(a, b interface{}) (*aces.LevelVector, *aces.LevelVector, error) {
	av, ok := a.(*aces.LevelVector)
	if !ok {
		return nil, nil, fmt.Errorf("compile: level domain expects *aces.LevelVector leaves, got %T", a)
	}
	bv, ok := b.(*aces.LevelVector)
	if !ok {
		return nil, nil, fmt.Errorf("compile: level domain expects *aces.LevelVector leaves, got %T", b)
	}
	return av, bv, nil
}
