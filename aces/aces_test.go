package aces

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aces-fhe/aces/channel"
	"github.com/aces-fhe/aces/errs"
	"github.com/aces-fhe/aces/internal/sampling"
)

func testPRNG(t *testing.T, seed string) sampling.PRNG {
	t.Helper()
	prng, err := sampling.NewKeyedPRNG([]byte(seed))
	require.NoError(t, err)
	return prng
}

func newTestChannel(t *testing.T, lit channel.ParametersLiteral, seed string) *channel.Channel {
	t.Helper()
	params, err := channel.NewParameters(lit)
	require.NoError(t, err)
	ch, err := channel.NewChannel(params, testPRNG(t, seed))
	require.NoError(t, err)
	return ch
}

// TestRoundTripSmallModulus checks decrypt(encrypt(m)) = m across every
// plaintext in a small Z_p under a fresh channel.
func TestRoundTripSmallModulus(t *testing.T) {
	require := require.New(t)
	ch := newTestChannel(t, channel.ParametersLiteral{
		P: 4, Q: 47601551, Degree: 5, Width: 10, AllowCompositeReplacement: true,
	}, "round-trip-s1")
	defer ch.Zeroize()

	enc := NewEncryptor(ch.Publish())
	dec := NewDecryptor(ch)
	defer dec.Destroy()

	for m := uint64(0); m < 4; m++ {
		ct, lv, err := enc.Encrypt(testPRNG(t, "round-trip-s1-pt"), m)
		require.NoError(err)
		defer lv.Zeroize()

		got, err := dec.Decrypt(ct)
		require.NoError(err)
		require.Equal(m, got)
	}
}

// TestRoundTripWideModulusNarrowWidth checks round-tripping under a
// channel with a large q/p ratio but a narrow ciphertext width (N=2), after
// any prime-to-composite replacement of q.
func TestRoundTripWideModulusNarrowWidth(t *testing.T) {
	require := require.New(t)
	ch := newTestChannel(t, channel.ParametersLiteral{
		P: 32, Q: 33554433, Degree: 10, Width: 2, AllowCompositeReplacement: true,
	}, "round-trip-s2")
	defer ch.Zeroize()

	enc := NewEncryptor(ch.Publish())
	dec := NewDecryptor(ch)
	defer dec.Destroy()

	ct, lv, err := enc.Encrypt(testPRNG(t, "round-trip-s2-pt"), 3)
	require.NoError(err)
	defer lv.Zeroize()

	got, err := dec.Decrypt(ct)
	require.NoError(err)
	require.Equal(uint64(3), got)
}

// TestRoundTripMinimalWidth exercises round-tripping with the smallest
// allowed ciphertext width, N=1.
func TestRoundTripMinimalWidth(t *testing.T) {
	require := require.New(t)
	ch := newTestChannel(t, channel.ParametersLiteral{
		P: 27, Q: 50000011, Degree: 10, Width: 1, AllowCompositeReplacement: true,
	}, "round-trip-s4")
	defer ch.Zeroize()

	enc := NewEncryptor(ch.Publish())
	dec := NewDecryptor(ch)
	defer dec.Destroy()

	for _, m := range []uint64{0, 1, 13, 26} {
		ct, lv, err := enc.Encrypt(testPRNG(t, "round-trip-s4-pt"), m)
		require.NoError(err)
		got, err := dec.Decrypt(ct)
		require.NoError(err)
		require.Equal(m, got)
		lv.Zeroize()
	}
}

// TestDecryptWarnsPastCorrectnessBound checks that a ciphertext whose
// UpLvl has been pushed past q/p still decrypts (best effort) but also
// reports a *errs.DecryptWarning.
func TestDecryptWarnsPastCorrectnessBound(t *testing.T) {
	require := require.New(t)
	ch := newTestChannel(t, channel.ParametersLiteral{
		P: 4, Q: 47601551, Degree: 5, Width: 10, AllowCompositeReplacement: true,
	}, "decrypt-warning")
	defer ch.Zeroize()

	enc := NewEncryptor(ch.Publish())
	dec := NewDecryptor(ch)
	defer dec.Destroy()

	ct, lv, err := enc.Encrypt(testPRNG(t, "decrypt-warning-pt"), 1)
	require.NoError(err)
	defer lv.Zeroize()

	ct.UpLvl = ch.Params.Q() / ch.Params.P()

	_, err = dec.Decrypt(ct)
	require.Error(err)
	require.IsType(&errs.DecryptWarning{}, err)
}

// TestDecryptPanicsOnMismatchedWidth covers the ArithmeticError panic path
// for caller misuse (a ciphertext built for a different degree).
func TestDecryptPanicsOnMismatchedWidth(t *testing.T) {
	ch := newTestChannel(t, channel.ParametersLiteral{
		P: 4, Q: 47601551, Degree: 5, Width: 10, AllowCompositeReplacement: true,
	}, "decrypt-panic")
	defer ch.Zeroize()

	dec := NewDecryptor(ch)
	defer dec.Destroy()

	bad := &Ciphertext{C: nil, Cp: ch.Ring.Zero(), UpLvl: 0}
	require.Panics(t, func() { _, _ = dec.Decrypt(bad) })
}

func TestLevelVectorScalarAndZeroize(t *testing.T) {
	require := require.New(t)
	lv := &LevelVector{K: []uint64{2, 3, 5}}
	lvlE := []uint64{7, 11, 13}
	require.Equal(uint64(2*7+3*11+5*13), lv.Scalar(lvlE))

	lv.Zeroize()
	for _, k := range lv.K {
		require.Equal(uint64(0), k)
	}
}

// TestPseudoNegatesDecComponents checks Ciphertext.Pseudo against a
// direct evaluation of ct's own components: Enc is c'(1), and each
// Dec[i] is -c_i(1) mod q, matching pyaces/aces.py's ACESCipher.pseudo.
func TestPseudoNegatesDecComponents(t *testing.T) {
	require := require.New(t)
	ch := newTestChannel(t, channel.ParametersLiteral{
		P: 4, Q: 47601551, Degree: 5, Width: 10, AllowCompositeReplacement: true,
	}, "pseudo")
	defer ch.Zeroize()

	enc := NewEncryptor(ch.Publish())
	ct, lv, err := enc.Encrypt(testPRNG(t, "pseudo-pt"), 2)
	require.NoError(err)
	defer lv.Zeroize()

	pseudo := ct.Pseudo(ch.Ring)
	require.Equal(ch.Ring.EvalAtOmega(ct.Cp), pseudo.Enc)
	for i, ci := range ct.C {
		require.Equal((ch.Params.Q()-ch.Ring.EvalAtOmega(ci))%ch.Params.Q(), pseudo.Dec[i])
	}
}

// TestCorefresherProducesDecryptableCiphertexts checks that Corefresher's
// re-encryptions decrypt to the pseudo-cipher's residues mod p, the
// property Algebra.Refresh relies on when it later multiplies these
// against a Refresher's images.
func TestCorefresherProducesDecryptableCiphertexts(t *testing.T) {
	require := require.New(t)
	ch := newTestChannel(t, channel.ParametersLiteral{
		P: 4, Q: 47601551, Degree: 5, Width: 10, AllowCompositeReplacement: true,
	}, "corefresher")
	defer ch.Zeroize()

	enc := NewEncryptor(ch.Publish())
	dec := NewDecryptor(ch)
	defer dec.Destroy()

	ct, lv, err := enc.Encrypt(testPRNG(t, "corefresher-pt"), 2)
	require.NoError(err)
	defer lv.Zeroize()

	pseudo := ct.Pseudo(ch.Ring)
	a, b, err := ct.Corefresher(ch.Ring, enc, ch.Params.P(), testPRNG(t, "corefresher-enc"))
	require.NoError(err)
	require.Len(a, len(ct.C))

	for i, ci := range a {
		got, err := dec.Decrypt(ci)
		require.NoError(err)
		require.Equal(pseudo.Dec[i]%ch.Params.P(), got)
	}
	got, err := dec.Decrypt(b)
	require.NoError(err)
	require.Equal(pseudo.Enc%ch.Params.P(), got)
}

// TestRefreshClassifierMatchesDirectDecryption cross-validates
// IsRefreshable's big.Int ground-truth formula against an independent
// codepath: whenever the classifier reports a ciphertext refreshable,
// the mod-p combination of its pseudo residues against the secret key's
// own evaluated images must equal what Decryptor.Decrypt computes via
// ordinary ring arithmetic. This is the exact property Refresh depends
// on the classifier providing before it trusts a recombination.
func TestRefreshClassifierMatchesDirectDecryption(t *testing.T) {
	require := require.New(t)
	ch := newTestChannel(t, channel.ParametersLiteral{
		P: 4, Q: 47601551, Degree: 5, Width: 10, AllowCompositeReplacement: true,
	}, "classifier")
	defer ch.Zeroize()

	classifier := NewRefreshClassifier(ch)

	secret := ch.Secret()
	defer func() {
		for _, xi := range secret {
			xi.Zeroize()
		}
	}()
	p := ch.Params.P()
	xImages := make([]uint64, len(secret))
	for i, xi := range secret {
		xImages[i] = ch.Ring.EvalAtOmega(xi) % p
	}

	enc := NewEncryptor(ch.Publish())
	dec := NewDecryptor(ch)
	defer dec.Destroy()

	sawRefreshable := false
	for trial := 0; trial < 40; trial++ {
		ct, lv, err := enc.Encrypt(testPRNG(t, fmt.Sprintf("classifier-pt-%d", trial)), uint64(trial)%p)
		require.NoError(err)

		pseudo := ct.Pseudo(ch.Ring)
		want, err := dec.Decrypt(ct)
		require.NoError(err)

		if classifier.IsRefreshable(pseudo) {
			sawRefreshable = true
			got := pseudo.Enc % p
			for i, di := range pseudo.Dec {
				got = (got + (di%p)*xImages[i]) % p
			}
			require.Equal(want, got, "classifier accepted a ciphertext whose corefresher combination would not reconstruct the decrypted value")
		}

		lv.Zeroize()
	}
	require.True(sawRefreshable, "expected at least one of 40 fresh encryptions to be classified refreshable")
}

// TestRefreshClassifierRejectsMismatchedLength guards against a caller
// passing a pseudo-cipher built for a different channel.
func TestRefreshClassifierRejectsMismatchedLength(t *testing.T) {
	require := require.New(t)
	ch := newTestChannel(t, channel.ParametersLiteral{
		P: 4, Q: 47601551, Degree: 5, Width: 10, AllowCompositeReplacement: true,
	}, "classifier-length")
	defer ch.Zeroize()

	classifier := NewRefreshClassifier(ch)
	require.False(classifier.IsRefreshable(&PseudoCipher{Dec: []uint64{1, 2, 3}, Enc: 0}))
}

func TestGenerateRefresherEncryptsSecretImages(t *testing.T) {
	require := require.New(t)
	ch := newTestChannel(t, channel.ParametersLiteral{
		P: 4, Q: 47601551, Degree: 5, Width: 10, AllowCompositeReplacement: true,
	}, "refresher-gen")
	defer ch.Zeroize()

	enc := NewEncryptor(ch.Publish())
	dec := NewDecryptor(ch)
	defer dec.Destroy()

	refresher, err := GenerateRefresher(ch, enc, testPRNG(t, "refresher-gen-pt"))
	require.NoError(err)
	require.Len(refresher.Images, ch.Params.Degree())

	for _, img := range refresher.Images {
		_, err := dec.Decrypt(img)
		require.NoError(err)
	}
}
