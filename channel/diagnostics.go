package channel

import (
	"math/big"

	"github.com/ALTree/bigfloat"
)

// Diagnostics reports how close a ciphertext's public noise bound sits to
// the correctness cliff uplvl < q/p. Exposed as a returned value rather
// than a print, since the core has no CLI to print from.
type Diagnostics struct {
	// SaturationPercent is 100 * uplvl / (q/p); values >= 100 mean
	// decryption is no longer guaranteed correct.
	SaturationPercent float64
	// HeadroomBits is log2((q/p) / uplvl), the remaining noise budget in
	// bits before the ciphertext crosses the correctness cliff. Negative
	// once saturation exceeds 100%.
	HeadroomBits float64
}

// Diagnose computes Diagnostics for a ciphertext whose public bound is
// uplvl, using github.com/ALTree/bigfloat for the log2 headroom since q
// can run into the hundreds of millions under larger parameter sets and
// the ratio q/p/uplvl needs more precision than a plain float64 division
// reliably carries once uplvl is itself close to q/p.
func (c *Channel) Diagnose(uplvl uint64) Diagnostics {
	q := new(big.Float).SetPrec(128).SetUint64(c.Params.Q())
	p := new(big.Float).SetPrec(128).SetUint64(c.Params.P())
	bound := new(big.Float).SetPrec(128).SetUint64(uplvl)
	if uplvl == 0 {
		bound.SetFloat64(1)
	}

	cliff := new(big.Float).Quo(q, p)
	ratio := new(big.Float).Quo(bound, cliff)

	pct, _ := new(big.Float).Mul(ratio, big.NewFloat(100)).Float64()

	headroomRatio := new(big.Float).Quo(cliff, bound)
	two := big.NewFloat(2)
	logHeadroom := bigfloat.Log(headroomRatio)
	logTwo := bigfloat.Log(two)
	headroomBits, _ := new(big.Float).Quo(logHeadroom, logTwo).Float64()

	return Diagnostics{SaturationPercent: pct, HeadroomBits: headroomBits}
}
