package channel

import (
	"encoding/binary"

	"github.com/zeebo/blake3"
)

// Fingerprint derives a content-addressed identifier for the channel's
// public material, for use as a log field or cache key by callers that
// juggle several channels — not a serialization format, just a stable
// digest over the published parameters and key material.
func (c *Channel) Fingerprint() [32]byte {
	h := blake3.New()

	writeUint64(h, c.Params.P())
	writeUint64(h, c.Params.Q())
	writeUint64(h, uint64(c.Params.Degree()))
	writeUint64(h, uint64(c.Params.Width()))

	for _, coeff := range c.Ring.U.Coeffs {
		writeUint64(h, coeff)
	}
	for _, row := range c.F0 {
		for _, poly := range row {
			for _, coeff := range poly.Coeffs {
				writeUint64(h, coeff)
			}
		}
	}
	for _, poly := range c.F1 {
		for _, coeff := range poly.Coeffs {
			writeUint64(h, coeff)
		}
	}

	var out [32]byte
	digest := h.Sum(nil)
	copy(out[:], digest)
	return out
}

func writeUint64(h *blake3.Hasher, v uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	h.Write(buf[:])
}
