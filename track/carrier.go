package track

import "math"

// carrier.go generates the local carrier replica used to wipe off the
// incoming IF+Doppler carrier before correlation. The teacher's
// MixCarr (sdrcmn.go) quantizes the NCO into a fixed-point lookup
// table for its byte-stream front end; this pipeline works in
// complex64 directly, so the NCO is evaluated in floating point with
// math.Sincos, grounded on the same phase-accumulator structure.

// mixCarrier multiplies in[i] by exp(-j*phase) for each sample, where
// phase advances by 2*pi*freqHz/fsHz per sample starting at phase0,
// and returns the residual phase (mod 2*pi) for the next block.
func mixCarrier(in []Sample, freqHz, fsHz, phase0 float64) (out []complex128, remPhaseRad float64) {
	n := len(in)
	out = make([]complex128, n)
	step := 2 * math.Pi * freqHz / fsHz
	phase := phase0
	for i := 0; i < n; i++ {
		s, c := math.Sincos(phase)
		// exp(-j*phase) = cos(phase) - j*sin(phase)
		rot := complex(c, -s)
		out[i] = complex128(in[i]) * rot
		phase += step
	}
	rem := math.Mod(phase, 2*math.Pi)
	return out, rem
}
