package track

import "gonum.org/v1/gonum/floats"

// correlator.go integrates the carrier-wiped baseband against the
// Early/Prompt/Late code replicas, grounded on sdrtrk.go's correlator
// and sdrcmn.go's dot_23_int16 (which accumulate I*code and Q*code
// over the block). Here the dot products are delegated to
// gonum/floats rather than hand-rolled, since mixCarrier and
// resampleReplica already produce plain float64/complex128 slices.

// epl is the set of six correlation accumulations a DLL/PLL update
// needs: in-phase and quadrature integrals against the Early, Prompt,
// and Late replicas.
type epl struct {
	EarlyI, EarlyQ   float64
	PromptI, PromptQ float64
	LateI, LateQ     float64
}

// correlate wipes the carrier off in and integrates the result against
// the three code replicas, returning the EPL accumulations and the
// residual carrier/code phase to seed the next block.
func correlate(in []Sample, carrierFreqHz, fsHz, remCarrierPhaseRad float64, buf []int16, codeFreqHz, remCodePhaseChips, spacingChips float64) (epl, float64, float64) {
	wiped, remCarrier := mixCarrier(in, carrierFreqHz, fsHz, remCarrierPhaseRad)

	n := len(in)
	ival := make([]float64, n)
	qval := make([]float64, n)
	for i, s := range wiped {
		ival[i] = real(s)
		qval[i] = imag(s)
	}

	rep := resampleReplica(buf, n, codeFreqHz, fsHz, remCodePhaseChips, spacingChips)

	result := epl{
		EarlyI:  floats.Dot(ival, rep.Early),
		EarlyQ:  floats.Dot(qval, rep.Early),
		PromptI: floats.Dot(ival, rep.Prompt),
		PromptQ: floats.Dot(qval, rep.Prompt),
		LateI:   floats.Dot(ival, rep.Late),
		LateQ:   floats.Dot(qval, rep.Late),
	}
	return result, remCarrier, rep.RemCodePhaseChips
}
