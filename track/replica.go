package track

import "math"

// replica.go resamples the 1025-element sentinel code buffer (built by
// BuildReplicaBuffer) into Early/Prompt/Late chip sequences aligned to
// the incoming sample vector, grounded on sdrcmn.go's ResCode.

// roundTiesAway rounds to the nearest integer, breaking ties away from
// zero (matching C's round(), used throughout the original tracking
// block's chip-index arithmetic).
func roundTiesAway(x float64) float64 {
	if x >= 0 {
		return math.Floor(x + 0.5)
	}
	return math.Ceil(x - 0.5)
}

// replicaSet holds the three resampled chip sequences a correlator
// block needs, plus the residual code phase carried into the next
// block.
type replicaSet struct {
	Early, Prompt, Late []float64
	RemCodePhaseChips   float64
}

// resampleOne walks the code buffer at the chip rate implied by
// codeFreqHz/fsHz, starting from startChips, for n samples. Chip phase
// is normalized into [0, codeLen) by subtracting floored multiples,
// matching sdrcmn.go's ResCode, then rounded to the nearest chip index
// rather than floored; a phase that rounds up to codeLen lands on the
// trailing sentinel in buf (a copy of chip 0) rather than being clamped.
// The normalized phase is never negative, so the leading sentinel is
// not read here.
func resampleOne(buf []int16, n int, codePhaseStepChips, startChips float64) []float64 {
	codeLen := float64(CACodeLengthChips)
	out := make([]float64, n)
	phase := startChips - codeLen*math.Floor(startChips/codeLen)
	for i := 0; i < n; i++ {
		if phase >= codeLen {
			phase -= codeLen
		}
		idx := int(roundTiesAway(phase))
		out[i] = float64(buf[idx+1]) // +1 for the leading sentinel; idx ranges [0, codeLen]
		phase += codePhaseStepChips
	}
	return out
}

// resampleReplica returns the Early/Prompt/Late chip sequences offset
// by +/-spacingChips around the Prompt alignment, plus the residual
// code phase carried into the next block. The lookup origin is the
// negated residual code phase: tcode_chips = -rem_code_phase_chips.
func resampleReplica(buf []int16, n int, codeFreqHz, fsHz, remCodePhaseChips, spacingChips float64) replicaSet {
	codePhaseStepChips := codeFreqHz / fsHz
	tcodeChips := -remCodePhaseChips
	early := resampleOne(buf, n, codePhaseStepChips, tcodeChips-spacingChips)
	prompt := resampleOne(buf, n, codePhaseStepChips, tcodeChips)
	late := resampleOne(buf, n, codePhaseStepChips, tcodeChips+spacingChips)

	codeLen := float64(CACodeLengthChips)
	lastPhase := tcodeChips + codePhaseStepChips*float64(n)
	rem := lastPhase - codeLen*math.Floor(lastPhase/codeLen)
	return replicaSet{Early: early, Prompt: prompt, Late: late, RemCodePhaseChips: rem}
}
