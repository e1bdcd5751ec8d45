package track

// loopfilter.go is a second-order loop filter (proportional + integral
// with a fixed update period), grounded on sdrinit.go's
// InitTrkPrmStruct coefficient derivation (Aw/W2 from the noise
// bandwidth) and sdrtrk.go's pll/dll accumulation step. Unlike the
// teacher, which recomputes dt per call from the sample vector, this
// filter is seeded with a fixed nominal update period at construction,
// matching the step(err) signature the channel uses per PRN period.

type loopFilter struct {
	aw, w2 float64
	ts     float64

	nco    float64
	lastErr float64
}

// newLoopFilter builds a loop filter with noise bandwidth bwHz and
// update period tsSecs (the nominal coherent integration time).
func newLoopFilter(bwHz, tsSecs float64) *loopFilter {
	k := bwHz / 0.53
	return &loopFilter{
		aw: 1.414 * k,
		w2: k * k,
		ts: tsSecs,
	}
}

// step feeds a new discriminator error into the filter and returns the
// updated NCO correction.
func (f *loopFilter) step(err float64) float64 {
	f.nco += f.aw*(err-f.lastErr) + f.w2*f.ts*err
	f.lastErr = err
	return f.nco
}
