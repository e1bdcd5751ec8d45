package track

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoopFilter_ZeroErrorHoldsNco(t *testing.T) {
	f := newLoopFilter(2.0, 0.001)
	f.nco = 123.0
	got := f.step(0)
	assert.Equal(t, 123.0, got)
}

// TestLoopFilter_ZeroInputHoldsAtZero is R2's loop-filter clause for
// zero-amplitude input: a filter that only ever sees a zero error
// never accumulates an NCO command.
func TestLoopFilter_ZeroInputHoldsAtZero(t *testing.T) {
	f := newLoopFilter(2.0, 0.001)
	for i := 0; i < 50; i++ {
		got := f.step(0)
		assert.Equal(t, 0.0, got)
	}
}

// TestLoopFilter_SettlesAfterTransient checks the filter stops moving
// once the error returns to and stays at zero; the PI structure has no
// leak term, so it is expected to hold its accumulated NCO command
// rather than decay it away.
func TestLoopFilter_SettlesAfterTransient(t *testing.T) {
	f := newLoopFilter(2.0, 0.001)
	f.step(0.5)
	f.step(0)
	settled := f.nco
	for i := 0; i < 20; i++ {
		f.step(0)
	}
	assert.Equal(t, settled, f.nco)
}

func TestLoopFilter_CoefficientsScaleWithBandwidth(t *testing.T) {
	narrow := newLoopFilter(1.0, 0.001)
	wide := newLoopFilter(10.0, 0.001)
	assert.Less(t, narrow.aw, wide.aw)
	assert.Less(t, narrow.w2, wide.w2)
}
