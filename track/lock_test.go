package track

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func strongSignalWindow() []complex128 {
	w := make([]complex128, CN0EstimationSamples)
	for i := range w {
		w[i] = complex(1000, 5)
	}
	return w
}

func TestCarrierLockTest_NearOneForCleanInPhaseSignal(t *testing.T) {
	lt := carrierLockTest(strongSignalWindow())
	assert.Greater(t, lt, 0.99)
}

func TestCarrierLockTest_LowWhenEnergySpreadAcrossQuadrature(t *testing.T) {
	w := make([]complex128, CN0EstimationSamples)
	for i := range w {
		w[i] = complex(1, 1)
	}
	lt := carrierLockTest(w)
	assert.InDelta(t, 0.0, lt, 1e-9)
}

func TestSnvCN0DbHz_Finite(t *testing.T) {
	got := snvCN0DbHz(strongSignalWindow(), float64(CACodeLengthChips)/CACodeRateHz)
	assert.False(t, math.IsNaN(got))
	assert.False(t, math.IsInf(got, 0))
}

// TestLockState_Evaluate is P5/S4's counter-based lock-loss clause:
// sustained below-threshold evaluations eventually report lost lock
// exactly once, after which the counter resets.
func TestLockState_Evaluate(t *testing.T) {
	s := &lockState{}
	lost := false
	for i := 0; i <= MaxLockFailCounter; i++ {
		if s.evaluate(0.0, 0.0, DefaultCarrierLockThreshold) {
			lost = true
			break
		}
	}
	assert.True(t, lost)
	assert.Equal(t, 0, s.failCounter)
}

func TestLockState_RecoversWithoutLoss(t *testing.T) {
	s := &lockState{}
	for i := 0; i < 5; i++ {
		assert.False(t, s.evaluate(0.0, 0.0, DefaultCarrierLockThreshold))
	}
	for i := 0; i < 5; i++ {
		assert.False(t, s.evaluate(1.0, 60.0, DefaultCarrierLockThreshold))
	}
	assert.Equal(t, 0, s.failCounter)
}
