package track

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestCarrierDiscriminator_ZeroAtPerfectLock(t *testing.T) {
	assert.InDelta(t, 0.0, carrierDiscriminator(10, 0), 1e-12)
}

func TestCarrierDiscriminator_SignFollowsQuadrature(t *testing.T) {
	assert.Greater(t, carrierDiscriminator(10, 1), 0.0)
	assert.Less(t, carrierDiscriminator(10, -1), 0.0)
}

// TestCarrierDiscriminator_Bounded is R2's carr_error finiteness clause
// for arbitrary finite inputs, including the IP<0 branch. The raw
// discriminator output is an atan2-fold angle in radians, bounded by
// +/-pi/2, not the cycle-normalized value channel.go's running()
// produces after dividing by 2*pi.
func TestCarrierDiscriminator_Bounded(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		i := rapid.Float64Range(-1e6, 1e6).Draw(t, "i")
		q := rapid.Float64Range(-1e6, 1e6).Draw(t, "q")
		if i == 0 && q == 0 {
			return
		}
		d := carrierDiscriminator(i, q)
		assert.False(t, math.IsNaN(d))
		assert.False(t, math.IsInf(d, 0))
		assert.GreaterOrEqual(t, d, -math.Pi/2)
		assert.LessOrEqual(t, d, math.Pi/2)
	})
}

func TestCodeDiscriminator_ZeroWhenBalanced(t *testing.T) {
	assert.InDelta(t, 0.0, codeDiscriminator(5, 0, 5, 0), 1e-12)
}

func TestCodeDiscriminator_SignFollowsEarlyMinusLate(t *testing.T) {
	assert.Greater(t, codeDiscriminator(10, 0, 2, 0), 0.0)
	assert.Less(t, codeDiscriminator(2, 0, 10, 0), 0.0)
}

// TestCodeDiscriminator_ZeroAmplitudeTiesToZero covers R2's
// "code_error = 0 (by the /0 tie-break)" clause.
func TestCodeDiscriminator_ZeroAmplitudeTiesToZero(t *testing.T) {
	assert.Equal(t, 0.0, codeDiscriminator(0, 0, 0, 0))
}

func TestCodeDiscriminator_BoundedInUnitInterval(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ei := rapid.Float64Range(-1e6, 1e6).Draw(t, "ei")
		eq := rapid.Float64Range(-1e6, 1e6).Draw(t, "eq")
		li := rapid.Float64Range(-1e6, 1e6).Draw(t, "li")
		lq := rapid.Float64Range(-1e6, 1e6).Draw(t, "lq")
		d := codeDiscriminator(ei, eq, li, lq)
		assert.False(t, math.IsNaN(d))
		assert.GreaterOrEqual(t, d, -1.0)
		assert.LessOrEqual(t, d, 1.0)
	})
}
