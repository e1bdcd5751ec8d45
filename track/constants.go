// Package track implements the GPS L1 C/A signal-tracking stage of a
// software-defined GNSS receiver: the closed-loop DLL/PLL that refines
// code delay and carrier Doppler for one satellite channel, handed over
// from an external acquisition stage.
package track

// Constants from GPS ICD and the tracking control-loop literature.
const (
	GPSL1FreqHz          = 1575420000.0
	CACodeRateHz         = 1023000.0
	CACodeLengthChips    = 1023
	CN0EstimationSamples = 10
	MinimumValidCN0DbHz  = 25.0
	MaxLockFailCounter   = 200

	// DefaultCarrierLockThreshold resolves spec.md's open question about
	// the lock-test threshold: the literal value in the original source
	// is 5, compared against a quantity bounded by ~1, which cannot be
	// the intended comparison. 0.85 is the behaviorally plausible
	// threshold for a normalized lock-test statistic in [0,1].
	DefaultCarrierLockThreshold = 0.85
)

// LossOfLock is pushed to a channel's control sink when the carrier
// lock-fail counter exceeds MaxLockFailCounter.
type ControlMessage int

const LossOfLock ControlMessage = 3
