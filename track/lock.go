package track

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// lock.go implements the SNV (signal-to-noise variance) C/N0
// estimator and the carrier lock detector, grounded on the
// CN0_ESTIMATION_SAMPLES/MINIMUM_VALID_CN0 constants and the
// estimation-counter cadence in the original tracking block; the
// estimator bodies (gps_l1_ca_CN0_SNV, carrier_lock_detector) were
// external to the retrieved source, so this implements the standard
// fourth-order-moment SNV method against the buffered Prompt samples,
// with the underlying moments computed through gonum/stat rather than
// hand-rolled sums.

// snvCN0DbHz estimates C/N0 in dB-Hz from a window of Prompt
// correlations using the fourth-order moment method: the squared
// envelope's first and second moments separate signal power from
// noise power, which combined with the coherent integration time give
// C/N0. m2 is the mean squared envelope (stat.Mean); m4, its second
// moment, is recovered from stat.Variance via Var(pw) = m4 - m2^2, with
// stat.Variance's n-1 sample variance rescaled to the population
// variance that identity uses.
func snvCN0DbHz(prompt []complex128, coherentIntegrationSecs float64) float64 {
	pw := make([]float64, len(prompt))
	for i, p := range prompt {
		pw[i] = real(p)*real(p) + imag(p)*imag(p)
	}
	m2 := stat.Mean(pw, nil)
	n := float64(len(pw))
	m4 := stat.Variance(pw, nil)*(n-1)/n + m2*m2

	disc := 2*m2*m2 - m4
	if disc < 0 {
		disc = 0
	}
	pd := math.Sqrt(disc)
	pn := m2 - pd
	if pn <= 0 {
		// No separable noise floor: report the estimator's practical
		// ceiling rather than +Inf/NaN.
		return 60.0
	}
	snr := pd / pn
	if snr <= 0 {
		return 0
	}
	return 10*math.Log10(snr) + 10*math.Log10(1/coherentIntegrationSecs)
}

// carrierLockTest returns the imbalance between in-phase and
// quadrature Prompt energy, normalized by total Prompt power, in
// [0,1]: values near 1 indicate a locked carrier (energy concentrated
// in I), values near 0 indicate the energy is smeared evenly across
// I/Q by residual frequency error. The I^2/Q^2 energies are averaged
// with stat.Mean rather than summed; the ratio is unaffected since
// both terms divide by the same window length.
func carrierLockTest(prompt []complex128) float64 {
	i2 := make([]float64, len(prompt))
	q2 := make([]float64, len(prompt))
	for k, p := range prompt {
		i, q := real(p), imag(p)
		i2[k] = i * i
		q2[k] = q * q
	}
	meanI2 := stat.Mean(i2, nil)
	meanQ2 := stat.Mean(q2, nil)
	meanPower := meanI2 + meanQ2
	if meanPower == 0 {
		return 0
	}
	return math.Abs(meanI2-meanQ2) / meanPower
}

// lockState tracks the running carrier-lock-fail counter across
// successive CN0_ESTIMATION_SAMPLES-sized windows.
type lockState struct {
	failCounter int
}

// evaluate updates the fail counter given a lock-test value and a
// lockThreshold, and reports whether the channel should declare loss
// of lock (fail counter exceeds MaxLockFailCounter).
func (s *lockState) evaluate(lockTest, cn0DbHz, lockThreshold float64) (lostLock bool) {
	if lockTest < lockThreshold || cn0DbHz < MinimumValidCN0DbHz {
		s.failCounter++
	} else if s.failCounter > 0 {
		s.failCounter--
	}
	if s.failCounter > MaxLockFailCounter {
		s.failCounter = 0
		return true
	}
	return false
}
