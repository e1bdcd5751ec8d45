package track

import "math"

// discriminator.go computes the carrier and code phase-error signals
// fed to the loop filters, grounded on sdrtrk.go's pll/dll.

// carrierDiscriminator is the two-quadrant Costas discriminator: it is
// insensitive to the 180-degree data-bit phase ambiguity because it
// folds IP<0 back through the atan2(-Q,-I) branch. The result is a raw
// angle in radians; the caller normalizes it to cycles.
func carrierDiscriminator(promptI, promptQ float64) float64 {
	if promptI >= 0 {
		return math.Atan2(promptQ, promptI)
	}
	return math.Atan2(-promptQ, -promptI)
}

// codeDiscriminator is the normalized Early-minus-Late envelope
// discriminator: (|E|-|L|)/(|E|+|L|).
func codeDiscriminator(earlyI, earlyQ, lateI, lateQ float64) float64 {
	early := math.Hypot(earlyI, earlyQ)
	late := math.Hypot(lateI, lateQ)
	denom := early + late
	if denom == 0 {
		return 0
	}
	return (early - late) / denom
}
