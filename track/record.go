package track

// TrackingRecord is the structured per-PRN-period output consumed by
// the downstream telemetry decoder (out of scope, per spec.md §6).
type TrackingRecord struct {
	PromptI, PromptQ      float64
	TrackingTimestampSecs float64
	CarrierPhaseRads      float64
	CodePhaseSecs         float64
	CN0DbHz               float64
	FlagValidTracking     bool

	// Passthrough of PRN/system from the acquisition record.
	PRN       int
	SystemTag string
}
