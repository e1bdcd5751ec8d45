package track

// AcquisitionResult is the small immutable value type captured at
// StartTracking. Per spec.md §9's re-architecture guidance, the channel
// takes a copy of the salient acquisition fields rather than retaining
// an aliasing reference into the acquisition stage's mutable state.
type AcquisitionResult struct {
	AcqDelaySamples       float64
	AcqDopplerHz          float64
	AcqSamplestampSamples uint64
	PRN                   int
	SystemTag             string
}
