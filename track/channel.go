package track

import (
	"math"

	"github.com/charmbracelet/log"
)

// channel.go is the orchestration engine that ties code generation,
// the carrier/code NCOs, the correlator, the discriminators, the loop
// filters and the lock detector into the per-PRN-period tracking loop,
// grounded on the original tracking block's start_tracking() (pull-in
// alignment) and general_work() (the steady-state DLL/PLL update).

type channelState int

const (
	// stateDisarmed is the zero value: a Channel that has never had
	// StartTracking called, or one that has declared loss of lock, sits
	// here until externally re-armed.
	stateDisarmed channelState = iota
	statePullIn
	stateRunning
)

// Channel is one satellite tracking channel. It is not safe for
// concurrent use: the host streaming runtime must serialize calls to
// Step for a given Channel.
type Channel struct {
	cfg     Config
	binding ChannelBinding
	acq     AcquisitionResult

	state channelState

	sampleCounter      uint64
	sampleCounterSecs  float64
	nextPRNLengthSamp  int
	currentPRNLengthSamp int

	carrierDopplerHz    float64
	codeFreqHz          float64
	codePhaseSamples    float64
	remCodePhaseSamples float64
	nextRemCodePhaseSamples float64
	remCarrierPhaseRad  float64
	accCarrierPhaseRad  float64

	replicaBuf []int16

	carrierLoop *loopFilter
	codeLoop    *loopFilter

	lock        lockState
	cn0Window   []complex128
	cn0Counter  int
	cn0DbHz     float64
	lockTestVal float64

	dump    *dumpWriter
	lastSeg int64
}

// NewChannel validates cfg/binding, generates the PRN replica, and
// builds the channel's loop filters seeded with the nominal PRN
// period.
func NewChannel(cfg Config, binding ChannelBinding) (*Channel, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := binding.Validate(); err != nil {
		return nil, err
	}
	code, err := GencodeL1CA(binding.PRN)
	if err != nil {
		return nil, err
	}
	nominalTs := float64(CACodeLengthChips) / CACodeRateHz

	ch := &Channel{
		cfg:         cfg,
		binding:     binding,
		replicaBuf:  BuildReplicaBuffer(code),
		carrierLoop: newLoopFilter(cfg.PLLBwHz, nominalTs),
		codeLoop:    newLoopFilter(cfg.DLLBwHz, nominalTs),
		cn0Window:   make([]complex128, 0, CN0EstimationSamples),
	}
	if cfg.Dump {
		ch.dump = newDumpWriter(cfg.DumpSink)
	}
	return ch, nil
}

// StartTracking aligns the channel to an acquisition result and arms
// pull-in, grounded on start_tracking(): it corrects the acquired code
// phase for the elapsed acquisition-to-tracking delay under a
// Doppler-modified PRN period, and seeds the loop filters with the
// acquired Doppler and corrected code phase.
func (c *Channel) StartTracking(acq AcquisitionResult) {
	c.acq = acq

	radialVelocity := (GPSL1FreqHz + acq.AcqDopplerHz) / GPSL1FreqHz
	c.codeFreqHz = radialVelocity * CACodeRateHz

	tChipMod := 1 / c.codeFreqHz
	tPrnMod := tChipMod * float64(CACodeLengthChips)
	tPrnModSamples := tPrnMod * c.cfg.FsHz
	c.nextPRNLengthSamp = int(roundTiesAway(tPrnModSamples))

	acqTrkDiffSamples := float64(c.sampleCounter) - float64(acq.AcqSamplestampSamples)
	acqTrkDiffSeconds := acqTrkDiffSamples / c.cfg.FsHz

	tPrnTrueSeconds := float64(CACodeLengthChips) / CACodeRateHz
	tPrnTrueSamples := tPrnTrueSeconds * c.cfg.FsHz
	tPrnDiffSeconds := tPrnTrueSeconds - tPrnMod
	nPrnDiff := acqTrkDiffSeconds / tPrnTrueSeconds

	correctedPhase := math.Mod(acq.AcqDelaySamples+tPrnDiffSeconds*nPrnDiff*c.cfg.FsHz, tPrnTrueSamples)
	if correctedPhase < 0 {
		correctedPhase = tPrnModSamples + correctedPhase
	}

	c.carrierDopplerHz = acq.AcqDopplerHz
	c.carrierLoop = newLoopFilter(c.cfg.PLLBwHz, tPrnTrueSeconds)
	c.carrierLoop.nco = c.carrierDopplerHz
	c.codeLoop = newLoopFilter(c.cfg.DLLBwHz, tPrnTrueSeconds)
	c.codeLoop.nco = correctedPhase

	c.lock = lockState{}
	c.remCodePhaseSamples = 0
	c.remCarrierPhaseRad = 0
	c.nextRemCodePhaseSamples = 0
	c.accCarrierPhaseRad = 0
	c.codePhaseSamples = correctedPhase

	c.state = statePullIn

	log.Infof("tracking start on channel %d for satellite PRN %d (%s)",
		c.binding.ChannelID, c.binding.PRN, acq.SystemTag)
}

// Step advances the channel by one PRN-period block and returns the
// resulting tracking record. During pull-in, Step performs the
// acquisition-to-tracking sample alignment and returns a record with
// FlagValidTracking false; the caller should discard that many
// samples from its stream and call Step again to begin steady-state
// tracking. If the channel is disarmed (never armed via StartTracking,
// or put there by a prior loss-of-lock), Step consumes nothing and
// returns a single zeroed record until StartTracking is called again.
func (c *Channel) Step(in []Sample) (TrackingRecord, int, error) {
	switch c.state {
	case stateDisarmed:
		return TrackingRecord{PRN: c.binding.PRN}, 0, nil
	case statePullIn:
		return c.pullIn()
	default:
		return c.running(in)
	}
}

func (c *Channel) pullIn() (TrackingRecord, int, error) {
	acqToTrkDelay := float64(c.sampleCounter) - float64(c.acq.AcqSamplestampSamples)
	shiftCorrection := float64(c.nextPRNLengthSamp) - math.Mod(acqToTrkDelay, float64(c.nextPRNLengthSamp))
	samplesOffset := int(roundTiesAway(c.codePhaseSamples + shiftCorrection))

	c.sampleCounterSecs += float64(samplesOffset) / c.cfg.FsHz
	c.sampleCounter += uint64(samplesOffset)
	c.state = stateRunning
	c.currentPRNLengthSamp = c.nextPRNLengthSamp

	return TrackingRecord{PRN: c.binding.PRN, SystemTag: c.acq.SystemTag}, samplesOffset, nil
}

func (c *Channel) running(in []Sample) (TrackingRecord, int, error) {
	n := c.currentPRNLengthSamp
	if n <= 0 || n > len(in) {
		n = len(in)
	}
	block := in[:n]

	// IFFreqHz is intentionally not added to the mixing frequency here:
	// per the acquired-Doppler convention this channel follows, Doppler
	// is already reported inclusive of any IF offset.
	result, remCarrier, remCodeChips := correlate(block, c.carrierDopplerHz, c.cfg.FsHz, c.remCarrierPhaseRad, c.replicaBuf, c.codeFreqHz, c.remCodePhaseSamples*(c.codeFreqHz/c.cfg.FsHz), c.cfg.EarlyLateSpaceChips)
	c.remCarrierPhaseRad = remCarrier
	c.accCarrierPhaseRad += remCarrier

	prompt := complex(result.PromptI, result.PromptQ)
	if promptIsNaN(prompt) {
		log.Warnf("detected NaN/Inf Prompt sample at sample number %d, channel %d", c.sampleCounter, c.binding.ChannelID)
		c.sampleCounter += uint64(len(in))
		c.sampleCounterSecs += float64(len(in)) / c.cfg.FsHz
		return TrackingRecord{
			PRN: c.binding.PRN, SystemTag: c.acq.SystemTag,
			TrackingTimestampSecs: c.sampleCounterSecs,
		}, len(in), nil
	}

	carrErr := carrierDiscriminator(result.PromptI, result.PromptQ) / (2 * math.Pi)
	carrNco := c.carrierLoop.step(carrErr)
	c.carrierDopplerHz = c.acq.AcqDopplerHz + carrNco

	codeErr := codeDiscriminator(result.EarlyI, result.EarlyQ, result.LateI, result.LateQ)
	codeNco := c.codeLoop.step(codeErr)
	c.codeFreqHz = CACodeRateHz - codeNco

	tChipSeconds := 1 / c.codeFreqHz
	tPrnSeconds := tChipSeconds * float64(CACodeLengthChips)
	tPrnSamples := tPrnSeconds * c.cfg.FsHz
	c.remCodePhaseSamples = c.nextRemCodePhaseSamples
	kBlkSamples := tPrnSamples + c.remCodePhaseSamples

	tPrnTrueSeconds := float64(CACodeLengthChips) / CACodeRateHz
	tPrnTrueSamples := tPrnTrueSeconds * c.cfg.FsHz
	c.codePhaseSamples += tPrnSamples - tPrnTrueSamples
	if c.codePhaseSamples < 0 {
		c.codePhaseSamples = tPrnTrueSamples + c.codePhaseSamples
	}
	c.codePhaseSamples = math.Mod(c.codePhaseSamples, tPrnTrueSamples)

	c.nextPRNLengthSamp = int(roundTiesAway(kBlkSamples))
	c.nextRemCodePhaseSamples = kBlkSamples - float64(c.nextPRNLengthSamp)
	_ = remCodeChips

	lostLock := c.updateLock(prompt)

	c.sampleCounter += uint64(n)
	c.sampleCounterSecs += float64(n) / c.cfg.FsHz
	c.currentPRNLengthSamp = c.nextPRNLengthSamp

	rec := TrackingRecord{
		PromptI:               result.PromptI,
		PromptQ:               result.PromptQ,
		TrackingTimestampSecs: c.sampleCounterSecs,
		CarrierPhaseRads:      c.accCarrierPhaseRad,
		CodePhaseSecs:         c.codePhaseSamples / c.cfg.FsHz,
		CN0DbHz:               c.cn0DbHz,
		FlagValidTracking:     true,
		PRN:                   c.binding.PRN,
		SystemTag:             c.acq.SystemTag,
	}

	if c.dump != nil {
		if err := c.dump.write(dumpRecord{
			E:                    float32(math.Hypot(result.EarlyI, result.EarlyQ)),
			P:                    float32(math.Hypot(result.PromptI, result.PromptQ)),
			L:                    float32(math.Hypot(result.LateI, result.LateQ)),
			PromptI:              float32(result.PromptI),
			PromptQ:              float32(result.PromptQ),
			SampleCounter:        c.sampleCounter,
			AccCarrierPhaseRad:   float32(c.accCarrierPhaseRad),
			CarrierDopplerHz:     float32(c.carrierDopplerHz),
			CodeFreqHz:           float32(c.codeFreqHz),
			CarrierError:         float32(carrErr),
			CarrierNco:           float32(carrNco),
			CodeError:            float32(codeErr),
			CodeNco:              float32(codeNco),
			CN0SNVDbHz:           float32(c.cn0DbHz),
			CarrierLockTest:      float32(c.lockTestVal),
			SampleCounterSeconds: c.sampleCounterSecs,
		}); err != nil {
			log.Errorf("channel %d: dump write failed: %v", c.binding.ChannelID, err)
		}
	}

	if lostLock {
		c.state = stateDisarmed
		log.Infof("channel %d loss of lock, tracking disabled", c.binding.ChannelID)
		if c.binding.ControlSink != nil {
			select {
			case c.binding.ControlSink <- LossOfLock:
			default:
			}
		}
	}

	if seg := int64(c.sampleCounter / uint64(c.cfg.FsHz)); seg != c.lastSeg {
		c.lastSeg = seg
		log.Debugf("channel %d: satellite PRN %d, t=%ds, CN0=%.1f dB-Hz", c.binding.ChannelID, c.binding.PRN, seg, c.cn0DbHz)
	}

	return rec, n, nil
}

// updateLock feeds the Prompt correlation into the CN0/lock-test
// window and, once a full window has accumulated, re-evaluates the
// lock-fail counter. It reports whether the channel has just declared
// loss of lock.
func (c *Channel) updateLock(prompt complex128) bool {
	c.cn0Window = append(c.cn0Window, prompt)
	c.cn0Counter++
	if c.cn0Counter < CN0EstimationSamples {
		return false
	}
	c.cn0Counter = 0
	c.cn0DbHz = snvCN0DbHz(c.cn0Window, float64(CACodeLengthChips)/CACodeRateHz)
	c.lockTestVal = carrierLockTest(c.cn0Window)
	lost := c.lock.evaluate(c.lockTestVal, c.cn0DbHz, c.cfg.lockThreshold())
	c.cn0Window = c.cn0Window[:0]
	return lost
}

func promptIsNaN(p complex128) bool {
	return math.IsNaN(real(p)) || math.IsNaN(imag(p)) ||
		math.IsInf(real(p), 0) || math.IsInf(imag(p), 0)
}
