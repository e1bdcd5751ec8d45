// Package source provides sample sources for cmd/gnsstrackctl: a raw
// IQ file reader and a synthetic baseband generator for demos and
// tests that don't need recorded RF.
package source

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/dsp/fourier"
)

// Synth generates a synthetic L1 C/A baseband stream for one satellite:
// a carrier at ifFreqHz+dopplerHz, modulated by the PRN code, plus
// band-limited noise shaped to a target C/N0.
//
// Noise shaping follows sdracq.go's FFT/IFFT convention: gonum has no
// inverse complex FFT, so the inverse is simulated by conjugating the
// input, taking the forward FFT, and conjugating the result again.
type Synth struct {
	code       []int16
	ifFreqHz   float64
	dopplerHz  float64
	fsHz       float64
	cn0DbHz    float64
	codeFreqHz float64

	phaseRad    float64
	codePhase   float64
	rng         *rand.Rand
}

// NewSynth builds a generator for the given PRN code at fsHz, carrier
// ifFreqHz+dopplerHz, and target C/N0.
func NewSynth(code []int16, ifFreqHz, dopplerHz, fsHz, cn0DbHz float64, seed uint64) *Synth {
	return &Synth{
		code:       code,
		ifFreqHz:   ifFreqHz,
		dopplerHz:  dopplerHz,
		fsHz:       fsHz,
		cn0DbHz:    cn0DbHz,
		codeFreqHz: 1023000.0 * (1 + dopplerHz/1575420000.0),
		rng:        rand.New(rand.NewSource(int64(seed))),
	}
}

// Next fills out with n synthetic complex64 baseband samples.
func (s *Synth) Next(out []complex64) {
	n := len(out)
	step := 2 * math.Pi * (s.ifFreqHz + s.dopplerHz) / s.fsHz
	codeStep := s.codeFreqHz / s.fsHz

	noise := s.shapedNoise(n)

	codeLen := float64(len(s.code))
	for i := 0; i < n; i++ {
		idx := int(math.Mod(s.codePhase, codeLen))
		chip := float64(s.code[idx])
		carrier := complex(math.Cos(s.phaseRad), math.Sin(s.phaseRad))
		sig := complex(chip, 0) * carrier
		out[i] = complex64(sig + noise[i])
		s.phaseRad += step
		s.codePhase += codeStep
	}
	s.phaseRad = math.Mod(s.phaseRad, 2*math.Pi)
	s.codePhase = math.Mod(s.codePhase, codeLen)
}

// shapedNoise generates n samples of complex white noise, amplitude
// scaled from cn0DbHz, and lightly band-shapes it through a forward
// FFT / simulated-inverse round trip so the generator exercises the
// same FFT path the teacher uses for acquisition correlation.
func (s *Synth) shapedNoise(n int) []complex128 {
	noiseAmp := math.Pow(10, -s.cn0DbHz/20) * math.Sqrt(s.fsHz)

	white := make([]complex128, n)
	for i := range white {
		white[i] = complex(s.rng.NormFloat64(), s.rng.NormFloat64()) * complex(noiseAmp, 0)
	}

	fft := fourier.NewCmplxFFT(n)
	spectrum := fft.Coefficients(nil, white)

	half := n / 2
	for i := half / 2; i < n-half/2; i++ {
		spectrum[i] *= 0.05
	}

	conj := make([]complex128, n)
	for i, c := range spectrum {
		conj[i] = complex(real(c), -imag(c))
	}
	inv := fft.Coefficients(nil, conj)
	shaped := make([]complex128, n)
	scale := complex(1/float64(n), 0)
	for i, c := range inv {
		shaped[i] = complex(real(c), -imag(c)) * scale
	}
	return shaped
}
