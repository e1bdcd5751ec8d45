// Command gnsstrackctl is a demo harness for the track package,
// grounded on JRWynneIII-goestuner/main.go's kong+koanf shape.
package main

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/knadh/koanf/parsers/hcl"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"gnsstrack/internal/config"
	"gnsstrack/internal/source"
	"gnsstrack/track"
)

var cli struct {
	Verbose bool   `help:"Prints debug output"`
	Config  string `help:"Path to an HCL config file" default:"./gnsstrack.hcl"`
	Probe   struct {
	} `cmd:"" help:"Print the resolved channel parameters and exit"`
	Run struct {
	} `cmd:"" help:"Stream the configured source through the channel, logging tracking records"`
}

var kf = koanf.New(".")

func loadConfig(path string) {
	if err := kf.Load(file.Provider(path), hcl.Parser(true)); err != nil {
		log.Warnf("could not read config file %s: %v", path, err)
		log.Warn("falling back to environment variables")
		kf.Load(env.Provider("", env.Opt{
			Prefix: "GNSSTRACK_",
			TransformFunc: func(k, v string) (string, any) {
				key := strings.ToLower(strings.TrimPrefix(k, "GNSSTRACK_"))
				return strings.Replace(key, "_", ".", 1), v
			},
		}), nil)
	}
}

func channelConf() config.ChannelConf {
	return config.ChannelConf{
		PRN:                  kf.Int("channel.prn"),
		IFFreqHz:             kf.Float64("channel.if_freq_hz"),
		FsHz:                 kf.Float64("channel.fs_hz"),
		VectorLength:         kf.Int("channel.vector_length"),
		PLLBwHz:              kf.Float64("channel.pll_bw_hz"),
		DLLBwHz:              kf.Float64("channel.dll_bw_hz"),
		EarlyLateSpaceChips:  kf.Float64("channel.early_late_space_chips"),
		CarrierLockThreshold: kf.Float64("channel.carrier_lock_threshold"),
		DumpEnabled:          kf.Bool("channel.dump_enabled"),
		DumpPath:             kf.String("channel.dump_path"),
	}
}

func sourceConf() config.SourceConf {
	return config.SourceConf{
		Kind:           kf.String("source.kind"),
		Path:           kf.String("source.path"),
		SynthDopplerHz: kf.Float64("source.synth_doppler_hz"),
		SynthCN0DbHz:   kf.Float64("source.synth_cn0_db_hz"),
	}
}

func buildTrackConfig(cc config.ChannelConf) (track.Config, io.Closer) {
	cfg := track.Config{
		IFFreqHz:             cc.IFFreqHz,
		FsHz:                 cc.FsHz,
		VectorLength:         cc.VectorLength,
		PLLBwHz:              cc.PLLBwHz,
		DLLBwHz:              cc.DLLBwHz,
		EarlyLateSpaceChips:  cc.EarlyLateSpaceChips,
		CarrierLockThreshold: cc.CarrierLockThreshold,
	}
	var closer io.Closer
	if cc.DumpEnabled {
		path := track.DumpPathForChannel(cc.DumpPath, cc.PRN)
		f, err := os.Create(path)
		if err != nil {
			log.Errorf("could not open dump file %s: %v", path, err)
		} else {
			cfg.Dump = true
			cfg.DumpSink = f
			closer = f
		}
	}
	return cfg, closer
}

func main() {
	log.Info("starting gnsstrackctl")
	flags := kong.Parse(&cli)
	if cli.Verbose {
		log.SetLevel(log.DebugLevel)
	}
	loadConfig(cli.Config)

	cc := channelConf()
	sc := sourceConf()
	cfg, closer := buildTrackConfig(cc)
	if closer != nil {
		defer closer.Close()
	}

	switch flags.Command() {
	case "probe":
		log.Infof("PRN=%d Fs=%.0fHz IF=%.0fHz PLL_BW=%.1fHz DLL_BW=%.1fHz",
			cc.PRN, cc.FsHz, cc.IFFreqHz, cc.PLLBwHz, cc.DLLBwHz)

	case "run":
		runChannel(cfg, cc, sc)
	}
}

func runChannel(cfg track.Config, cc config.ChannelConf, sc config.SourceConf) {
	binding := track.ChannelBinding{PRN: cc.PRN, ChannelID: 0}
	ch, err := track.NewChannel(cfg, binding)
	if err != nil {
		log.Fatalf("channel construction failed: %v", err)
	}

	code, err := track.GencodeL1CA(cc.PRN)
	if err != nil {
		log.Fatalf("code generation failed: %v", err)
	}

	var next func([]track.Sample) (int, error)
	switch sc.Kind {
	case "file":
		f, err := os.Open(sc.Path)
		if err != nil {
			log.Fatalf("could not open source file %s: %v", sc.Path, err)
		}
		defer f.Close()
		fs := source.NewFileSource(f)
		next = fs.Next
	default:
		synth := source.NewSynth(code, cfg.IFFreqHz, sc.SynthDopplerHz, cfg.FsHz, sc.SynthCN0DbHz, 1)
		next = func(out []track.Sample) (int, error) {
			synth.Next(out)
			return len(out), nil
		}
	}

	ch.StartTracking(track.AcquisitionResult{
		AcqDelaySamples: 0,
		AcqDopplerHz:    sc.SynthDopplerHz,
		PRN:             cc.PRN,
		SystemTag:       "G",
	})

	// buf is a persistent sliding window, not a scratch buffer refilled
	// wholesale each iteration: Step consumes only a prefix of it (its
	// current PRN-period block length), and the unconsumed remainder
	// must stay in front for the next call, per spec.md §5's
	// contiguous-stream back-pressure contract.
	buf := make([]track.Sample, cfg.RequiredInputLength())
	filled := 0
	for {
		if filled < len(buf) {
			n, readErr := next(buf[filled:])
			filled += n
			if filled == 0 && errors.Is(readErr, io.EOF) {
				return
			}
			err = readErr
		}

		rec, consumed, stepErr := ch.Step(buf[:filled])
		if stepErr != nil {
			log.Warnf("step error: %v", stepErr)
			continue
		}
		if rec.FlagValidTracking {
			log.Debugf("PRN=%d t=%.6f I=%.1f Q=%.1f CN0=%.1f",
				rec.PRN, rec.TrackingTimestampSecs, rec.PromptI, rec.PromptQ, rec.CN0DbHz)
		}

		if consumed > filled {
			consumed = filled
		}
		copy(buf, buf[consumed:filled])
		filled -= consumed

		if errors.Is(err, io.EOF) && filled == 0 {
			return
		}
	}
}
