// Package config holds the koanf-tagged structs loaded by
// cmd/gnsstrackctl, grounded on JRWynneIII-goestuner/config's flat
// koanf-struct shape.
package config

// ChannelConf carries the parameters needed to construct a
// track.Config and track.ChannelBinding for a single satellite
// channel.
type ChannelConf struct {
	PRN                  int     `koanf:"prn"`
	IFFreqHz             float64 `koanf:"if_freq_hz"`
	FsHz                 float64 `koanf:"fs_hz"`
	VectorLength         int     `koanf:"vector_length"`
	PLLBwHz              float64 `koanf:"pll_bw_hz"`
	DLLBwHz              float64 `koanf:"dll_bw_hz"`
	EarlyLateSpaceChips  float64 `koanf:"early_late_space_chips"`
	CarrierLockThreshold float64 `koanf:"carrier_lock_threshold"`
	DumpEnabled          bool    `koanf:"dump_enabled"`
	DumpPath             string  `koanf:"dump_path"`
}

// SourceConf selects and parameterizes the sample source.
type SourceConf struct {
	Kind string `koanf:"kind"` // "file" or "synth"
	Path string `koanf:"path"`

	SynthDopplerHz float64 `koanf:"synth_doppler_hz"`
	SynthCN0DbHz   float64 `koanf:"synth_cn0_db_hz"`
}
