package track

import (
	"encoding/binary"
	"io"
)

// dump.go is the binary dump writer, grounded on the original
// tracking block's per-field dump_file.write calls: each tracked
// PRN-period block is appended as a fixed sequence of float32/float64/uint64
// fields in host byte order, rather than e.g. JSON-lines, matching the
// field order the original emits for offline analysis tooling.
type dumpRecord struct {
	E, P, L                float32
	PromptI, PromptQ       float32
	SampleCounter          uint64
	AccCarrierPhaseRad     float32
	CarrierDopplerHz       float32
	CodeFreqHz             float32
	CarrierError           float32
	CarrierNco             float32
	CodeError              float32
	CodeNco                float32
	CN0SNVDbHz             float32
	CarrierLockTest        float32
	AuxFlagValidTracking   float32
	SampleCounterSeconds   float64
}

// dumpWriter serializes dumpRecords to a sink in host byte order, one
// record per tracked block, grounded on spec.md §6's dump-file layout.
type dumpWriter struct {
	sink io.Writer
}

func newDumpWriter(sink io.Writer) *dumpWriter {
	return &dumpWriter{sink: sink}
}

func (w *dumpWriter) write(rec dumpRecord) error {
	return binary.Write(w.sink, binary.NativeEndian, rec)
}
