package source

import (
	"encoding/binary"
	"io"
	"math"
)

// FileSource reads a raw interleaved-float32-IQ file and serves it in
// Channel-sized blocks, grounded on sdrrcv.go's file-backed receiver
// front end (minus the hardware/device branches that have no file
// equivalent).
type FileSource struct {
	r   io.Reader
	buf []byte
}

// NewFileSource wraps r, an interleaved little-endian float32 I,Q
// stream.
func NewFileSource(r io.Reader) *FileSource {
	return &FileSource{r: r}
}

// Next fills out with the next len(out) complex64 samples. A call that
// fills out completely returns a nil error; a call that reaches the end
// of the underlying stream first returns io.EOF together with the count
// of whole samples it did read (zero once nothing remains).
func (f *FileSource) Next(out []complex64) (int, error) {
	need := len(out) * 8 // 2 * float32
	if len(f.buf) < need {
		f.buf = make([]byte, need)
	}
	buf := f.buf[:need]
	n, err := io.ReadFull(f.r, buf)
	full := n / 8
	for i := 0; i < full; i++ {
		re := math.Float32frombits(binary.LittleEndian.Uint32(buf[i*8:]))
		im := math.Float32frombits(binary.LittleEndian.Uint32(buf[i*8+4:]))
		out[i] = complex(re, im)
	}
	if err == io.ErrUnexpectedEOF {
		err = io.EOF
	}
	return full, err
}
