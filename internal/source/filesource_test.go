package source

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeIQ(pairs [][2]float32) []byte {
	var buf bytes.Buffer
	for _, p := range pairs {
		binary.Write(&buf, binary.LittleEndian, p[0])
		binary.Write(&buf, binary.LittleEndian, p[1])
	}
	return buf.Bytes()
}

func TestFileSource_Next_ReadsSamples(t *testing.T) {
	data := encodeIQ([][2]float32{{1, 2}, {3, 4}, {5, 6}})
	fs := NewFileSource(bytes.NewReader(data))

	out := make([]complex64, 3)
	n, err := fs.Next(out)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, complex64(complex(1, 2)), out[0])
	assert.Equal(t, complex64(complex(5, 6)), out[2])
}

func TestFileSource_Next_EOFOnExhaustion(t *testing.T) {
	data := encodeIQ([][2]float32{{1, 2}})
	fs := NewFileSource(bytes.NewReader(data))

	out := make([]complex64, 4)
	n, err := fs.Next(out)
	assert.Equal(t, 1, n)
	assert.True(t, err == io.EOF || err == io.ErrUnexpectedEOF)
}

func TestSynth_Next_ProducesFiniteSamples(t *testing.T) {
	code := make([]int16, 1023)
	for i := range code {
		if i%2 == 0 {
			code[i] = 1
		} else {
			code[i] = -1
		}
	}
	s := NewSynth(code, 0, 1000, 4_000_000, 45, 1)
	out := make([]complex64, 100)
	s.Next(out)
	for _, v := range out {
		assert.False(t, math.IsNaN(float64(real(v))))
		assert.False(t, math.IsNaN(float64(imag(v))))
	}
}
