// Package fpztest holds fixtures shared by the fpzip tests.
package fpztest

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/require"

	"fpzkit/fpzip"
	"fpzkit/internal/fpzenc"
)

type (
	Shape        = fpzenc.Shape
	CompressFunc = fpzenc.CompressFunc
)

var (
	Compressors  = fpzenc.Compressors
	Encode       = fpzenc.Encode
	AppendHeader = fpzenc.AppendHeader
	Bytes        = fpzenc.Pack
)

// Reseal recomputes the header checksum after a test edits header bytes.
func Reseal(stream []byte) {
	sum := uint32(xxhash.Sum64(stream[:fpzip.HeaderSize-4]))
	binary.LittleEndian.PutUint32(stream[fpzip.HeaderSize-4:], sum)
}

// Values unpacks little-endian elements of type t, widened to float64.
func Values(t fpzip.ElementType, raw []byte) []float64 {
	out := make([]float64, len(raw)/t.Size())
	for i := range out {
		if t == fpzip.Float32 {
			out[i] = float64(math.Float32frombits(binary.LittleEndian.Uint32(raw[i*4:])))
		} else {
			out[i] = math.Float64frombits(binary.LittleEndian.Uint64(raw[i*8:]))
		}
	}
	return out
}

// Ramp returns n distinct values in [2, 3), like a kempressed volume.
func Ramp(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 2 + float64(i)/float64(n+1)
	}
	return out
}

// Sentinel returns n bytes of a recognisable fill pattern.
func Sentinel(n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = 0xA5 ^ byte(i)
	}
	return out
}

// MustEncode encodes values without precision truncation, so tests can
// build streams whose payload violates the header's precision.
func MustEncode(tb testing.TB, s Shape, values []float64) []byte {
	tb.Helper()
	stream, err := Encode(s, Bytes(s.Type, values))
	require.NoError(tb, err, "encoding %+v", s)
	return stream
}
