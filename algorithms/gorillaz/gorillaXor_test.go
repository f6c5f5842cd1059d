package gorillaz

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"fpzkit/common"
)

func TestXorRoundTrip(t *testing.T) {
	// temperature-like series with small steps
	data := make([]float64, 1000)
	for i := range data {
		data[i] = 20.0 + float64(i)*0.01
	}
	special := []float64{0.0, 1.0, -1.0, 100.0, 0.001, 1e10, 1e-10, math.NaN(), math.Inf(-1), 1.0, 1.0}

	for _, width := range []int{4, 8} {
		for _, values := range [][]float64{data, special, {7}} {
			var src []byte
			for _, v := range values {
				if width == 4 {
					src = common.AppendWord(src, uint64(math.Float32bits(float32(v))), 4)
				} else {
					src = common.AppendWord(src, math.Float64bits(v), 8)
				}
			}
			enc, err := Compress(nil, src, width)
			require.NoError(t, err)
			dst := make([]byte, len(src))
			require.NoError(t, Decompress(dst, enc, width))
			require.Equal(t, src, dst)
		}
	}
}

func TestXorFullWidthWindow(t *testing.T) {
	// Words 1 and 1<<63 differ in the top and bottom bits: a 64-bit window.
	src := common.AppendWord(nil, 1, 8)
	src = common.AppendWord(src, 1<<63, 8)
	src = common.AppendWord(src, 1, 8)
	enc, err := Compress(nil, src, 8)
	require.NoError(t, err)
	dst := make([]byte, len(src))
	require.NoError(t, Decompress(dst, enc, 8))
	require.Equal(t, src, dst)
}

func TestXorDecompressErrors(t *testing.T) {
	src := common.AppendWord(nil, 10, 4)
	src = common.AppendWord(src, 12, 4)
	enc, err := Compress(nil, src, 4)
	require.NoError(t, err)

	require.Error(t, Decompress(make([]byte, 4), enc, 4))
	require.Error(t, Decompress(make([]byte, 8), enc[:10], 4))

	// count 2, first value, then a new window claiming 40 leading zeros
	// in a 32-bit word.
	w := common.NewBitWriter(nil)
	w.WriteBits(2, 64)
	w.WriteBits(10, 32)
	w.WriteBits(0b11, 2)
	w.WriteBits(40, 6)
	w.WriteBits(4, 6)
	w.WriteBits(0, 4)
	require.ErrorIs(t, Decompress(make([]byte, 8), w.Bytes(), 4), errInvalidBits)
}
