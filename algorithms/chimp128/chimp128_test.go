package chimp128

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"fpzkit/common"
)

func pack(width int, values []float64) []byte {
	b := []byte{}
	for _, v := range values {
		if width == 4 {
			b = common.AppendWord(b, uint64(math.Float32bits(float32(v))), 4)
		} else {
			b = common.AppendWord(b, math.Float64bits(v), 8)
		}
	}
	return b
}

func TestRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(128))
	periodic := make([]float64, 2000)
	noisy := make([]float64, 2000)
	for i := range periodic {
		periodic[i] = float64(i%50) * 0.25 // repeats inside the 128-value window
		noisy[i] = rng.NormFloat64()
	}
	original := []float64{1.23, 1.24, 1.25, 1.26, 1.27, 3.14159, 2.71828, 1.41421}
	special := []float64{math.NaN(), 0, math.Inf(1), math.NaN(), -0.0, 1e-310, math.MaxFloat64}

	for _, width := range []int{4, 8} {
		for _, values := range [][]float64{nil, {9}, original, special, periodic, noisy} {
			src := pack(width, values)
			enc, err := Compress(nil, src, width)
			require.NoError(t, err)
			dst := make([]byte, len(src))
			require.NoError(t, Decompress(dst, enc, width))
			require.Equal(t, src, dst)
		}
	}
}

func TestWindowMatchesCompress(t *testing.T) {
	// 100 random values repeated: every word after the first cycle is an
	// exact match inside the window.
	rng := rand.New(rand.NewSource(1))
	cycle := make([]float64, 100)
	for i := range cycle {
		cycle[i] = rng.Float64()
	}
	values := make([]float64, 4096)
	for i := range values {
		values[i] = cycle[i%len(cycle)]
	}
	src := pack(8, values)
	enc, err := Compress(nil, src, 8)
	require.NoError(t, err)
	require.Less(t, len(enc), len(src)/4)
}

func TestDecompressErrors(t *testing.T) {
	src := pack(8, []float64{1.5, 2.5, 2.5})
	enc, err := Compress(nil, src, 8)
	require.NoError(t, err)
	require.Error(t, Decompress(make([]byte, 16), enc, 8))
	require.Error(t, Decompress(make([]byte, 24), enc[:12], 8))

	// a float64 stream decoded as float32 words does not fit
	wide := pack(8, []float64{1.5})
	enc, err = Compress(nil, wide, 8)
	require.NoError(t, err)
	require.Error(t, Decompress(make([]byte, 4), enc, 4))
}
