package fpcstream

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"fpzkit/common"
)

func series(n int, f func(i int) float64) []byte {
	src := []byte{}
	for i := 0; i < n; i++ {
		src = common.AppendWord(src, math.Float64bits(f(i)), 8)
	}
	return src
}

func TestRoundTrip(t *testing.T) {
	src := series(1000, func(i int) float64 { return math.Sin(float64(i) / 10) })
	enc, err := Compress(nil, src, 8)
	require.NoError(t, err)
	dst := make([]byte, len(src))
	require.NoError(t, Decompress(dst, enc, 8))
	require.Equal(t, src, dst)

	require.Error(t, Decompress(make([]byte, len(src)+8), enc, 8), "stream ends early")
}

func TestRoundTripEveryCount(t *testing.T) {
	for n := 0; n <= 40; n++ {
		src := series(n, func(i int) float64 { return 2 + float64(i)/7 })
		enc, err := Compress(nil, src, 8)
		require.NoError(t, err, n)
		dst := make([]byte, len(src))
		require.NoError(t, Decompress(dst, enc, 8), n)
		require.Equal(t, src, dst, n)
	}

	// Repeated values give zero-length residuals at the end of the stream.
	for _, n := range []int{1, 2, 3, 8, 9} {
		src := series(n, func(int) float64 { return 0 })
		enc, err := Compress(nil, src, 8)
		require.NoError(t, err)
		dst := make([]byte, len(src))
		require.NoError(t, Decompress(dst, enc, 8), n)
		require.Equal(t, src, dst)
	}
}

func TestBlockBoundary(t *testing.T) {
	src := series(32768*2+3, func(i int) float64 { return float64(i % 97) })
	enc, err := Compress(nil, src, 8)
	require.NoError(t, err)
	dst := make([]byte, len(src))
	require.NoError(t, Decompress(dst, enc, 8))
	require.Equal(t, src, dst)
}

func TestRejectsCountMismatch(t *testing.T) {
	for n := 2; n <= 12; n++ {
		enc, err := Compress(nil, series(n, func(i int) float64 { return float64(i) }), 8)
		require.NoError(t, err)
		require.Error(t, Decompress(make([]byte, 8), enc, 8), n)
		require.Error(t, Decompress(make([]byte, 8*(n+1)), enc, 8), n)
	}
}

func TestRejectsTrailingData(t *testing.T) {
	enc, err := Compress(nil, series(4, func(i int) float64 { return float64(i) }), 8)
	require.NoError(t, err)
	for _, extra := range [][]byte{{0}, {1, 2, 3}, make([]byte, 6), make([]byte, 40)} {
		long := append(append([]byte{}, enc...), extra...)
		require.Error(t, Decompress(make([]byte, 32), long, 8), "%d extra bytes", len(extra))
	}

	empty, err := Compress(nil, nil, 8)
	require.NoError(t, err)
	require.Len(t, empty, 8)
	require.NoError(t, Decompress([]byte{}, empty, 8))
	require.Error(t, Decompress([]byte{}, append(empty, 10), 8))
}

func TestCorruptStreamsReturnErrors(t *testing.T) {
	src := series(9, func(i int) float64 { return 1.5 * float64(i) })
	enc, err := Compress(nil, src, 8)
	require.NoError(t, err)

	for cut := 0; cut < len(enc); cut++ {
		require.NotPanics(t, func() {
			require.Error(t, Decompress(make([]byte, len(src)), enc[:cut], 8), "cut at %d", cut)
		})
	}
	for i := 8; i < len(enc); i++ {
		bad := append([]byte{}, enc...)
		bad[i] ^= 0xff
		require.NotPanics(t, func() {
			_ = Decompress(make([]byte, len(src)), bad, 8)
		}, "flip at %d", i)
	}
}

func TestWidth(t *testing.T) {
	_, err := Compress(nil, make([]byte, 8), 4)
	require.ErrorIs(t, err, ErrWidth)
	require.ErrorIs(t, Decompress(make([]byte, 8), nil, 4), ErrWidth)
}
