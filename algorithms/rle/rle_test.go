package rle

import (
	"testing"

	"github.com/stretchr/testify/require"

	"fpzkit/common"
)

func TestRunLengthEncode(t *testing.T) {
	require.Nil(t, RunLengthEncode(nil))
	require.Equal(t, []uint64{7, 3, 1, 1, 7, 2}, RunLengthEncode([]uint64{7, 7, 7, 1, 7, 7}))
}

func TestRoundTrip(t *testing.T) {
	for _, width := range []int{4, 8} {
		var src []byte
		for _, v := range []uint64{0, 0, 0, 0, 5, 5, 9, 0, 0xffffffff} {
			src = common.AppendWord(src, v, width)
		}
		enc, err := Compress(nil, src, width)
		require.NoError(t, err)
		require.Len(t, enc, 5*(width+1))
		dst := make([]byte, len(src))
		require.NoError(t, Decompress(dst, enc, width))
		require.Equal(t, src, dst)
	}

	enc, err := Compress(nil, nil, 8)
	require.NoError(t, err)
	require.Empty(t, enc)
	require.NoError(t, Decompress(nil, enc, 8))
}

func TestDecompressErrors(t *testing.T) {
	enc, err := Compress(nil, make([]byte, 40), 8) // one run of 5
	require.NoError(t, err)
	require.Error(t, Decompress(make([]byte, 32), enc, 8), "overrun")
	require.Error(t, Decompress(make([]byte, 48), enc, 8), "short")
	require.Error(t, Decompress(make([]byte, 40), enc[:4], 8), "truncated value")
	require.Error(t, Decompress(make([]byte, 40), enc[:8], 8), "missing length")

	zero := append(common.AppendWord(nil, 1, 4), 0)
	require.Error(t, Decompress(make([]byte, 4), zero, 4), "empty run")
}
