package ans

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func roundTrip(t *testing.T, src []byte, width int) []byte {
	t.Helper()
	src = append([]byte{}, src...)
	enc, err := Compress(nil, src, width)
	require.NoError(t, err)
	dst := make([]byte, len(src))
	require.NoError(t, Decompress(dst, enc, width))
	require.Equal(t, src, dst)
	return enc
}

func TestBlockKinds(t *testing.T) {
	// one repeated byte: a single run-length block
	enc := roundTrip(t, make([]byte, 4096), 8)
	require.Equal(t, byte(flagRLE), enc[0])
	require.Len(t, enc, 1+4+4+1)

	// uniform noise: stored
	rng := rand.New(rand.NewSource(3))
	noise := make([]byte, 4096)
	rng.Read(noise)
	enc = roundTrip(t, noise, 4)
	require.Equal(t, byte(flagStored), enc[0])

	// skewed: entropy coded
	skewed := make([]byte, 8192)
	for i := range skewed {
		skewed[i] = byte(rng.Intn(4))
	}
	enc = roundTrip(t, skewed, 4)
	require.Equal(t, byte(flagFSE), enc[0])
	require.Less(t, len(enc), len(skewed)/2)
}

func TestMultipleBlocks(t *testing.T) {
	src := make([]byte, blockSize*2+24)
	for i := range src {
		src[i] = byte(i / 1000)
	}
	roundTrip(t, src, 8)
	roundTrip(t, nil, 4)
}

func TestDecompressErrors(t *testing.T) {
	src := make([]byte, 64)
	enc, err := Compress(nil, src, 8)
	require.NoError(t, err)

	require.Error(t, Decompress(make([]byte, 56), enc, 8), "block overruns output")
	require.Error(t, Decompress(make([]byte, 72), enc, 8), "stream ends short")
	require.Error(t, Decompress(make([]byte, 64), enc[:5], 8), "truncated header")

	bad := append([]byte(nil), enc...)
	bad[0] = 9
	require.Error(t, Decompress(make([]byte, 64), bad, 8), "unknown flag")
}
