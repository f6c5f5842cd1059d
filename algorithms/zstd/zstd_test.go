package zstd

import (
	"math/rand"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	for _, n := range []int{0, 8, 4096, 1 << 18} {
		src := make([]byte, n)
		for i := range src {
			src[i] = byte(rng.Intn(8))
		}
		enc, err := Compress(nil, src, 4)
		require.NoError(t, err)
		dst := make([]byte, n)
		require.NoError(t, Decompress(dst, enc, 4))
		require.Equal(t, src, dst)

		require.Error(t, Decompress(make([]byte, n+8), enc, 8), "n=%d long", n)
		if n > 0 {
			require.Error(t, Decompress(make([]byte, n-4), enc, 4), "n=%d short", n)
		}
	}
}

func TestOversizedFrameIsNotInflated(t *testing.T) {
	enc, err := Compress(nil, make([]byte, 64<<20), 8)
	require.NoError(t, err)
	require.Less(t, len(enc), 64<<10)

	var before, after runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&before)
	err = Decompress(make([]byte, 8), enc, 8)
	runtime.ReadMemStats(&after)

	require.Error(t, err)
	require.Less(t, after.TotalAlloc-before.TotalAlloc, uint64(16<<20))
}

func TestGarbage(t *testing.T) {
	require.Error(t, Decompress(make([]byte, 8), []byte("not a zstd frame"), 8))
	require.Error(t, Decompress(make([]byte, 8), nil, 8))
}
