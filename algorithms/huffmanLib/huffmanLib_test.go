package huffmanLib

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	noise := make([]byte, 256)
	rng.Read(noise)
	skewed := make([]byte, 4096)
	for i := range skewed {
		skewed[i] = "aaaaaaab"[rng.Intn(8)]
	}
	tests := []struct {
		name string
		src  []byte
		flag byte
	}{
		{"noise", noise, stored},
		{"skewed", skewed, huffman},
		{"tiny", []byte{1, 2, 3, 4}, stored},
	}
	for _, tc := range tests {
		enc, err := Compress(nil, tc.src, 4)
		require.NoError(t, err)
		require.Equal(t, tc.flag, enc[0], tc.name)
		dst := make([]byte, len(tc.src))
		require.NoError(t, Decompress(dst, enc, 4))
		require.Equal(t, tc.src, dst)
	}
}

func TestDecompressErrors(t *testing.T) {
	require.Error(t, Decompress(make([]byte, 4), nil, 4))
	require.Error(t, Decompress(make([]byte, 4), []byte{7, 0, 0, 0, 0}, 4))
	require.Error(t, Decompress(make([]byte, 8), []byte{stored, 1, 2, 3, 4}, 4))
}
