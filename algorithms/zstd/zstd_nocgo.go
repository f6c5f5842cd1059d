//go:build !cgo

package zstd

import (
	"io"

	"github.com/klauspost/compress/zstd"
)

var encoder, _ = zstd.NewWriter(nil)

func compressBytes(dst, src []byte) []byte {
	return encoder.EncodeAll(src, dst)
}

// newReader caps the frame window near the expected size; encoders round
// the window up to a power of two, so allow twice the size.
func newReader(r io.Reader, size int) (io.Reader, func(), error) {
	limit := uint64(max(size, 1<<20)) * 2
	zr, err := zstd.NewReader(r,
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderMaxMemory(limit))
	if err != nil {
		return nil, nil, err
	}
	return zr, zr.Close, nil
}
