// Package zstd stores payloads as a single Zstandard frame. Builds with cgo
// use the reference C library through gozstd; pure Go builds use
// klauspost/compress. Both produce and accept standard frames.
//
// Frames are decoded as streams so a frame that inflates past dst fails
// after len(dst)+1 bytes instead of being materialised.
package zstd

import (
	"bytes"
	"fmt"

	"fpzkit/common"
)

// Compress appends a zstd frame holding src to dst.
func Compress(dst []byte, src []byte, width int) ([]byte, error) {
	if err := common.CheckLength(src, width); err != nil {
		return dst, err
	}
	return compressBytes(dst, src), nil
}

// Decompress decodes the frame in src into dst, which must match the
// frame's content size exactly.
func Decompress(dst []byte, src []byte, width int) error {
	if err := common.CheckLength(dst, width); err != nil {
		return err
	}
	zr, release, err := newReader(bytes.NewReader(src), len(dst))
	if err != nil {
		return fmt.Errorf("zstd: %w", err)
	}
	defer release()
	if err := common.ReadExact(zr, dst); err != nil {
		return fmt.Errorf("zstd: %w", err)
	}
	return nil
}
