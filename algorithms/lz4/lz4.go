// Package lz4 stores payloads as an LZ4 block prefixed with its
// uncompressed length.
package lz4

import (
	"encoding/binary"
	"fmt"

	lz4 "github.com/bkaradzic/go-lz4"

	"fpzkit/common"
)

func Compress(dst []byte, src []byte, width int) ([]byte, error) {
	if err := common.CheckLength(src, width); err != nil {
		return dst, err
	}
	out, err := lz4.Encode(nil, src)
	if err != nil {
		return dst, fmt.Errorf("lz4: %w", err)
	}
	return append(dst, out...), nil
}

func Decompress(dst []byte, src []byte, width int) error {
	if err := common.CheckLength(dst, width); err != nil {
		return err
	}
	if len(src) < 4 {
		return fmt.Errorf("lz4: block of %d bytes has no length prefix", len(src))
	}
	if n := binary.LittleEndian.Uint32(src); uint64(n) != uint64(len(dst)) {
		return fmt.Errorf("lz4: block holds %d bytes, want %d", n, len(dst))
	}
	out, err := lz4.Decode(dst, src)
	if err != nil {
		return fmt.Errorf("lz4: %w", err)
	}
	if err := common.CopyExact(dst, out); err != nil {
		return fmt.Errorf("lz4: %w", err)
	}
	return nil
}
