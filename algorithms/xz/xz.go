// Package xz stores payloads as an xz (LZMA2) stream.
package xz

import (
	"bytes"
	"fmt"

	"github.com/ulikunitz/xz"

	"fpzkit/common"
)

func Compress(dst []byte, src []byte, width int) ([]byte, error) {
	if err := common.CheckLength(src, width); err != nil {
		return dst, err
	}
	buf := bytes.NewBuffer(dst)
	zw, err := xz.NewWriter(buf)
	if err != nil {
		return dst, fmt.Errorf("xz: %w", err)
	}
	if _, err := zw.Write(src); err != nil {
		zw.Close()
		return dst, fmt.Errorf("xz: %w", err)
	}
	if err := zw.Close(); err != nil {
		return dst, fmt.Errorf("xz: %w", err)
	}
	return buf.Bytes(), nil
}

func Decompress(dst []byte, src []byte, width int) error {
	if err := common.CheckLength(dst, width); err != nil {
		return err
	}
	zr, err := xz.NewReader(bytes.NewReader(src))
	if err != nil {
		return fmt.Errorf("xz: %w", err)
	}
	if err := common.ReadExact(zr, dst); err != nil {
		return fmt.Errorf("xz: %w", err)
	}
	return nil
}
