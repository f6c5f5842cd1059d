// Package brotli stores payloads as a Brotli stream.
package brotli

import (
	"bytes"
	"fmt"

	"github.com/andybalholm/brotli"

	"fpzkit/common"
)

func Compress(dst []byte, src []byte, width int) ([]byte, error) {
	if err := common.CheckLength(src, width); err != nil {
		return dst, err
	}
	buf := bytes.NewBuffer(dst)
	w := brotli.NewWriter(buf)
	if _, err := w.Write(src); err != nil {
		return dst, fmt.Errorf("brotli: %w", err)
	}
	if err := w.Close(); err != nil {
		return dst, fmt.Errorf("brotli: %w", err)
	}
	return buf.Bytes(), nil
}

func Decompress(dst []byte, src []byte, width int) error {
	if err := common.CheckLength(dst, width); err != nil {
		return err
	}
	if err := common.ReadExact(brotli.NewReader(bytes.NewReader(src)), dst); err != nil {
		return fmt.Errorf("brotli: %w", err)
	}
	return nil
}
