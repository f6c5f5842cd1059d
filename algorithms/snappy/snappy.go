// Package snappy stores payloads in the framed Snappy stream format.
package snappy

import (
	"bytes"
	"fmt"

	"github.com/klauspost/compress/snappy"

	"fpzkit/common"
)

func Compress(dst []byte, src []byte, width int) ([]byte, error) {
	if err := common.CheckLength(src, width); err != nil {
		return dst, err
	}
	bw := bytes.NewBuffer(dst)
	w := snappy.NewBufferedWriter(bw)
	if _, err := w.Write(src); err != nil {
		return dst, fmt.Errorf("snappy: %w", err)
	}
	if err := w.Close(); err != nil {
		return dst, fmt.Errorf("snappy: %w", err)
	}
	return bw.Bytes(), nil
}

func Decompress(dst []byte, src []byte, width int) error {
	if err := common.CheckLength(dst, width); err != nil {
		return err
	}
	if err := common.ReadExact(snappy.NewReader(bytes.NewReader(src)), dst); err != nil {
		return fmt.Errorf("snappy: %w", err)
	}
	return nil
}
