// Package huffmanLib stores payloads with canonical Huffman coding. The
// first payload byte is 1 when the data is Huffman coded and 0 when it was
// stored as-is because coding would not shrink it.
package huffmanLib

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/icza/huffman/hufio"

	"fpzkit/common"
)

const (
	stored  = 0
	huffman = 1
)

func Compress(dst []byte, src []byte, width int) ([]byte, error) {
	if err := common.CheckLength(src, width); err != nil {
		return dst, err
	}
	var buf bytes.Buffer
	w := hufio.NewWriter(&buf)
	if _, err := w.Write(src); err != nil {
		return dst, fmt.Errorf("huffman: %w", err)
	}
	if err := w.Close(); err != nil {
		return dst, fmt.Errorf("huffman: %w", err)
	}
	if buf.Len() == 0 || buf.Len() >= len(src) {
		dst = append(dst, stored)
		return append(dst, src...), nil
	}
	dst = append(dst, huffman)
	return append(dst, buf.Bytes()...), nil
}

func Decompress(dst []byte, src []byte, width int) error {
	if err := common.CheckLength(dst, width); err != nil {
		return err
	}
	if len(src) == 0 {
		return errors.New("huffman: empty input")
	}
	data := src[1:]
	switch src[0] {
	case stored:
		if err := common.CopyExact(dst, data); err != nil {
			return fmt.Errorf("huffman: %w", err)
		}
	case huffman:
		if err := common.ReadExact(hufio.NewReader(bytes.NewReader(data)), dst); err != nil {
			return fmt.Errorf("huffman: %w", err)
		}
	default:
		return fmt.Errorf("huffman: unknown block flag %d", src[0])
	}
	return nil
}
