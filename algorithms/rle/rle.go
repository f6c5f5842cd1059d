// Package rle stores payloads as runs of identical words. Each run is the
// word itself (width bytes, little-endian) followed by its length as a
// uvarint. It suits volumes with large constant regions.
package rle

import (
	"encoding/binary"
	"fmt"

	"fpzkit/common"
)

// RunLengthEncode collapses src into (value, count) pairs.
func RunLengthEncode(src []uint64) []uint64 {
	if len(src) == 0 {
		return nil
	}
	var result []uint64
	currentVal := src[0]
	count := uint64(1)
	for i := 1; i < len(src); i++ {
		if src[i] == currentVal {
			count++
			continue
		}
		result = append(result, currentVal, count)
		currentVal = src[i]
		count = 1
	}
	return append(result, currentVal, count)
}

func Compress(dst []byte, src []byte, width int) ([]byte, error) {
	if err := common.CheckLength(src, width); err != nil {
		return dst, err
	}
	pairs := RunLengthEncode(common.Words(src, width))
	for i := 0; i < len(pairs); i += 2 {
		dst = common.AppendWord(dst, pairs[i], width)
		dst = binary.AppendUvarint(dst, pairs[i+1])
	}
	return dst, nil
}

func Decompress(dst []byte, src []byte, width int) error {
	if err := common.CheckLength(dst, width); err != nil {
		return err
	}
	n := len(dst) / width
	i := 0
	for len(src) > 0 {
		if len(src) < width {
			return fmt.Errorf("rle: truncated run value")
		}
		v := common.Word(src, 0, width)
		count, k := binary.Uvarint(src[width:])
		if k <= 0 {
			return fmt.Errorf("rle: bad run length at value %d", i)
		}
		src = src[width+k:]
		if count == 0 || count > uint64(n-i) {
			return fmt.Errorf("rle: run of %d overruns %d values at value %d", count, n, i)
		}
		for end := i + int(count); i < end; i++ {
			common.PutWord(dst, i, width, v)
		}
	}
	if i != n {
		return fmt.Errorf("rle: stream holds %d values, want %d", i, n)
	}
	return nil
}
