// Package simple8b packs payloads with the Simple-8b integer encoding.
// Every element is split into 32-bit halves so that all inputs stay below
// the encoder's 60-bit limit; float64 words become two values (low, high).
//
// Layout: [value count u64][packed 64-bit words...], big-endian as the
// packed words are read back with simple8b.CountBytes.
package simple8b

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/influxdata/influxdb/pkg/encoding/simple8b"

	"fpzkit/common"
)

func Compress(dst []byte, src []byte, width int) ([]byte, error) {
	if err := common.CheckLength(src, width); err != nil {
		return dst, err
	}
	vals := common.Words(src, 4) // EncodeAll packs in place, so this must be a fresh slice
	words, err := simple8b.EncodeAll(vals)
	if err != nil {
		return dst, fmt.Errorf("simple8b: %w", err)
	}
	dst = binary.BigEndian.AppendUint64(dst, uint64(len(vals)))
	for _, w := range words {
		dst = binary.BigEndian.AppendUint64(dst, w)
	}
	return dst, nil
}

func Decompress(dst []byte, src []byte, width int) error {
	if err := common.CheckLength(dst, width); err != nil {
		return err
	}
	if len(src) < 8 || len(src)%8 != 0 {
		return fmt.Errorf("simple8b: invalid src length: %d", len(src))
	}
	count := binary.BigEndian.Uint64(src)
	if count != uint64(len(dst)/4) {
		return fmt.Errorf("simple8b: stream holds %d values, want %d", count, len(dst)/4)
	}
	words := make([]uint64, (len(src)-8)/8)
	for i := range words {
		words[i] = binary.BigEndian.Uint64(src[8+i*8:])
	}
	n, err := simple8b.CountBytes(src[8:])
	if err != nil {
		return fmt.Errorf("simple8b: %w", err)
	}
	if uint64(n) != count {
		return fmt.Errorf("simple8b: packed words hold %d values, want %d", n, count)
	}
	vals := make([]uint64, n)
	if _, err := simple8b.DecodeAll(vals, words); err != nil {
		return fmt.Errorf("simple8b: decode failed: %w", err)
	}
	for i, v := range vals {
		if v > math.MaxUint32 {
			return fmt.Errorf("simple8b: value %d exceeds 32 bits", i)
		}
		binary.LittleEndian.PutUint32(dst[i*4:], uint32(v))
	}
	return nil
}
