// Package gorillaz implements Gorilla-style XOR compression of float
// words: each word is XORed with its predecessor and only the meaningful
// bits between the leading and trailing zeros are stored.
package gorillaz

import (
	"errors"
	"fmt"
	"math/bits"

	"fpzkit/common"
)

var errInvalidBits = errors.New("gorillaz: invalid bit window")

// Compress appends the XOR encoding of the width-byte words in src to dst.
func Compress(dst []byte, src []byte, width int) ([]byte, error) {
	if err := common.CheckLength(src, width); err != nil {
		return dst, err
	}
	n := len(src) / width
	wbits := width * 8
	bs := common.NewBitWriter(dst)
	bs.WriteBits(uint64(n), 64)
	if n == 0 {
		return bs.Bytes(), nil
	}
	prev := common.Word(src, 0, width)
	bs.WriteBits(prev, wbits) // first value stored verbatim
	prevLeading, prevTrailing := -1, 0
	for i := 1; i < n; i++ {
		cur := common.Word(src, i, width)
		v := cur ^ prev
		prev = cur
		if v == 0 {
			bs.WriteBit(false)
			continue
		}
		bs.WriteBit(true)
		leading := bits.LeadingZeros64(v) - (64 - wbits)
		trailing := bits.TrailingZeros64(v)
		if prevLeading >= 0 && leading >= prevLeading && trailing >= prevTrailing {
			// value fits in the previous window
			bs.WriteBit(false)
			bs.WriteBits(v>>uint(prevTrailing), wbits-prevLeading-prevTrailing)
			continue
		}
		prevLeading, prevTrailing = leading, trailing
		sig := wbits - leading - trailing
		bs.WriteBit(true)
		bs.WriteBits(uint64(leading), 6)
		bs.WriteBits(uint64(sig&63), 6) // 64 is stored as 0
		bs.WriteBits(v>>uint(trailing), sig)
	}
	return bs.Bytes(), nil
}

// Decompress decodes src into dst, which must hold exactly the encoded
// number of words.
func Decompress(dst []byte, src []byte, width int) error {
	if err := common.CheckLength(dst, width); err != nil {
		return err
	}
	wbits := width * 8
	bs := common.NewBitReader(src)
	size, err := bs.ReadBits(64)
	if err != nil {
		return fmt.Errorf("gorillaz: reading count: %w", err)
	}
	if size != uint64(len(dst)/width) {
		return fmt.Errorf("gorillaz: stream holds %d values, want %d", size, len(dst)/width)
	}
	if size == 0 {
		return nil
	}
	prev, err := bs.ReadBits(wbits)
	if err != nil {
		return fmt.Errorf("gorillaz: first value: %w", err)
	}
	common.PutWord(dst, 0, width, prev)
	leading, trailing := 0, 0
	for i := 1; i < int(size); i++ {
		b, err := bs.ReadBit()
		if err != nil {
			return fmt.Errorf("gorillaz: value %d: %w", i, err)
		}
		if !b {
			common.PutWord(dst, i, width, prev)
			continue
		}
		b, err = bs.ReadBit()
		if err != nil {
			return fmt.Errorf("gorillaz: value %d: %w", i, err)
		}
		if b {
			l, err := bs.ReadBits(6)
			if err != nil {
				return fmt.Errorf("gorillaz: value %d: %w", i, err)
			}
			s, err := bs.ReadBits(6)
			if err != nil {
				return fmt.Errorf("gorillaz: value %d: %w", i, err)
			}
			sig := int(s)
			if sig == 0 {
				sig = 64
			}
			if int(l)+sig > wbits {
				return fmt.Errorf("value %d: %w", i, errInvalidBits)
			}
			leading, trailing = int(l), wbits-int(l)-sig
		}
		v, err := bs.ReadBits(wbits - leading - trailing)
		if err != nil {
			return fmt.Errorf("gorillaz: value %d: %w", i, err)
		}
		prev ^= v << uint(trailing)
		common.PutWord(dst, i, width, prev)
	}
	return nil
}
