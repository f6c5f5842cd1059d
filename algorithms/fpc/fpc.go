// Package fpc implements the FPC predictive coder over 32- or 64-bit
// float words. Each word is XORed with the better of two hash-table
// predictions (FCM and DFCM) and only its non-zero low bytes are stored.
package fpc

import (
	"fmt"
	"math/bits"

	"fpzkit/common"
)

const tableBits = 16

// Compress appends the FPC encoding of the width-byte words in src to dst.
func Compress(dst []byte, src []byte, width int) ([]byte, error) {
	if err := common.CheckLength(src, width); err != nil {
		return dst, err
	}
	n := len(src) / width
	wbits := width * 8
	bs := common.NewBitWriter(dst)
	bs.WriteBits(uint64(n), 64)
	dfcm := newDfcmPredictor(tableBits, wbits)
	fcm := newFcmPredictor(tableBits, wbits)
	for i := 0; i < n; i++ {
		u := common.Word(src, i, width)
		dxor := dfcm.predict() ^ u
		fxor := fcm.predict() ^ u
		dcnt := leadingZeroBytes(dxor, wbits)
		fcnt := leadingZeroBytes(fxor, wbits)
		var xor, cnt uint64
		if dcnt > fcnt {
			xor, cnt = dxor, dcnt
			bs.WriteBits(cnt|0b1000, 4)
		} else {
			xor, cnt = fxor, fcnt
			bs.WriteBits(cnt, 4)
		}
		bs.WriteBits(xor, int(uint64(width)-cnt)*8)
		dfcm.update(u)
		fcm.update(u)
	}
	return bs.Bytes(), nil
}

// Decompress decodes src into dst, which must be exactly as long as the
// encoded word count times width.
func Decompress(dst []byte, src []byte, width int) error {
	if err := common.CheckLength(dst, width); err != nil {
		return err
	}
	bs := common.NewBitReader(src)
	size, err := bs.ReadBits(64)
	if err != nil {
		return fmt.Errorf("fpc: reading count: %w", err)
	}
	if size != uint64(len(dst)/width) {
		return fmt.Errorf("fpc: stream holds %d values, want %d", size, len(dst)/width)
	}
	wbits := width * 8
	dfcm := newDfcmPredictor(tableBits, wbits)
	fcm := newFcmPredictor(tableBits, wbits)
	for i := 0; i < int(size); i++ {
		ctl, err := bs.ReadBits(4)
		if err != nil {
			return fmt.Errorf("fpc: value %d: %w", i, err)
		}
		cnt := ctl & 0b0111
		if cnt > uint64(width) {
			return fmt.Errorf("fpc: value %d: bad zero-byte count %d", i, cnt)
		}
		var pred uint64
		if ctl&0b1000 != 0 {
			pred = dfcm.predict()
		} else {
			pred = fcm.predict()
		}
		xor, err := bs.ReadBits(int(uint64(width)-cnt) * 8)
		if err != nil {
			return fmt.Errorf("fpc: value %d: %w", i, err)
		}
		u := (xor ^ pred) & mask(wbits)
		common.PutWord(dst, i, width, u)
		dfcm.update(u)
		fcm.update(u)
	}
	return nil
}

// leadingZeroBytes counts whole zero bytes at the top of a wbits-wide word.
// The count is capped at 7 so it fits the 3-bit field; for 64-bit words an
// all-zero residual is then stored with one explicit byte.
func leadingZeroBytes(x uint64, wbits int) uint64 {
	lz := bits.LeadingZeros64(x) - (64 - wbits)
	cnt := uint64(lz / 8)
	if cnt > 7 {
		cnt = 7
	}
	return cnt
}

func mask(wbits int) uint64 {
	if wbits == 64 {
		return ^uint64(0)
	}
	return 1<<uint(wbits) - 1
}
