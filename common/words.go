package common

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// CheckWidth validates an element width in bytes. Only 4 (float32) and
// 8 (float64) words are stored.
func CheckWidth(width int) error {
	if width != 4 && width != 8 {
		return fmt.Errorf("invalid element width %d: must be 4 or 8", width)
	}
	return nil
}

// CheckLength validates that src holds a whole number of width-byte words.
func CheckLength(src []byte, width int) error {
	if err := CheckWidth(width); err != nil {
		return err
	}
	if len(src)%width != 0 {
		return fmt.Errorf("length %d is not a multiple of element width %d", len(src), width)
	}
	return nil
}

// Word reads the i-th little-endian word of the given width.
func Word(b []byte, i, width int) uint64 {
	if width == 4 {
		return uint64(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return binary.LittleEndian.Uint64(b[i*8:])
}

// PutWord stores v as the i-th little-endian word of the given width.
func PutWord(b []byte, i, width int, v uint64) {
	if width == 4 {
		binary.LittleEndian.PutUint32(b[i*4:], uint32(v))
		return
	}
	binary.LittleEndian.PutUint64(b[i*8:], v)
}

// AppendWord appends v as a little-endian word of the given width.
func AppendWord(dst []byte, v uint64, width int) []byte {
	if width == 4 {
		return binary.LittleEndian.AppendUint32(dst, uint32(v))
	}
	return binary.LittleEndian.AppendUint64(dst, v)
}

// Words unpacks src into width-sized words widened to uint64.
func Words(src []byte, width int) []uint64 {
	n := len(src) / width
	out := make([]uint64, n)
	for i := range out {
		out[i] = Word(src, i, width)
	}
	return out
}

// Shuffle groups byte j of every element together:
// [e0b0 e0b1 ..][e1b0 e1b1 ..] -> [e0b0 e1b0 ..][e0b1 e1b1 ..].
// dst and src must not overlap.
func Shuffle(dst, src []byte, width int) {
	n := len(src) / width
	for i := 0; i < n; i++ {
		for j := 0; j < width; j++ {
			dst[j*n+i] = src[i*width+j]
		}
	}
}

// Unshuffle reverses Shuffle. dst and src must not overlap.
func Unshuffle(dst, src []byte, width int) {
	n := len(src) / width
	for i := 0; i < n; i++ {
		for j := 0; j < width; j++ {
			dst[i*width+j] = src[j*n+i]
		}
	}
}

// CopyExact copies a decoded payload into dst, failing unless it has
// exactly len(dst) bytes.
func CopyExact(dst, out []byte) error {
	if len(out) != len(dst) {
		return fmt.Errorf("decoded %d bytes, want %d", len(out), len(dst))
	}
	copy(dst, out)
	return nil
}

// ReadExact fills dst from a decompressing reader and verifies the stream
// ends right after it.
func ReadExact(r io.Reader, dst []byte) error {
	n, err := io.ReadFull(r, dst)
	if err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return fmt.Errorf("decoded %d bytes, want %d", n, len(dst))
		}
		return err
	}
	var probe [1]byte
	for {
		m, err := r.Read(probe[:])
		if m > 0 {
			return fmt.Errorf("decoded more than %d bytes", len(dst))
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
