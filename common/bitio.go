package common

import "io"

// BitWriter writes bits MSB-first into a byte slice.
type BitWriter struct {
	buf  []byte
	cur  byte
	bits int // number of bits filled in cur [0..7]
}

// NewBitWriter returns a writer that appends to dst.
func NewBitWriter(dst []byte) *BitWriter {
	return &BitWriter{buf: dst}
}

func (w *BitWriter) WriteBit(bit bool) {
	if bit {
		w.cur |= 1 << (7 - w.bits)
	}
	w.bits++
	if w.bits == 8 {
		w.buf = append(w.buf, w.cur)
		w.cur = 0
		w.bits = 0
	}
}

// WriteBits writes the low length bits of n, MSB first.
func (w *BitWriter) WriteBits(n uint64, length int) {
	for i := length - 1; i >= 0; i-- {
		w.WriteBit((n>>uint(i))&1 == 1)
	}
}

// Bytes flushes the partial byte (zero padded) and returns the buffer.
func (w *BitWriter) Bytes() []byte {
	if w.bits > 0 {
		w.buf = append(w.buf, w.cur)
		w.cur = 0
		w.bits = 0
	}
	return w.buf
}

// BitReader reads bits MSB-first from a byte slice.
type BitReader struct {
	buf []byte
	pos int // bit position
}

func NewBitReader(src []byte) *BitReader {
	return &BitReader{buf: src}
}

func (r *BitReader) ReadBit() (bool, error) {
	i := r.pos >> 3
	if i >= len(r.buf) {
		return false, io.ErrUnexpectedEOF
	}
	bit := (r.buf[i]>>(7-uint(r.pos&7)))&1 == 1
	r.pos++
	return bit, nil
}

// ReadBits reads length bits (at most 64) as an unsigned integer.
func (r *BitReader) ReadBits(length int) (uint64, error) {
	if r.pos+length > len(r.buf)*8 {
		return 0, io.ErrUnexpectedEOF
	}
	var v uint64
	for i := 0; i < length; i++ {
		bit, _ := r.ReadBit()
		v <<= 1
		if bit {
			v |= 1
		}
	}
	return v, nil
}
